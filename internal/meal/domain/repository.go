package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository is the transactional storage boundary around meal rows.
// Implementations convert storage failures into *StorageError; raw driver
// errors never cross this interface.
type Repository interface {
	// Insert writes one meal in its own transaction. Either the row commits
	// in full or nothing is observable.
	Insert(ctx context.Context, db *gorm.DB, meal *Meal) error
	// FindForLastWeek returns the user's meals dated within the trailing
	// seven calendar days, today included (created_date >= today - 7d).
	FindForLastWeek(ctx context.Context, db *gorm.DB, userID string, today time.Time) ([]Meal, error)
}
