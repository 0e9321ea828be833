package repository

import (
	"context"
	"time"

	"github.com/nutritioner/nutritioner/internal/meal/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// Insert writes one meal row inside its own transaction. gorm commits when
// the closure returns nil and rolls back otherwise, so a mid-write failure
// leaves nothing observable.
func (r *repo) Insert(ctx context.Context, db *gorm.DB, meal *domain.Meal) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Exec(
			`INSERT INTO meals (id, user_id, description, calories, created_date, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			meal.ID,
			meal.UserID,
			meal.Description,
			meal.Calories,
			meal.CreatedDate,
			meal.CreatedAt,
			meal.UpdatedAt,
		).Error
	})
	if err != nil {
		return &domain.StorageError{Op: "insert_meal", Detail: err.Error()}
	}
	return nil
}

func (r *repo) FindForLastWeek(ctx context.Context, db *gorm.DB, userID string, today time.Time) ([]domain.Meal, error) {
	cutoff := startOfDay(today).AddDate(0, 0, -domain.HistoryDays)
	var meals []domain.Meal
	err := db.WithContext(ctx).
		Model(&domain.Meal{}).
		Where("user_id = ? AND created_date >= ?", userID, cutoff).
		Order("created_date desc, id desc").
		Find(&meals).Error
	if err != nil {
		return nil, &domain.StorageError{Op: "get_meals_for_last_week", Detail: err.Error()}
	}
	return meals, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
