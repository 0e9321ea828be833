package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Meal is one persisted entry for a single logged meal. Rows are immutable
// after creation; there is no update or delete path.
type Meal struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID      string       `gorm:"not null;index" json:"user_id"`
	Description string       `gorm:"not null" json:"description"`
	Calories    float64      `gorm:"not null" json:"calories"`
	CreatedDate time.Time    `gorm:"not null;index" json:"created_date"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Meal) TableName() string {
	return "meals"
}
