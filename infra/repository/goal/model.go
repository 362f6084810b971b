package goal

import (
	"time"

	"github.com/google/uuid"
)

// Goal represents a goal record in the database. Allocated and TargetAmount
// are stored in minor units; TargetAmount and DueDate are nullable.
type Goal struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Category     string    `gorm:"type:varchar(255)"`
	TargetAmount *int64
	DueDate      *time.Time
	Allocated    int64 `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Goal model.
func (Goal) TableName() string {
	return "goals"
}
