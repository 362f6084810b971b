package account

import (
	"time"

	"github.com/google/uuid"
)

// Account represents an account record in the database. Balance is stored in
// minor units.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Kind      string    `gorm:"type:varchar(16);not null"`
	Balance   int64     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
