package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents one record of the append-only transaction log.
// Amount is an unsigned magnitude in minor units.
type Transaction struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	AccountID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	GoalID         *uuid.UUID `gorm:"type:uuid"`
	CounterpartyID *uuid.UUID `gorm:"type:uuid"`
	Type           string     `gorm:"type:varchar(16);not null"`
	Amount         int64      `gorm:"not null"`
	CreatedAt      time.Time  `gorm:"index"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
