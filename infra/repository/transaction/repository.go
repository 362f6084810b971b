// Package transaction provides the GORM-backed transaction log. The log is
// append-only; no update or delete path exists.
package transaction

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
	"github.com/nestfund/ledger/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates a transaction repository bound to the provided *gorm.DB session.
func New(db *gorm.DB) repository.TransactionRepository {
	return &repo{db: db}
}

// Create implements repository.TransactionRepository.
func (r *repo) Create(ctx context.Context, transaction *ledger.Transaction) error {
	m := Transaction{
		ID:             transaction.ID,
		AccountID:      transaction.AccountID,
		GoalID:         transaction.GoalID,
		CounterpartyID: transaction.CounterpartyID,
		Type:           string(transaction.Type),
		Amount:         transaction.Amount.Cents(),
		CreatedAt:      transaction.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// ListRecentByOwner implements repository.TransactionRepository.
func (r *repo) ListRecentByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]*ledger.Transaction, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.owner_id = ?", ownerID).
		Order("transactions.created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	transactions := make([]*ledger.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, mapModelToDomain(&models[i]))
	}
	return transactions, nil
}

func mapModelToDomain(m *Transaction) *ledger.Transaction {
	return &ledger.Transaction{
		ID:             m.ID,
		AccountID:      m.AccountID,
		GoalID:         m.GoalID,
		CounterpartyID: m.CounterpartyID,
		Type:           ledger.TransactionType(m.Type),
		Amount:         money.FromCents(m.Amount),
		CreatedAt:      m.CreatedAt,
	}
}
