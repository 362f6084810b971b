// Package account provides the GORM-backed account repository.
package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
	"github.com/nestfund/ledger/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates an account repository bound to the provided *gorm.DB session.
func New(db *gorm.DB) repository.AccountRepository {
	return &repo{db: db}
}

// Get implements repository.AccountRepository.
func (r *repo) Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m)
}

// ListByOwner implements repository.AccountRepository.
func (r *repo) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*ledger.Account, error) {
	var models []Account
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	accounts := make([]*ledger.Account, 0, len(models))
	for i := range models {
		acct, err := mapModelToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// Create implements repository.AccountRepository.
func (r *repo) Create(ctx context.Context, account *ledger.Account) error {
	m := mapDomainToModel(account)
	return r.db.WithContext(ctx).Create(&m).Error
}

// Update implements repository.AccountRepository.
func (r *repo) Update(ctx context.Context, account *ledger.Account) error {
	result := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"name":    account.Name,
			"kind":    string(account.Kind),
			"balance": account.Balance.Cents(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func mapDomainToModel(account *ledger.Account) Account {
	return Account{
		ID:        account.ID,
		OwnerID:   account.OwnerID,
		Name:      account.Name,
		Kind:      string(account.Kind),
		Balance:   account.Balance.Cents(),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func mapModelToDomain(m *Account) (*ledger.Account, error) {
	return ledger.NewAccount().
		WithID(m.ID).
		WithOwnerID(m.OwnerID).
		WithName(m.Name).
		WithKind(ledger.Kind(m.Kind)).
		WithBalance(money.FromCents(m.Balance)).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}
