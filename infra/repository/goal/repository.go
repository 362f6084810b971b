// Package goal provides the GORM-backed goal repository.
package goal

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

// New creates a goal repository bound to the provided *gorm.DB session.
func New(db *gorm.DB) repository.GoalRepository {
	return &repo{db: db}
}

// Get implements repository.GoalRepository.
func (r *repo) Get(ctx context.Context, id uuid.UUID) (*ledger.Goal, error) {
	var m Goal
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrGoalNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m)
}

// ListByAccount implements repository.GoalRepository.
func (r *repo) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*ledger.Goal, error) {
	var models []Goal
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapModelsToDomain(models)
}

// ListByOwner implements repository.GoalRepository.
func (r *repo) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*ledger.Goal, error) {
	var models []Goal
	err := r.db.WithContext(ctx).
		Joins("JOIN accounts ON accounts.id = goals.account_id").
		Where("accounts.owner_id = ?", ownerID).
		Order("goals.created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapModelsToDomain(models)
}

// SumAllocated implements repository.GoalRepository.
func (r *repo) SumAllocated(
	ctx context.Context,
	accountID uuid.UUID,
) (money.Money, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Goal{}).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(allocated), 0)").
		Scan(&total).Error
	if err != nil {
		return money.Zero, err
	}
	return money.FromCents(total), nil
}

// Create implements repository.GoalRepository.
func (r *repo) Create(ctx context.Context, goal *ledger.Goal) error {
	m := mapDomainToModel(goal)
	return r.db.WithContext(ctx).Create(&m).Error
}

// Update implements repository.GoalRepository.
func (r *repo) Update(ctx context.Context, goal *ledger.Goal) error {
	var target *int64
	if goal.TargetAmount != nil {
		cents := goal.TargetAmount.Cents()
		target = &cents
	}
	result := r.db.WithContext(ctx).
		Model(&Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]any{
			"name":          goal.Name,
			"category":      goal.Category,
			"target_amount": target,
			"due_date":      goal.DueDate,
			"allocated":     goal.Allocated.Cents(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrGoalNotFound
	}
	return nil
}

// Delete implements repository.GoalRepository.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Goal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrGoalNotFound
	}
	return nil
}

func mapDomainToModel(goal *ledger.Goal) Goal {
	var target *int64
	if goal.TargetAmount != nil {
		cents := goal.TargetAmount.Cents()
		target = &cents
	}
	return Goal{
		ID:           goal.ID,
		AccountID:    goal.AccountID,
		Name:         goal.Name,
		Category:     goal.Category,
		TargetAmount: target,
		DueDate:      goal.DueDate,
		Allocated:    goal.Allocated.Cents(),
		CreatedAt:    goal.CreatedAt,
		UpdatedAt:    goal.UpdatedAt,
	}
}

func mapModelToDomain(m *Goal) (*ledger.Goal, error) {
	b := ledger.NewGoal().
		WithID(m.ID).
		WithAccountID(m.AccountID).
		WithName(m.Name).
		WithCategory(m.Category).
		WithAllocated(money.FromCents(m.Allocated)).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt)
	if m.TargetAmount != nil {
		b = b.WithTargetAmount(money.FromCents(*m.TargetAmount))
	}
	if m.DueDate != nil {
		b = b.WithDueDate(*m.DueDate)
	}
	return b.Build()
}

func mapModelsToDomain(models []Goal) ([]*ledger.Goal, error) {
	goals := make([]*ledger.Goal, 0, len(models))
	for i := range models {
		g, err := mapModelToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}
