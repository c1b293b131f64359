package budget

import (
	"context"
	"errors"

	"github.com/adu-coder/nineteen/infra/repository"
	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/adu-coder/nineteen/pkg/domain/budget"
	repo "github.com/adu-coder/nineteen/pkg/repository/budget"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type budgetRepository struct {
	db *gorm.DB
}

// New creates a gorm-backed budget repository.
func New(db *gorm.DB) repo.Repository {
	return &budgetRepository{db: db}
}

// Create implements budget.Repository. A clash on the active-category index is
// reported as budget.ErrDuplicateActiveBudget.
func (r *budgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(mapDomainToModel(b)).Error
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return budget.ErrDuplicateActiveBudget
	}
	return err
}

// Get implements budget.Repository.
func (r *budgetRepository) Get(ctx context.Context, userID, id uuid.UUID) (*budget.Budget, error) {
	var m Budget
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, repository.NotFoundAs(err, budget.ErrBudgetNotFound)
	}
	return mapModelToDomain(&m), nil
}

// Update implements budget.Repository.
func (r *budgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	res := r.db.WithContext(ctx).
		Model(&Budget{}).
		Where("id = ? AND user_id = ?", b.ID, b.UserID).
		Select("Category", "Amount", "Period", "IsActive", "UpdatedAt").
		Updates(mapDomainToModel(b))
	if res.Error != nil {
		err := repository.MapGormErrorToDomain(res.Error)
		if errors.Is(err, domain.ErrAlreadyExists) {
			return budget.ErrDuplicateActiveBudget
		}
		return err
	}
	if res.RowsAffected == 0 {
		return budget.ErrBudgetNotFound
	}
	return nil
}

// Delete implements budget.Repository.
func (r *budgetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Budget{})
	if res.Error != nil {
		return repository.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return budget.ErrBudgetNotFound
	}
	return nil
}

// ListByOwner implements budget.Repository.
func (r *budgetRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	var models []Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	result := make([]*budget.Budget, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDomain(&models[i]))
	}
	return result, nil
}

// FindActiveByCategory implements budget.Repository.
func (r *budgetRepository) FindActiveByCategory(
	ctx context.Context,
	userID uuid.UUID,
	category string,
) (*budget.Budget, error) {
	var models []Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ? AND is_active = ?", userID, category, true).
		Limit(1).
		Find(&models).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return mapModelToDomain(&models[0]), nil
}

var _ repo.Repository = (*budgetRepository)(nil)
