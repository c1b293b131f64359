package transaction

import (
	"context"

	"github.com/adu-coder/nineteen/infra/repository"
	"github.com/adu-coder/nineteen/pkg/domain/transaction"
	repo "github.com/adu-coder/nineteen/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// New creates a gorm-backed transaction repository.
func New(db *gorm.DB) repo.Repository {
	return &transactionRepository{db: db}
}

// Create implements transaction.Repository.
func (r *transactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(mapDomainToModel(t)).Error
	})
}

// Get implements transaction.Repository.
func (r *transactionRepository) Get(ctx context.Context, userID uuid.UUID, id string) (*transaction.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&m).Error
	if err != nil {
		return nil, repository.NotFoundAs(err, transaction.ErrTransactionNotFound)
	}
	return mapModelToDomain(&m), nil
}

// Update implements transaction.Repository.
func (r *transactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("user_id = ? AND id = ?", t.UserID, t.ID).
		Select("Title", "Amount", "IsExpense", "Tags", "Description", "Date", "UpdatedAt").
		Updates(mapDomainToModel(t))
	if res.Error != nil {
		return repository.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}

// Delete implements transaction.Repository.
func (r *transactionRepository) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&Transaction{})
	if res.Error != nil {
		return repository.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}

// ListByOwner implements transaction.Repository.
func (r *transactionRepository) ListByOwner(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
	newestFirst bool,
) ([]*transaction.Transaction, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if newestFirst {
		q = q.Order("date DESC").Order("created_at DESC")
	} else {
		q = q.Order("date ASC")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return r.find(q)
}

// ListByOwnerInWindow implements transaction.Repository.
func (r *transactionRepository) ListByOwnerInWindow(
	ctx context.Context,
	userID uuid.UUID,
	w repo.Window,
	expensesOnly bool,
) ([]*transaction.Transaction, error) {
	return r.find(r.windowQuery(ctx, userID, w, expensesOnly))
}

// ListByOwnerWithTag implements transaction.Repository. Tags are a JSON column, so
// the tag match happens after the windowed query.
func (r *transactionRepository) ListByOwnerWithTag(
	ctx context.Context,
	userID uuid.UUID,
	tag string,
	w repo.Window,
	expensesOnly bool,
) ([]*transaction.Transaction, error) {
	txs, err := r.find(r.windowQuery(ctx, userID, w, expensesOnly))
	if err != nil {
		return nil, err
	}
	tagged := make([]*transaction.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.HasTag(tag) {
			tagged = append(tagged, t)
		}
	}
	return tagged, nil
}

func (r *transactionRepository) windowQuery(
	ctx context.Context,
	userID uuid.UUID,
	w repo.Window,
	expensesOnly bool,
) *gorm.DB {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !w.Start.IsZero() {
		q = q.Where("date >= ?", w.Start.UTC())
	}
	if !w.End.IsZero() {
		q = q.Where("date <= ?", w.End.UTC())
	}
	if expensesOnly {
		q = q.Where("is_expense = ?", true)
	}
	return q.Order("date DESC")
}

func (r *transactionRepository) find(q *gorm.DB) ([]*transaction.Transaction, error) {
	var models []Transaction
	if err := q.Find(&models).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	result := make([]*transaction.Transaction, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDomain(&models[i]))
	}
	return result, nil
}

var _ repo.Repository = (*transactionRepository)(nil)
