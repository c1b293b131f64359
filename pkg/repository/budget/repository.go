package budget

import (
	"context"

	"github.com/adu-coder/nineteen/pkg/domain/budget"
	"github.com/google/uuid"
)

// Repository persists budgets. Every lookup is scoped to the owner, so another user's
// budget is reported as budget.ErrBudgetNotFound.
type Repository interface {
	Create(ctx context.Context, b *budget.Budget) error
	Get(ctx context.Context, userID, id uuid.UUID) (*budget.Budget, error)
	Update(ctx context.Context, b *budget.Budget) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error)

	// FindActiveByCategory returns nil, nil when the owner has no active budget for
	// category.
	FindActiveByCategory(ctx context.Context, userID uuid.UUID, category string) (*budget.Budget, error)
}
