package transaction

import (
	"context"
	"time"

	"github.com/adu-coder/nineteen/pkg/domain/transaction"
	"github.com/google/uuid"
)

// Window bounds a listing by occurrence date. Zero times leave that side open.
type Window struct {
	Start time.Time
	End   time.Time
}

// Repository persists transactions keyed by (owner, id).
type Repository interface {
	Create(ctx context.Context, t *transaction.Transaction) error

	// Get returns transaction.ErrTransactionNotFound when (userID, id) is unknown.
	Get(ctx context.Context, userID uuid.UUID, id string) (*transaction.Transaction, error)

	Update(ctx context.Context, t *transaction.Transaction) error

	Delete(ctx context.Context, userID uuid.UUID, id string) error

	// ListByOwner returns the owner's transactions, newest first when newestFirst is
	// set. A limit <= 0 means no limit.
	ListByOwner(ctx context.Context, userID uuid.UUID, limit int, newestFirst bool) ([]*transaction.Transaction, error)

	// ListByOwnerInWindow returns transactions dated within w.
	ListByOwnerInWindow(ctx context.Context, userID uuid.UUID, w Window, expensesOnly bool) ([]*transaction.Transaction, error)

	// ListByOwnerWithTag is ListByOwnerInWindow restricted to transactions carrying tag.
	ListByOwnerWithTag(ctx context.Context, userID uuid.UUID, tag string, w Window, expensesOnly bool) ([]*transaction.Transaction, error)
}
