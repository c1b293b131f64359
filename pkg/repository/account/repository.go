package account

import (
	"context"

	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/google/uuid"
)

// Repository persists accounts together with their side of the social graph.
type Repository interface {
	// Create inserts a new account. A duplicate email or external id is a conflict.
	Create(ctx context.Context, a *account.Account) error

	// Update saves every mutable field of a, including relationship sets.
	Update(ctx context.Context, a *account.Account) error

	// UpdateProfile saves the profile and sharing flags of a and leaves the
	// relationship sets untouched.
	UpdateProfile(ctx context.Context, a *account.Account) error

	// Get returns account.ErrAccountNotFound when id is unknown.
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// GetForUpdate is Get that also locks the row for the rest of the transaction.
	// Callers locking several accounts take them in ascending id order.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// GetByEmail matches the normalized email.
	GetByEmail(ctx context.Context, email string) (*account.Account, error)

	// ListByIDs returns the accounts that exist among ids, in the order of ids.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*account.Account, error)
}
