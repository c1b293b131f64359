package transaction

import (
	"time"

	"github.com/adu-coder/nineteen/pkg/domain/transaction"
)

// CreateTransactionInput is the body of a create request. A client-supplied ID makes
// the request idempotent.
type CreateTransactionInput struct {
	ID          string     `json:"id" validate:"omitempty,max=128"`
	Title       string     `json:"title" validate:"required,max=200"`
	Amount      *float64   `json:"amount" validate:"required"`
	IsExpense   bool       `json:"isExpense"`
	Tags        []string   `json:"tags" validate:"omitempty,dive,max=50"`
	Description string     `json:"description" validate:"max=1000"`
	Date        *time.Time `json:"date"`
}

func (in CreateTransactionInput) toDraft() transaction.Draft {
	return transaction.Draft{
		ID:          in.ID,
		Title:       in.Title,
		Amount:      *in.Amount,
		IsExpense:   in.IsExpense,
		Tags:        in.Tags,
		Description: in.Description,
		Date:        in.Date,
	}
}

// UpdateTransactionInput is a partial update; absent fields are left untouched.
type UpdateTransactionInput struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Amount      *float64   `json:"amount"`
	IsExpense   *bool      `json:"isExpense"`
	Tags        *[]string  `json:"tags"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Date        *time.Time `json:"date"`
}

func (in UpdateTransactionInput) toPatch() transaction.Patch {
	return transaction.Patch{
		Title:       in.Title,
		Amount:      in.Amount,
		IsExpense:   in.IsExpense,
		Tags:        in.Tags,
		Description: in.Description,
		Date:        in.Date,
	}
}
