package transaction

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrTransactionNotFound is returned when (owner, id) does not match a record.
	ErrTransactionNotFound = fmt.Errorf("%w: transaction not found", domain.ErrNotFound)
	// ErrInvalidTransaction is returned when transaction input is unusable.
	ErrInvalidTransaction = fmt.Errorf("%w: invalid transaction", domain.ErrValidation)
)

// Transaction is an income or expense entry owned by one account. It is identified by
// the pair (UserID, ID).
type Transaction struct {
	ID          string    `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	IsExpense   bool      `json:"isExpense"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Draft is the input for creating a transaction. An empty ID lets the server assign
// one; a nil Date means now.
type Draft struct {
	ID          string
	Title       string
	Amount      float64
	IsExpense   bool
	Tags        []string
	Description string
	Date        *time.Time
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Amount      *float64
	IsExpense   *bool
	Tags        *[]string
	Description *string
	Date        *time.Time
}

// New builds a transaction for userID from d.
func New(userID uuid.UUID, d Draft, now time.Time) (*Transaction, error) {
	t := &Transaction{
		ID:          strings.TrimSpace(d.ID),
		UserID:      userID,
		Title:       strings.TrimSpace(d.Title),
		Amount:      d.Amount,
		IsExpense:   d.IsExpense,
		Tags:        cleanTags(d.Tags),
		Description: strings.TrimSpace(d.Description),
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if d.Date != nil {
		t.Date = *d.Date
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Apply merges p into t and bumps UpdatedAt.
func (t *Transaction) Apply(p Patch, now time.Time) error {
	next := *t
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Amount != nil {
		next.Amount = *p.Amount
	}
	if p.IsExpense != nil {
		next.IsExpense = *p.IsExpense
	}
	if p.Tags != nil {
		next.Tags = cleanTags(*p.Tags)
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if p.Date != nil {
		next.Date = *p.Date
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.UpdatedAt = now
	*t = next
	return nil
}

// HasTag reports whether tag is attached to t.
func (t *Transaction) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}

func (t *Transaction) validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTransaction)
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", ErrInvalidTransaction)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTransaction)
	}
	return nil
}

// cleanTags trims tags and drops empty ones. Duplicates are kept.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
