package budget

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBudgetNotFound        = fmt.Errorf("%w: budget not found", domain.ErrNotFound)
	ErrInvalidBudget         = fmt.Errorf("%w: invalid budget", domain.ErrValidation)
	ErrDuplicateActiveBudget = fmt.Errorf("%w: an active budget already exists for this category", domain.ErrConflict)
)

// Period is the rolling window a budget is measured over.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodWeekly  Period = "weekly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod validates s. An empty string means monthly.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodMonthly, nil
	case PeriodMonthly, PeriodWeekly, PeriodYearly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidBudget, s)
	}
}

// Budget is a spending limit on one tag.
type Budget struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Period    Period    `json:"period"`
	StartDate time.Time `json:"startDate"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft is the input for creating a budget.
type Draft struct {
	Category string
	Amount   float64
	Period   string
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Category *string
	Amount   *float64
	Period   *string
	IsActive *bool
}

// New creates an active budget for userID.
func New(userID uuid.UUID, d Draft, now time.Time) (*Budget, error) {
	period, err := ParsePeriod(d.Period)
	if err != nil {
		return nil, err
	}
	b := &Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  strings.TrimSpace(d.Category),
		Amount:    d.Amount,
		Period:    period,
		StartDate: now,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply merges p into b and bumps UpdatedAt. It reports whether b became active for a
// category it was not active for before, which needs a uniqueness check.
func (b *Budget) Apply(p Patch, now time.Time) (needsUniqueCheck bool, err error) {
	next := *b
	if p.Category != nil {
		next.Category = strings.TrimSpace(*p.Category)
	}
	if p.Amount != nil {
		next.Amount = *p.Amount
	}
	if p.Period != nil {
		if next.Period, err = ParsePeriod(*p.Period); err != nil {
			return false, err
		}
	}
	if p.IsActive != nil {
		next.IsActive = *p.IsActive
	}
	if err = next.validate(); err != nil {
		return false, err
	}
	needsUniqueCheck = next.IsActive && (next.Category != b.Category || !b.IsActive)
	next.UpdatedAt = now
	*b = next
	return needsUniqueCheck, nil
}

func (b *Budget) validate() error {
	if b.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidBudget)
	}
	if math.IsNaN(b.Amount) || math.IsInf(b.Amount, 0) || b.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidBudget)
	}
	return nil
}

// WindowFor returns the range [start, now] a period covers. Weeks start on
// Sunday. Boundaries use now's location. Unknown periods fall back to the yearly window.
func WindowFor(p Period, now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	switch p {
	case PeriodMonthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case PeriodWeekly:
		start = time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, loc)
	default:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
	return start, now
}

// Spending is a budget enriched with what has been spent in its current window.
type Spending struct {
	Budget
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// NewSpending derives spent, remaining and percentage from the window's expense
// amounts. Percentage is not capped at 100.
func NewSpending(b *Budget, amounts []float64) Spending {
	spent := decimal.Zero
	for _, a := range amounts {
		spent = spent.Add(decimal.NewFromFloat(a))
	}
	limit := decimal.NewFromFloat(b.Amount)
	pct := decimal.Zero
	if limit.IsPositive() {
		pct = spent.Mul(decimal.NewFromInt(100)).Div(limit)
	}
	return Spending{
		Budget:     *b,
		Spent:      spent.InexactFloat64(),
		Remaining:  limit.Sub(spent).InexactFloat64(),
		Percentage: pct.InexactFloat64(),
	}
}
