package budget_test

import (
	"testing"
	"time"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/adu-coder/nineteen/pkg/domain/budget"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday.
var now = time.Date(2024, 5, 15, 14, 45, 0, 0, time.UTC)

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]budget.Period{
		"":        budget.PeriodMonthly,
		"monthly": budget.PeriodMonthly,
		"Weekly":  budget.PeriodWeekly,
		" yearly": budget.PeriodYearly,
	} {
		got, err := budget.ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := budget.ParsePeriod("daily")
	assert.ErrorIs(t, err, budget.ErrInvalidBudget)
}

func TestNew(t *testing.T) {
	owner := uuid.New()

	b, err := budget.New(owner, budget.Draft{Category: " food ", Amount: 300}, now)
	require.NoError(t, err)
	assert.Equal(t, "food", b.Category)
	assert.Equal(t, budget.PeriodMonthly, b.Period)
	assert.True(t, b.IsActive)
	assert.Equal(t, now, b.StartDate)
	assert.Equal(t, owner, b.UserID)

	for name, d := range map[string]budget.Draft{
		"zero amount":     {Category: "food", Amount: 0},
		"negative amount": {Category: "food", Amount: -5},
		"no category":     {Amount: 10},
		"bad period":      {Category: "food", Amount: 10, Period: "hourly"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := budget.New(owner, d, now)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestApply(t *testing.T) {
	b, err := budget.New(uuid.New(), budget.Draft{Category: "food", Amount: 100}, now)
	require.NoError(t, err)
	later := now.Add(time.Hour)

	amount := 150.0
	check, err := b.Apply(budget.Patch{Amount: &amount}, later)
	require.NoError(t, err)
	assert.False(t, check)
	assert.Equal(t, 150.0, b.Amount)
	assert.Equal(t, later, b.UpdatedAt)

	cat := "travel"
	check, err = b.Apply(budget.Patch{Category: &cat}, later)
	require.NoError(t, err)
	assert.True(t, check)

	off, on := false, true
	check, err = b.Apply(budget.Patch{IsActive: &off}, later)
	require.NoError(t, err)
	assert.False(t, check)
	check, err = b.Apply(budget.Patch{IsActive: &on}, later)
	require.NoError(t, err)
	assert.True(t, check, "reactivation needs a uniqueness check")

	zero := 0.0
	_, err = b.Apply(budget.Patch{Amount: &zero}, later)
	assert.ErrorIs(t, err, budget.ErrInvalidBudget)
	assert.Equal(t, 150.0, b.Amount)

	bad := "fortnightly"
	_, err = b.Apply(budget.Patch{Period: &bad}, later)
	assert.ErrorIs(t, err, budget.ErrInvalidBudget)
	assert.Equal(t, budget.PeriodMonthly, b.Period)
}

func TestWindowFor(t *testing.T) {
	tests := []struct {
		period budget.Period
		start  time.Time
	}{
		{budget.PeriodMonthly, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{budget.PeriodWeekly, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)},
		{budget.PeriodYearly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{budget.Period("bogus"), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(string(tc.period), func(t *testing.T) {
			start, end := budget.WindowFor(tc.period, now)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, now, end)
		})
	}

	t.Run("weekly on a sunday starts today", func(t *testing.T) {
		sunday := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)
		start, _ := budget.WindowFor(budget.PeriodWeekly, sunday)
		assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("weekly across a month boundary", func(t *testing.T) {
		monday := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
		start, _ := budget.WindowFor(budget.PeriodWeekly, monday)
		assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), start)

		tuesday := time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC)
		start, _ = budget.WindowFor(budget.PeriodWeekly, tuesday)
		assert.Equal(t, time.Date(2024, 9, 29, 0, 0, 0, 0, time.UTC), start)
	})
}

func TestNewSpending(t *testing.T) {
	b, err := budget.New(uuid.New(), budget.Draft{Category: "food", Amount: 100}, now)
	require.NoError(t, err)

	s := budget.NewSpending(b, []float64{70, 50})
	assert.Equal(t, 120.0, s.Spent)
	assert.Equal(t, -20.0, s.Remaining)
	assert.Equal(t, 120.0, s.Percentage, "percentage is not capped")
	assert.Equal(t, "food", s.Category)

	s = budget.NewSpending(b, nil)
	assert.Zero(t, s.Spent)
	assert.Equal(t, 100.0, s.Remaining)
	assert.Zero(t, s.Percentage)

	s = budget.NewSpending(b, []float64{0.1, 0.2})
	assert.Equal(t, 0.3, s.Spent)

	broken := *b
	broken.Amount = 0
	s = budget.NewSpending(&broken, []float64{10})
	assert.Zero(t, s.Percentage)
}
