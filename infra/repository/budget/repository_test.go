package budget_test

import (
	"context"
	"testing"
	"time"

	budgetinfra "github.com/adu-coder/nineteen/infra/repository/budget"
	"github.com/adu-coder/nineteen/pkg/domain/budget"
	"github.com/adu-coder/nineteen/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newBudget(t *testing.T, owner uuid.UUID, category string) *budget.Budget {
	t.Helper()
	b, err := budget.New(owner, budget.Draft{Category: category, Amount: 100, Period: "weekly"}, now)
	require.NoError(t, err)
	return b
}

func TestBudgetRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := budgetinfra.New(testutils.NewTestDB(t))
	owner := uuid.New()

	b := newBudget(t, owner, "food")
	require.NoError(t, r.Create(ctx, b))

	got, err := r.Get(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "food", got.Category)
	assert.Equal(t, budget.PeriodWeekly, got.Period)
	assert.True(t, got.IsActive)

	_, err = r.Get(ctx, uuid.New(), b.ID)
	assert.ErrorIs(t, err, budget.ErrBudgetNotFound, "other owners cannot see it")

	amount := 250.0
	off := false
	_, err = got.Apply(budget.Patch{Amount: &amount, IsActive: &off}, now.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, r.Update(ctx, got))

	reloaded, err := r.Get(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, reloaded.Amount)
	assert.False(t, reloaded.IsActive)

	foreign := *reloaded
	foreign.UserID = uuid.New()
	assert.ErrorIs(t, r.Update(ctx, &foreign), budget.ErrBudgetNotFound)
	assert.ErrorIs(t, r.Delete(ctx, uuid.New(), b.ID), budget.ErrBudgetNotFound)

	require.NoError(t, r.Delete(ctx, owner, b.ID))
	assert.ErrorIs(t, r.Delete(ctx, owner, b.ID), budget.ErrBudgetNotFound)
}

func TestBudgetRepository_ActiveCategory(t *testing.T) {
	ctx := context.Background()
	r := budgetinfra.New(testutils.NewTestDB(t))
	owner := uuid.New()

	none, err := r.FindActiveByCategory(ctx, owner, "food")
	require.NoError(t, err)
	assert.Nil(t, none)

	first := newBudget(t, owner, "food")
	require.NoError(t, r.Create(ctx, first))

	found, err := r.FindActiveByCategory(ctx, owner, "food")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	err = r.Create(ctx, newBudget(t, owner, "food"))
	assert.ErrorIs(t, err, budget.ErrDuplicateActiveBudget, "the unique index backs the service check")

	require.NoError(t, r.Create(ctx, newBudget(t, uuid.New(), "food")), "other owners are independent")

	off := false
	_, err = first.Apply(budget.Patch{IsActive: &off}, now)
	require.NoError(t, err)
	require.NoError(t, r.Update(ctx, first))
	require.NoError(t, r.Create(ctx, newBudget(t, owner, "food")), "inactive budgets do not count")

	list, err := r.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
