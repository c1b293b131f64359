package transaction_test

import (
	"context"
	"testing"
	"time"

	infraeventbus "github.com/adu-coder/nineteen/infra/eventbus"
	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/adu-coder/nineteen/pkg/domain/transaction"
	accountsvc "github.com/adu-coder/nineteen/pkg/service/account"
	transactionsvc "github.com/adu-coder/nineteen/pkg/service/transaction"
	"github.com/adu-coder/nineteen/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *transactionsvc.Service
	events *testutils.EventRecorder
	clock  *testutils.Clock
	owner  *account.Account
}

func setup(t *testing.T, listLimit int) *fixture {
	t.Helper()
	uow := testutils.NewUoW(t)
	clock := testutils.NewClock(t0)
	bus := infraeventbus.NewWithMemory(testutils.Logger())
	owner, _, err := accountsvc.New(uow, testutils.Logger()).
		SignIn(context.Background(), account.Profile{Email: "owner@example.com", DisplayName: "Owner"})
	require.NoError(t, err)
	return &fixture{
		svc:    transactionsvc.New(uow, bus, testutils.Logger(), listLimit).WithClock(clock.Now),
		events: testutils.RecordEvents(bus, transaction.EventTypeLedgerChanged),
		clock:  clock,
		owner:  owner,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 0)

	tx, created, err := f.svc.Create(ctx, f.owner.ID, transaction.Draft{
		Title:     " Lunch ",
		Amount:    12.5,
		IsExpense: true,
		Tags:      []string{"food", " ", "food"},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "Lunch", tx.Title)
	assert.Equal(t, []string{"food", "food"}, tx.Tags)
	assert.Equal(t, t0, tx.Date, "date defaults to now")

	published := f.events.Events()
	require.Len(t, published, 1)
	assert.Equal(t, transaction.LedgerChanged{UserID: f.owner.ID, TransactionID: tx.ID, Action: transaction.ActionCreated}, published[0])

	_, _, err = f.svc.Create(ctx, f.owner.ID, transaction.Draft{Amount: 1})
	assert.ErrorIs(t, err, transaction.ErrInvalidTransaction)

	_, _, err = f.svc.Create(ctx, uuid.New(), transaction.Draft{Title: "x", Amount: 1})
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestCreate_IdempotentByClientID(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 0)
	date := t0.Add(-24 * time.Hour)

	first, created, err := f.svc.Create(ctx, f.owner.ID, transaction.Draft{
		ID: "client-1", Title: "Salary", Amount: 1000, Date: &date,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "client-1", first.ID)

	f.clock.Set(t0.Add(time.Hour))
	again, created, err := f.svc.Create(ctx, f.owner.ID, transaction.Draft{
		ID: "client-1", Title: "Different", Amount: 5,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Salary", again.Title, "the stored record is returned unchanged")
	assert.Equal(t, 1000.0, again.Amount)
	assert.Len(t, f.events.Events(), 1, "a replay emits nothing")

	list, err := f.svc.List(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 0)
	tx, _, err := f.svc.Create(ctx, f.owner.ID, transaction.Draft{Title: "Taxi", Amount: 20, IsExpense: true})
	require.NoError(t, err)
	f.events.Clear()

	f.clock.Set(t0.Add(time.Minute))
	amount, tags := 25.0, []string{"transport"}
	updated, err := f.svc.Update(ctx, f.owner.ID, tx.ID, transaction.Patch{Amount: &amount, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.Amount)
	assert.Equal(t, []string{"transport"}, updated.Tags)
	assert.Equal(t, "Taxi", updated.Title)
	assert.Equal(t, t0.Add(time.Minute), updated.UpdatedAt)
	assert.Len(t, f.events.Events(), 1)

	empty := ""
	_, err = f.svc.Update(ctx, f.owner.ID, tx.ID, transaction.Patch{Title: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Update(ctx, f.owner.ID, "missing", transaction.Patch{Amount: &amount})
	assert.ErrorIs(t, err, transaction.ErrTransactionNotFound)

	_, err = f.svc.Update(ctx, uuid.New(), tx.ID, transaction.Patch{Amount: &amount})
	assert.ErrorIs(t, err, domain.ErrNotFound, "another owner's id is a miss")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 0)
	tx, _, err := f.svc.Create(ctx, f.owner.ID, transaction.Draft{Title: "Gift", Amount: 50})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.owner.ID, tx.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, f.owner.ID, tx.ID), transaction.ErrTransactionNotFound)

	published := f.events.Events()
	require.Len(t, published, 2)
	assert.Equal(t, transaction.ActionDeleted, published[1].(transaction.LedgerChanged).Action)
}

func TestList_NewestFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	f := setup(t, 3)
	for i := range 5 {
		date := t0.Add(time.Duration(i) * time.Hour)
		_, _, err := f.svc.Create(ctx, f.owner.ID, transaction.Draft{Title: "t", Amount: float64(i), Date: &date})
		require.NoError(t, err)
	}

	list, err := f.svc.List(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []float64{4, 3, 2}, []float64{list[0].Amount, list[1].Amount, list[2].Amount})
}
