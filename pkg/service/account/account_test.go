package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	accountsvc "github.com/adu-coder/nineteen/pkg/service/account"
	"github.com/adu-coder/nineteen/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*accountsvc.Service, *testutils.Clock) {
	t.Helper()
	clock := testutils.NewClock(t0)
	svc := accountsvc.New(testutils.NewUoW(t), testutils.Logger()).WithClock(clock.Now)
	return svc, clock
}

func signIn(t *testing.T, svc *accountsvc.Service, email string) *account.Account {
	t.Helper()
	a, _, err := svc.SignIn(context.Background(), account.Profile{Email: email, DisplayName: email})
	require.NoError(t, err)
	return a
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	svc, clock := newService(t)

	a, created, err := svc.SignIn(ctx, account.Profile{
		Email:       "  Alice@Example.com ",
		DisplayName: "Alice",
		PhotoURL:    "https://img/alice.png",
		ExternalID:  "google-1",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice@example.com", a.Email)
	assert.Equal(t, t0, a.LastActiveAt.UTC())

	clock.Set(t0.Add(time.Hour))
	again, created, err := svc.SignIn(ctx, account.Profile{Email: "ALICE@example.com", DisplayName: "Alice B"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a.ID, again.ID)
	assert.Equal(t, "Alice B", again.DisplayName)
	assert.Equal(t, "https://img/alice.png", again.PhotoURL, "empty photo keeps the stored one")
	require.NotNil(t, again.ExternalID)
	assert.Equal(t, "google-1", *again.ExternalID)

	stored, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", stored.DisplayName)
	assert.Equal(t, t0.Add(time.Hour), stored.LastActiveAt.UTC())

	_, _, err = svc.SignIn(ctx, account.Profile{Email: "not-an-email", DisplayName: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a := signIn(t, svc, "bob@example.com")

	name, on := "Bobby", true
	updated, err := svc.UpdateProfile(ctx, a.ID, account.ProfilePatch{DisplayName: &name, AnalyticsShareEnabled: &on})
	require.NoError(t, err)
	assert.Equal(t, "Bobby", updated.DisplayName)
	assert.True(t, updated.AnalyticsShareEnabled)
	assert.False(t, updated.ShareWithFriends)

	blank := "  "
	_, err = svc.UpdateProfile(ctx, a.ID, account.ProfilePatch{DisplayName: &blank})
	assert.ErrorIs(t, err, account.ErrInvalidProfile)

	stored, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bobby", stored.DisplayName)
	assert.True(t, stored.AnalyticsShareEnabled)

	_, err = svc.UpdateProfile(ctx, uuid.New(), account.ProfilePatch{DisplayName: &name})
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestSearchByEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a := signIn(t, svc, "carol@example.com")

	p, err := svc.SearchByEmail(ctx, "CAROL@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, p.ID)
	assert.Equal(t, "carol@example.com", p.Email)

	_, err = svc.SearchByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
