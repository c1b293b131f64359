package account_test

import (
	"context"
	"testing"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	accountsvc "github.com/adu-coder/nineteen/pkg/service/account"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reload(t *testing.T, svc *accountsvc.Service, id uuid.UUID) *account.Account {
	t.Helper()
	a, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	return a
}

func TestFriendHandshake(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a := signIn(t, svc, "a@example.com")
	b := signIn(t, svc, "b@example.com")

	require.NoError(t, svc.SendFriendRequest(ctx, a.ID, b.ID))
	assert.True(t, reload(t, svc, a.ID).SentRequests.Has(b.ID))
	assert.True(t, reload(t, svc, b.ID).ReceivedRequests.Has(a.ID))

	incoming, err := svc.ListIncomingRequests(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, a.ID, incoming[0].ID)

	outgoing, err := svc.ListOutgoingRequests(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, b.ID, outgoing[0].ID)

	assert.ErrorIs(t, svc.SendFriendRequest(ctx, b.ID, a.ID), account.ErrRequestPending)
	assert.ErrorIs(t, svc.AcceptFriendRequest(ctx, a.ID, b.ID), account.ErrNoPendingRequest)

	require.NoError(t, svc.AcceptFriendRequest(ctx, b.ID, a.ID))
	ra, rb := reload(t, svc, a.ID), reload(t, svc, b.ID)
	assert.Equal(t, account.IDs{b.ID}, ra.Friends)
	assert.Equal(t, account.IDs{a.ID}, rb.Friends)
	assert.Empty(t, ra.SentRequests)
	assert.Empty(t, rb.ReceivedRequests)

	friends, err := svc.ListFriends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "b@example.com", friends[0].Email)

	assert.ErrorIs(t, svc.SendFriendRequest(ctx, a.ID, b.ID), account.ErrAlreadyFriends)
}

func TestSendFriendRequest_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a := signIn(t, svc, "a@example.com")

	err := svc.SendFriendRequest(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, account.ErrSelfFriendRequest)
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = svc.SendFriendRequest(ctx, a.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, reload(t, svc, a.ID).SentRequests, "nothing is written when the target is missing")
}

func TestDeclineFriendRequest(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a := signIn(t, svc, "a@example.com")
	b := signIn(t, svc, "b@example.com")

	require.NoError(t, svc.SendFriendRequest(ctx, a.ID, b.ID))
	require.NoError(t, svc.DeclineFriendRequest(ctx, b.ID, a.ID))

	ra, rb := reload(t, svc, a.ID), reload(t, svc, b.ID)
	assert.Empty(t, ra.SentRequests)
	assert.Empty(t, rb.ReceivedRequests)
	assert.Empty(t, ra.Friends)
	assert.Empty(t, rb.Friends)

	assert.ErrorIs(t, svc.DeclineFriendRequest(ctx, b.ID, a.ID), account.ErrNoPendingRequest)
}

func befriend(t *testing.T, svc *accountsvc.Service, a, b uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.SendFriendRequest(ctx, a, b))
	require.NoError(t, svc.AcceptFriendRequest(ctx, b, a))
}

func TestRemoveFriend(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a := signIn(t, svc, "a@example.com")
	b := signIn(t, svc, "b@example.com")
	befriend(t, svc, a.ID, b.ID)

	on := true
	_, err := svc.UpdateFriendSharing(ctx, a.ID, b.ID, account.SharingPatch{Transactions: &on, Balance: &on})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFriend(ctx, a.ID, b.ID))
	ra, rb := reload(t, svc, a.ID), reload(t, svc, b.ID)
	assert.Empty(t, ra.Friends)
	assert.Empty(t, rb.Friends)
	assert.Empty(t, ra.TransactionShareFriendIDs)
	assert.Empty(t, ra.BalanceShareFriendIDs)

	require.NoError(t, svc.RemoveFriend(ctx, a.ID, b.ID), "removing twice is a no-op")
	require.NoError(t, svc.RemoveFriend(ctx, a.ID, uuid.New()), "a missing friend account is tolerated")
	assert.ErrorIs(t, svc.RemoveFriend(ctx, uuid.New(), a.ID), account.ErrAccountNotFound)
}

func TestUpdateFriendSharing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a := signIn(t, svc, "a@example.com")
	b := signIn(t, svc, "b@example.com")
	on, off := true, false

	_, err := svc.UpdateFriendSharing(ctx, a.ID, b.ID, account.SharingPatch{Balance: &on})
	assert.ErrorIs(t, err, account.ErrNotFriends)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	befriend(t, svc, a.ID, b.ID)
	owner, err := svc.UpdateFriendSharing(ctx, a.ID, b.ID, account.SharingPatch{Balance: &on})
	require.NoError(t, err)
	assert.True(t, owner.BalanceShareFriendIDs.Has(b.ID))
	assert.False(t, owner.TransactionShareFriendIDs.Has(b.ID))

	_, err = svc.UpdateFriendSharing(ctx, a.ID, b.ID, account.SharingPatch{Balance: &off, Transactions: &on})
	require.NoError(t, err)
	stored := reload(t, svc, a.ID)
	assert.False(t, stored.BalanceShareFriendIDs.Has(b.ID))
	assert.True(t, stored.TransactionShareFriendIDs.Has(b.ID))
	assert.Empty(t, reload(t, svc, b.ID).TransactionShareFriendIDs, "grants are one-directional")
}
