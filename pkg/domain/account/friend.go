package account

import (
	"fmt"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/google/uuid"
)

var (
	ErrSelfFriendRequest = fmt.Errorf("%w: cannot send a friend request to yourself", domain.ErrConflict)
	ErrAlreadyFriends    = fmt.Errorf("%w: already friends", domain.ErrConflict)
	ErrRequestPending    = fmt.Errorf("%w: friend request already pending", domain.ErrConflict)
	ErrNoPendingRequest  = fmt.Errorf("%w: no pending friend request", domain.ErrNotFound)
	ErrNotFriends        = fmt.Errorf("%w: friendship not approved", domain.ErrForbidden)
	ErrNotShared         = fmt.Errorf("%w: data not shared with viewer", domain.ErrForbidden)
)

// The functions below mutate both sides of an edge in memory. Callers persist the two
// accounts in one unit of work.

// SendRequest records a pending request from -> to.
func SendRequest(from, to *Account) error {
	if from.ID == to.ID {
		return ErrSelfFriendRequest
	}
	if from.IsFriend(to.ID) || to.IsFriend(from.ID) {
		return ErrAlreadyFriends
	}
	if from.HasPendingWith(to.ID) || to.HasPendingWith(from.ID) {
		return ErrRequestPending
	}
	from.SentRequests = from.SentRequests.With(to.ID)
	to.ReceivedRequests = to.ReceivedRequests.With(from.ID)
	return nil
}

// AcceptRequest turns the pending request requester -> user into a friendship.
func AcceptRequest(user, requester *Account) error {
	if !user.ReceivedRequests.Has(requester.ID) {
		return ErrNoPendingRequest
	}
	clearPending(user, requester)
	user.Friends = user.Friends.With(requester.ID)
	requester.Friends = requester.Friends.With(user.ID)
	return nil
}

// DeclineRequest drops the pending request requester -> user without linking.
func DeclineRequest(user, requester *Account) error {
	if !user.ReceivedRequests.Has(requester.ID) {
		return ErrNoPendingRequest
	}
	clearPending(user, requester)
	return nil
}

// RemoveFriend unlinks user and friendID. friend may be nil when the other account no
// longer exists; the user side is still cleaned. Grants given to each other are
// revoked so a later re-friending starts without them.
func RemoveFriend(user *Account, friendID uuid.UUID, friend *Account) {
	user.Friends = user.Friends.Without(friendID)
	user.revokeGrants(friendID)
	if friend == nil {
		return
	}
	friend.Friends = friend.Friends.Without(user.ID)
	friend.revokeGrants(user.ID)
}

func clearPending(a, b *Account) {
	a.SentRequests = a.SentRequests.Without(b.ID)
	a.ReceivedRequests = a.ReceivedRequests.Without(b.ID)
	b.SentRequests = b.SentRequests.Without(a.ID)
	b.ReceivedRequests = b.ReceivedRequests.Without(a.ID)
}

// SharingPatch grants or revokes per-friend visibility. Nil fields are left untouched.
type SharingPatch struct {
	Transactions *bool
	Balance      *bool
}

// SetFriendSharing applies patch to the grants a gives friendID.
func (a *Account) SetFriendSharing(friendID uuid.UUID, patch SharingPatch) error {
	if !a.IsFriend(friendID) {
		return ErrNotFriends
	}
	if patch.Transactions != nil {
		a.TransactionShareFriendIDs = toggle(a.TransactionShareFriendIDs, friendID, *patch.Transactions)
	}
	if patch.Balance != nil {
		a.BalanceShareFriendIDs = toggle(a.BalanceShareFriendIDs, friendID, *patch.Balance)
	}
	return nil
}

func (a *Account) revokeGrants(friendID uuid.UUID) {
	a.TransactionShareFriendIDs = a.TransactionShareFriendIDs.Without(friendID)
	a.BalanceShareFriendIDs = a.BalanceShareFriendIDs.Without(friendID)
}

func toggle(ids IDs, id uuid.UUID, on bool) IDs {
	if on {
		return ids.With(id)
	}
	return ids.Without(id)
}
