package account

import "github.com/google/uuid"

// Scope names a kind of financial data an owner can expose to friends.
type Scope string

const (
	ScopeTransactions Scope = "transactions"
	ScopeBalance      Scope = "balance"
	ScopeAnalytics    Scope = "analytics"
)

// CanViewTransactions reports whether viewerID may list owner's transactions.
func CanViewTransactions(viewerID uuid.UUID, owner *Account) bool {
	return owner != nil && owner.IsFriend(viewerID) && owner.TransactionShareFriendIDs.Has(viewerID)
}

// CanViewBalance reports whether viewerID may see owner's totals.
func CanViewBalance(viewerID uuid.UUID, owner *Account) bool {
	return owner != nil && owner.IsFriend(viewerID) && owner.BalanceShareFriendIDs.Has(viewerID)
}

// CanViewAnalytics reports whether viewerID may see owner's spending by tag.
// Analytics are shared with all friends at once.
func CanViewAnalytics(viewerID uuid.UUID, owner *Account) bool {
	return owner != nil && owner.IsFriend(viewerID) && owner.AnalyticsShareEnabled
}

// Authorize returns nil when viewerID may see scope of owner's data, ErrNotFriends when
// the two are not friends and ErrNotShared when the grant is missing.
func Authorize(viewerID uuid.UUID, owner *Account, scope Scope) error {
	if owner == nil {
		return ErrAccountNotFound
	}
	if !owner.IsFriend(viewerID) {
		return ErrNotFriends
	}
	var allowed bool
	switch scope {
	case ScopeTransactions:
		allowed = CanViewTransactions(viewerID, owner)
	case ScopeBalance:
		allowed = CanViewBalance(viewerID, owner)
	case ScopeAnalytics:
		allowed = CanViewAnalytics(viewerID, owner)
	}
	if !allowed {
		return ErrNotShared
	}
	return nil
}
