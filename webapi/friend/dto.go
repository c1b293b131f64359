package friend

// FriendRequestInput names the account a friend request is sent to.
type FriendRequestInput struct {
	FriendID string `json:"friendId" validate:"required,uuid"`
}

// SharingInput grants or revokes per-friend visibility. Absent fields are left
// untouched.
type SharingInput struct {
	Transactions *bool `json:"transactions"`
	Balance      *bool `json:"balance"`
}

// SharingDTO is the resulting grant state for one friend.
type SharingDTO struct {
	FriendID     string `json:"friendId"`
	Transactions bool   `json:"transactions"`
	Balance      bool   `json:"balance"`
}
