package account

import (
	"time"

	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/google/uuid"
)

// User is the persisted account record. Relationship sets are stored as JSON arrays.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email       string    `gorm:"uniqueIndex;not null;size:255"`
	DisplayName string    `gorm:"not null;size:255"`
	PhotoURL    string    `gorm:"column:photo_url;not null;size:1024"`
	ExternalID  *string   `gorm:"column:external_id;uniqueIndex;size:255"`

	FriendIDs           []uuid.UUID `gorm:"column:friend_ids;type:text;serializer:json"`
	SentRequestIDs      []uuid.UUID `gorm:"column:sent_request_ids;type:text;serializer:json"`
	ReceivedRequestIDs  []uuid.UUID `gorm:"column:received_request_ids;type:text;serializer:json"`
	TransactionShareIDs []uuid.UUID `gorm:"column:transaction_share_ids;type:text;serializer:json"`
	BalanceShareIDs     []uuid.UUID `gorm:"column:balance_share_ids;type:text;serializer:json"`

	ShareWithFriends      bool
	AnalyticsShareEnabled bool

	CreatedAt    time.Time
	LastActiveAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

func mapDomainToModel(a *account.Account) *User {
	return &User{
		ID:                    a.ID,
		Email:                 a.Email,
		DisplayName:           a.DisplayName,
		PhotoURL:              a.PhotoURL,
		ExternalID:            a.ExternalID,
		FriendIDs:             nonNil(a.Friends),
		SentRequestIDs:        nonNil(a.SentRequests),
		ReceivedRequestIDs:    nonNil(a.ReceivedRequests),
		TransactionShareIDs:   nonNil(a.TransactionShareFriendIDs),
		BalanceShareIDs:       nonNil(a.BalanceShareFriendIDs),
		ShareWithFriends:      a.ShareWithFriends,
		AnalyticsShareEnabled: a.AnalyticsShareEnabled,
		CreatedAt:             a.CreatedAt,
		LastActiveAt:          a.LastActiveAt,
	}
}

func mapModelToDomain(u *User) *account.Account {
	return &account.Account{
		ID:                        u.ID,
		Email:                     u.Email,
		DisplayName:               u.DisplayName,
		PhotoURL:                  u.PhotoURL,
		ExternalID:                u.ExternalID,
		Friends:                   nonNil(u.FriendIDs),
		SentRequests:              nonNil(u.SentRequestIDs),
		ReceivedRequests:          nonNil(u.ReceivedRequestIDs),
		TransactionShareFriendIDs: nonNil(u.TransactionShareIDs),
		BalanceShareFriendIDs:     nonNil(u.BalanceShareIDs),
		ShareWithFriends:          u.ShareWithFriends,
		AnalyticsShareEnabled:     u.AnalyticsShareEnabled,
		CreatedAt:                 u.CreatedAt,
		LastActiveAt:              u.LastActiveAt,
	}
}

// nonNil keeps empty sets serialized as [] rather than null.
func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
