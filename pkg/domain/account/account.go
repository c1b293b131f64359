package account

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found in the
	// repository.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", domain.ErrNotFound)
	// ErrInvalidProfile is returned when sign-in or profile data is unusable.
	ErrInvalidProfile = fmt.Errorf("%w: invalid profile", domain.ErrValidation)
)

// Account is a user identity record together with its side of the social graph.
type Account struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoUrl"`
	ExternalID  *string   `json:"externalId,omitempty"`

	Friends          IDs `json:"friends"`
	SentRequests     IDs `json:"sentRequests"`
	ReceivedRequests IDs `json:"receivedRequests"`

	ShareWithFriends          bool `json:"shareWithFriends"`
	AnalyticsShareEnabled     bool `json:"analyticsShareEnabled"`
	TransactionShareFriendIDs IDs  `json:"transactionShareFriendIds"`
	BalanceShareFriendIDs     IDs  `json:"balanceShareFriendIds"`

	CreatedAt    time.Time `json:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

// Profile carries identity data supplied by the external identity provider.
type Profile struct {
	Email       string
	DisplayName string
	PhotoURL    string
	ExternalID  string
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	DisplayName           *string
	PhotoURL              *string
	ShareWithFriends      *bool
	AnalyticsShareEnabled *bool
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p Profile) normalized() (Profile, error) {
	p.Email = NormalizeEmail(p.Email)
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.PhotoURL = strings.TrimSpace(p.PhotoURL)
	p.ExternalID = strings.TrimSpace(p.ExternalID)
	if p.Email == "" {
		return p, fmt.Errorf("%w: email is required", ErrInvalidProfile)
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return p, fmt.Errorf("%w: malformed email %q", ErrInvalidProfile, p.Email)
	}
	if p.DisplayName == "" {
		return p, fmt.Errorf("%w: display name is required", ErrInvalidProfile)
	}
	return p, nil
}

// New creates an account from a sign-in profile.
func New(p Profile, now time.Time) (*Account, error) {
	p, err := p.normalized()
	if err != nil {
		return nil, err
	}
	a := &Account{
		ID:               uuid.New(),
		Email:            p.Email,
		DisplayName:      p.DisplayName,
		PhotoURL:         p.PhotoURL,
		Friends:          IDs{},
		SentRequests:     IDs{},
		ReceivedRequests: IDs{},

		TransactionShareFriendIDs: IDs{},
		BalanceShareFriendIDs:     IDs{},

		CreatedAt:    now,
		LastActiveAt: now,
	}
	if p.ExternalID != "" {
		a.ExternalID = &p.ExternalID
	}
	return a, nil
}

// ApplySignIn refreshes an existing account from a repeated sign-in. The photo and
// external id are only replaced when the provider sends a non-empty value.
func (a *Account) ApplySignIn(p Profile, now time.Time) error {
	p, err := p.normalized()
	if err != nil {
		return err
	}
	a.DisplayName = p.DisplayName
	if p.PhotoURL != "" {
		a.PhotoURL = p.PhotoURL
	}
	if p.ExternalID != "" {
		a.ExternalID = &p.ExternalID
	}
	a.LastActiveAt = now
	return nil
}

// ApplyPatch updates the mutable profile fields present in patch.
func (a *Account) ApplyPatch(patch ProfilePatch) error {
	if patch.DisplayName != nil {
		name := strings.TrimSpace(*patch.DisplayName)
		if name == "" {
			return fmt.Errorf("%w: display name is required", ErrInvalidProfile)
		}
		a.DisplayName = name
	}
	if patch.PhotoURL != nil {
		a.PhotoURL = strings.TrimSpace(*patch.PhotoURL)
	}
	if patch.ShareWithFriends != nil {
		a.ShareWithFriends = *patch.ShareWithFriends
	}
	if patch.AnalyticsShareEnabled != nil {
		a.AnalyticsShareEnabled = *patch.AnalyticsShareEnabled
	}
	return nil
}

// IsFriend reports whether id is linked to a as a friend.
func (a *Account) IsFriend(id uuid.UUID) bool {
	return a.Friends.Has(id)
}

// HasPendingWith reports whether a request exists between a and id in either
// direction.
func (a *Account) HasPendingWith(id uuid.UUID) bool {
	return a.SentRequests.Has(id) || a.ReceivedRequests.Has(id)
}

// PublicProfile is the subset of an account visible to other users.
type PublicProfile struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoUrl"`
}

// Public returns the public view of a.
func (a *Account) Public() PublicProfile {
	return PublicProfile{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		PhotoURL:    a.PhotoURL,
	}
}
