// Package identity verifies identity-provider credentials presented at sign-in.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adu-coder/nineteen/pkg/domain/account"
	"google.golang.org/api/idtoken"
)

var (
	errMissingEmail    = errors.New("id token carries no email")
	errUnverifiedEmail = errors.New("id token email is not verified")
)

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// GoogleVerifier checks Google ID tokens issued to one OAuth client and turns their
// claims into a sign-in profile.
type GoogleVerifier struct {
	audience string
	validate validateFunc
}

// NewGoogleVerifier creates a verifier accepting tokens whose audience is clientID.
func NewGoogleVerifier(clientID string) (*GoogleVerifier, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, errors.New("google client id is required")
	}
	return &GoogleVerifier{audience: clientID, validate: idtoken.Validate}, nil
}

// Verify checks the signature, issuer, audience and expiry of idToken and returns
// the profile of its subject.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (account.Profile, error) {
	payload, err := v.validate(ctx, idToken, v.audience)
	if err != nil {
		return account.Profile{}, fmt.Errorf("google id token: %w", err)
	}
	return profileFromPayload(payload)
}

func profileFromPayload(p *idtoken.Payload) (account.Profile, error) {
	email := claimString(p.Claims, "email")
	if email == "" {
		return account.Profile{}, errMissingEmail
	}
	if !claimBool(p.Claims, "email_verified") {
		return account.Profile{}, errUnverifiedEmail
	}
	name := claimString(p.Claims, "name")
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return account.Profile{
		Email:       email,
		DisplayName: name,
		PhotoURL:    claimString(p.Claims, "picture"),
		ExternalID:  p.Subject,
	}, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return strings.TrimSpace(s)
}

// Google sends email_verified as a JSON bool; some older tokens carry "true".
func claimBool(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}
