package auth

import "github.com/adu-coder/nineteen/pkg/domain/account"

// GoogleSignInInput carries the Google ID token obtained by the client. The account
// profile is read from the verified token, never from the request body.
type GoogleSignInInput struct {
	IDToken string `json:"idToken" validate:"max=8192"`
}

// SessionDTO is returned by a successful sign-in.
type SessionDTO struct {
	User      *account.Account `json:"user"`
	Token     string           `json:"token"`
	IsNewUser bool             `json:"isNewUser"`
}
