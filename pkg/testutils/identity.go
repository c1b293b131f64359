package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/adu-coder/nineteen/pkg/domain/account"
)

// ErrUnknownCredential is returned by Identities for credentials never issued.
var ErrUnknownCredential = errors.New("unknown credential")

// Identities stands in for the identity provider: it vouches only for the
// credentials handed out by Issue.
type Identities struct {
	mu       sync.Mutex
	profiles map[string]account.Profile
}

// NewIdentities returns a provider that knows no credentials yet.
func NewIdentities() *Identities {
	return &Identities{profiles: make(map[string]account.Profile)}
}

// Issue returns a credential that verifies as p.
func (i *Identities) Issue(p account.Profile) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	credential := "id-token:" + p.Email + ":" + p.DisplayName
	i.profiles[credential] = p
	return credential
}

// Verify implements auth.IdentityVerifier.
func (i *Identities) Verify(_ context.Context, credential string) (account.Profile, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	p, ok := i.profiles[credential]
	if !ok {
		return account.Profile{}, ErrUnknownCredential
	}
	return p, nil
}
