// Package auth exchanges a verified identity-provider credential for an account
// session token and resolves the caller of an authenticated request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adu-coder/nineteen/pkg/config"
	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token carries no usable subject.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	// ErrInvalidCredential is returned when the identity provider does not vouch for
	// the presented credential.
	ErrInvalidCredential = fmt.Errorf("%w: identity credential rejected", domain.ErrUnauthorized)
)

// Accounts is the part of the account service sign-in needs.
type Accounts interface {
	SignIn(ctx context.Context, p account.Profile) (*account.Account, bool, error)
}

// IdentityVerifier checks an identity-provider credential and returns the profile it
// vouches for.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (account.Profile, error)
}

// Session is the result of a successful sign-in.
type Session struct {
	Account *account.Account
	Token   string
	Created bool
}

// Service issues and reads HS256 session tokens.
type Service struct {
	accounts Accounts
	verifier IdentityVerifier
	cfg      *config.Jwt
	logger   *slog.Logger
	now      func() time.Time
}

// New creates an auth service accepting credentials checked by verifier and signing
// tokens with cfg.
func New(
	accounts Accounts,
	verifier IdentityVerifier,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts: accounts,
		verifier: verifier,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SignInWithCredential verifies credential with the identity provider, then signs in
// the profile it names. An empty or rejected credential is ErrInvalidCredential.
func (s *Service) SignInWithCredential(
	ctx context.Context,
	credential string,
) (*Session, error) {
	log := s.logger.With("context", "SignInWithCredential")
	if strings.TrimSpace(credential) == "" {
		log.Warn("SignInWithCredential rejected: no credential")
		return nil, ErrInvalidCredential
	}
	if s.verifier == nil {
		return nil, errors.New("auth: no identity verifier configured")
	}
	p, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		log.Warn("SignInWithCredential rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	return s.SignIn(ctx, p)
}

// SignIn upserts the account for an already verified profile p and issues a token
// for it.
func (s *Service) SignIn(
	ctx context.Context,
	p account.Profile,
) (*Session, error) {
	log := s.logger.With("context", "SignIn")
	a, created, err := s.accounts.SignIn(ctx, p)
	if err != nil {
		return nil, err
	}
	token, err := s.GenerateToken(a)
	if err != nil {
		log.Error("SignIn failed: token", "userID", a.ID, "error", err)
		return nil, err
	}
	return &Session{Account: a, Token: token, Created: created}, nil
}

// GenerateToken signs a token for a carrying user_id, email and exp claims.
func (s *Service) GenerateToken(a *account.Account) (string, error) {
	log := s.logger.With("userID", a.ID)
	log.Debug("GenerateToken called")
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = a.ID.String()
	claims["email"] = a.Email
	claims["exp"] = s.now().Add(s.cfg.Expiry).Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Debug("GenerateToken successful")
	return tokenString, nil
}

// GetCurrentUserID reads the user_id claim of a verified token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	if token == nil {
		return uuid.Nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		s.logger.Warn("GetCurrentUserID failed", "error", err)
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// ParseToken verifies tokenString with the configured secret.
func (s *Service) ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return token, nil
}
