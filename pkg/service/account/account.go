// Package account provides business logic for the account directory: sign-in upsert,
// profile reads and updates, and the friend graph with its sharing grants.
//
// Every operation that touches two accounts locks and saves both inside one unit of
// work, so either both sides of an edge are committed or neither is, and concurrent
// edits of the same account queue behind each other. Profile saves never write the
// relationship sets.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/adu-coder/nineteen/pkg/repository"
	accountrepo "github.com/adu-coder/nineteen/pkg/repository/account"
	"github.com/google/uuid"
)

// Service provides business logic for account operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SignIn creates the account for p.Email or refreshes the existing one. created reports
// whether a new account was inserted.
func (s *Service) SignIn(
	ctx context.Context,
	p account.Profile,
) (a *account.Account, created bool, err error) {
	log := s.logger.With("context", "SignIn", "email", account.NormalizeEmail(p.Email))
	log.Debug("SignIn called")

	a, created, err = s.signIn(ctx, p)
	if domain.IsConflict(err) {
		// A concurrent sign-in inserted the same email first. The failed transaction
		// is gone, so retry in a fresh one where the lookup hits.
		log.Debug("SignIn raced with another insert, retrying")
		a, created, err = s.signIn(ctx, p)
	}
	if err != nil {
		log.Error("SignIn failed", "error", err)
		return nil, false, err
	}
	log.Info("SignIn successful", "userID", a.ID, "created", created)
	return a, created, nil
}

func (s *Service) signIn(
	ctx context.Context,
	p account.Profile,
) (a *account.Account, created bool, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		now := s.now()
		existing, err := repo.GetByEmail(ctx, p.Email)
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			a, err = account.New(p, now)
			if err != nil {
				return err
			}
			created = true
			return repo.Create(ctx, a)
		case err != nil:
			return err
		}
		if err := existing.ApplySignIn(p, now); err != nil {
			return err
		}
		a = existing
		return repo.UpdateProfile(ctx, a)
	})
	if err != nil {
		return nil, false, err
	}
	return a, created, nil
}

// Get returns the account with id.
func (s *Service) Get(
	ctx context.Context,
	id uuid.UUID,
) (*account.Account, error) {
	repo, err := repository.Get[accountrepo.Repository](s.uow)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// UpdateProfile applies patch to the account with id and returns the saved account.
func (s *Service) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	patch account.ProfilePatch,
) (a *account.Account, err error) {
	log := s.logger.With("context", "UpdateProfile", "userID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		if a, err = repo.GetForUpdate(ctx, id); err != nil {
			return err
		}
		if err := a.ApplyPatch(patch); err != nil {
			return err
		}
		return repo.UpdateProfile(ctx, a)
	})
	if err != nil {
		log.Error("UpdateProfile failed", "error", err)
		return nil, err
	}
	log.Info("UpdateProfile successful")
	return a, nil
}

// SearchByEmail returns the public profile registered under email. The match is
// case-insensitive.
func (s *Service) SearchByEmail(
	ctx context.Context,
	email string,
) (*account.PublicProfile, error) {
	repo, err := repository.Get[accountrepo.Repository](s.uow)
	if err != nil {
		return nil, err
	}
	a, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	p := a.Public()
	return &p, nil
}
