// Package transaction provides the ledger service: owner-scoped create, update, delete
// and listing of transactions. Every committed change is announced on the event bus as
// a transaction.LedgerChanged event.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/adu-coder/nineteen/pkg/domain"
	"github.com/adu-coder/nineteen/pkg/domain/transaction"
	"github.com/adu-coder/nineteen/pkg/eventbus"
	"github.com/adu-coder/nineteen/pkg/repository"
	accountrepo "github.com/adu-coder/nineteen/pkg/repository/account"
	transactionrepo "github.com/adu-coder/nineteen/pkg/repository/transaction"
	"github.com/google/uuid"
)

// DefaultListLimit caps an owner's own transaction listing.
const DefaultListLimit = 1000

// Service provides business logic for an owner's ledger.
type Service struct {
	uow       repository.UnitOfWork
	bus       eventbus.Bus
	logger    *slog.Logger
	listLimit int
	now       func() time.Time
}

// New creates a ledger service. listLimit <= 0 selects DefaultListLimit.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
	listLimit int,
) *Service {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &Service{
		uow:       uow,
		bus:       bus,
		logger:    logger,
		listLimit: listLimit,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns the owner's most recent transactions, newest first.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
) ([]*transaction.Transaction, error) {
	repo, err := repository.Get[transactionrepo.Repository](s.uow)
	if err != nil {
		return nil, err
	}
	return repo.ListByOwner(ctx, userID, s.listLimit, true)
}

// Create stores a new transaction for userID. When d.ID is already used by the owner
// the stored record is returned unchanged and created is false.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	d transaction.Draft,
) (tx *transaction.Transaction, created bool, err error) {
	d.ID = strings.TrimSpace(d.ID)
	log := s.logger.With("context", "CreateTransaction", "userID", userID)
	log.Debug("CreateTransaction called", "transactionID", d.ID)

	tx, created, err = s.create(ctx, userID, d)
	if domain.IsConflict(err) && d.ID != "" {
		// Lost an insert race for the same client id; the winner's row is the answer.
		tx, err = s.get(ctx, userID, d.ID)
		created = false
	}
	if err != nil {
		log.Error("CreateTransaction failed", "error", err)
		return nil, false, err
	}
	if created {
		s.publish(ctx, tx.UserID, tx.ID, transaction.ActionCreated)
		log.Info("CreateTransaction successful", "transactionID", tx.ID)
	} else {
		log.Info("CreateTransaction returned existing record", "transactionID", tx.ID)
	}
	return tx, created, nil
}

func (s *Service) create(
	ctx context.Context,
	userID uuid.UUID,
	d transaction.Draft,
) (tx *transaction.Transaction, created bool, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		repo, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, userID); err != nil {
			return err
		}
		if d.ID != "" {
			existing, err := repo.Get(ctx, userID, d.ID)
			if err == nil {
				tx = existing
				return nil
			}
			if !errors.Is(err, transaction.ErrTransactionNotFound) {
				return err
			}
		}
		if tx, err = transaction.New(userID, d, s.now()); err != nil {
			return err
		}
		created = true
		return repo.Create(ctx, tx)
	})
	if err != nil {
		return nil, false, err
	}
	return tx, created, nil
}

func (s *Service) get(
	ctx context.Context,
	userID uuid.UUID,
	id string,
) (*transaction.Transaction, error) {
	repo, err := repository.Get[transactionrepo.Repository](s.uow)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, id)
}

// Update applies p to the owner's transaction id.
func (s *Service) Update(
	ctx context.Context,
	userID uuid.UUID,
	id string,
	p transaction.Patch,
) (tx *transaction.Transaction, err error) {
	log := s.logger.With("context", "UpdateTransaction", "userID", userID, "transactionID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		if tx, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		if err := tx.Apply(p, s.now()); err != nil {
			return err
		}
		return repo.Update(ctx, tx)
	})
	if err != nil {
		log.Error("UpdateTransaction failed", "error", err)
		return nil, err
	}
	s.publish(ctx, userID, id, transaction.ActionUpdated)
	log.Info("UpdateTransaction successful")
	return tx, nil
}

// Delete removes the owner's transaction id.
func (s *Service) Delete(
	ctx context.Context,
	userID uuid.UUID,
	id string,
) error {
	log := s.logger.With("context", "DeleteTransaction", "userID", userID, "transactionID", id)
	repo, err := repository.Get[transactionrepo.Repository](s.uow)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, userID, id); err != nil {
		log.Error("DeleteTransaction failed", "error", err)
		return err
	}
	s.publish(ctx, userID, id, transaction.ActionDeleted)
	log.Info("DeleteTransaction successful")
	return nil
}

// publish emits a ledger change after commit. Subscriber failures are logged only:
// the change itself already succeeded.
func (s *Service) publish(ctx context.Context, userID uuid.UUID, id, action string) {
	if s.bus == nil {
		return
	}
	err := s.bus.Emit(ctx, transaction.LedgerChanged{UserID: userID, TransactionID: id, Action: action})
	if err != nil {
		s.logger.Warn("LedgerChanged subscribers failed", "userID", userID, "transactionID", id, "error", err)
	}
}
