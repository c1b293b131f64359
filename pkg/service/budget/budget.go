// Package budget provides the budget engine: owner-scoped budget CRUD and the listing
// that enriches every budget with what was spent in its current period window.
package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/adu-coder/nineteen/pkg/domain/budget"
	"github.com/adu-coder/nineteen/pkg/repository"
	accountrepo "github.com/adu-coder/nineteen/pkg/repository/account"
	budgetrepo "github.com/adu-coder/nineteen/pkg/repository/budget"
	transactionrepo "github.com/adu-coder/nineteen/pkg/repository/transaction"
	"github.com/google/uuid"
)

// Service provides business logic for budgets.
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

// ListWithSpending returns every budget of userID with spent, remaining and
// percentage computed over the budget's current window.
func (s *Service) ListWithSpending(
	ctx context.Context,
	userID uuid.UUID,
) ([]budget.Spending, error) {
	log := s.logger.With("context", "ListWithSpending", "userID", userID)
	budgets, err := repository.Get[budgetrepo.Repository](s.uow)
	if err != nil {
		return nil, err
	}
	ledger, err := repository.Get[transactionrepo.Repository](s.uow)
	if err != nil {
		return nil, err
	}

	list, err := budgets.ListByOwner(ctx, userID)
	if err != nil {
		log.Error("ListWithSpending failed", "error", err)
		return nil, err
	}
	now := s.now()
	out := make([]budget.Spending, 0, len(list))
	for _, b := range list {
		start, end := budget.WindowFor(b.Period, now)
		txs, err := ledger.ListByOwnerWithTag(
			ctx, userID, b.Category,
			transactionrepo.Window{Start: start, End: end},
			true,
		)
		if err != nil {
			log.Error("ListWithSpending failed", "budgetID", b.ID, "error", err)
			return nil, err
		}
		amounts := make([]float64, len(txs))
		for i, t := range txs {
			amounts[i] = t.Amount
		}
		out = append(out, budget.NewSpending(b, amounts))
	}
	return out, nil
}

// Create adds an active budget for userID. The returned spending starts at zero.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	d budget.Draft,
) (sp budget.Spending, err error) {
	log := s.logger.With("context", "CreateBudget", "userID", userID, "category", d.Category)
	var b *budget.Budget
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, userID); err != nil {
			return err
		}
		if b, err = budget.New(userID, d, s.now()); err != nil {
			return err
		}
		existing, err := repo.FindActiveByCategory(ctx, userID, b.Category)
		if err != nil {
			return err
		}
		if existing != nil {
			return budget.ErrDuplicateActiveBudget
		}
		return repo.Create(ctx, b)
	})
	if err != nil {
		log.Error("CreateBudget failed", "error", err)
		return budget.Spending{}, err
	}
	log.Info("CreateBudget successful", "budgetID", b.ID)
	return budget.NewSpending(b, nil), nil
}

// Update applies p to the owner's budget id. Activating a budget, or renaming an
// active one, fails with budget.ErrDuplicateActiveBudget when another active budget
// already covers the category.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	p budget.Patch,
) (b *budget.Budget, err error) {
	log := s.logger.With("context", "UpdateBudget", "userID", userID, "budgetID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		if b, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		needsCheck, err := b.Apply(p, s.now())
		if err != nil {
			return err
		}
		if needsCheck {
			existing, err := repo.FindActiveByCategory(ctx, userID, b.Category)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != b.ID {
				return budget.ErrDuplicateActiveBudget
			}
		}
		return repo.Update(ctx, b)
	})
	if err != nil {
		log.Error("UpdateBudget failed", "error", err)
		return nil, err
	}
	log.Info("UpdateBudget successful")
	return b, nil
}

// Delete removes the owner's budget id.
func (s *Service) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	log := s.logger.With("context", "DeleteBudget", "userID", userID, "budgetID", id)
	repo, err := repository.Get[budgetrepo.Repository](s.uow)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, userID, id); err != nil {
		log.Error("DeleteBudget failed", "error", err)
		return err
	}
	log.Info("DeleteBudget successful")
	return nil
}
