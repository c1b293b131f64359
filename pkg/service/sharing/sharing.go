// Package sharing serves friend-scoped reads of another account's ledger. Every read
// loads the owner, runs the permission check for the requested scope and only then
// touches the ledger or the summary cache.
package sharing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adu-coder/nineteen/pkg/cache"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/adu-coder/nineteen/pkg/domain/transaction"
	"github.com/adu-coder/nineteen/pkg/eventbus"
	"github.com/adu-coder/nineteen/pkg/repository"
	accountrepo "github.com/adu-coder/nineteen/pkg/repository/account"
	transactionrepo "github.com/adu-coder/nineteen/pkg/repository/transaction"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DefaultFriendTransactionsLimit caps a friend's view of an owner's transactions.
const DefaultFriendTransactionsLimit = 50

const (
	summaryBalance   = "balance"
	summaryAnalytics = "analytics"
)

// summaryFillTimeout bounds one shared aggregate computation.
const summaryFillTimeout = 30 * time.Second

// SummaryKey is the cache key of one owner-wide aggregate.
func SummaryKey(ownerID uuid.UUID, kind string) string {
	return fmt.Sprintf("summary:%s:%s", ownerID, kind)
}

// Service provides the friend views.
type Service struct {
	uow    repository.UnitOfWork
	cache  cache.Cache
	logger *slog.Logger
	limit  int
	fills  singleflight.Group
}

// New creates a sharing service. limit <= 0 selects DefaultFriendTransactionsLimit.
func New(
	uow repository.UnitOfWork,
	c cache.Cache,
	logger *slog.Logger,
	limit int,
) *Service {
	if limit <= 0 {
		limit = DefaultFriendTransactionsLimit
	}
	return &Service{
		uow:    uow,
		cache:  c,
		logger: logger,
		limit:  limit,
	}
}

// authorize loads ownerID and checks that viewerID may read scope.
func (s *Service) authorize(
	ctx context.Context,
	viewerID, ownerID uuid.UUID,
	scope account.Scope,
) error {
	repo, err := repository.Get[accountrepo.Repository](s.uow)
	if err != nil {
		return err
	}
	owner, err := repo.Get(ctx, ownerID)
	if err != nil {
		return err
	}
	return account.Authorize(viewerID, owner, scope)
}

// FriendTransactions returns the owner's most recent transactions when viewerID has
// been granted transaction visibility.
func (s *Service) FriendTransactions(
	ctx context.Context,
	viewerID, ownerID uuid.UUID,
) ([]*transaction.Transaction, error) {
	log := s.logger.With("context", "FriendTransactions", "viewerID", viewerID, "ownerID", ownerID)
	if err := s.authorize(ctx, viewerID, ownerID, account.ScopeTransactions); err != nil {
		log.Warn("FriendTransactions denied", "error", err)
		return nil, err
	}
	repo, err := repository.Get[transactionrepo.Repository](s.uow)
	if err != nil {
		return nil, err
	}
	txs, err := repo.ListByOwner(ctx, ownerID, s.limit, true)
	if err != nil {
		log.Error("FriendTransactions failed", "error", err)
		return nil, err
	}
	return txs, nil
}

// FriendBalance returns the owner's all-time totals when viewerID has been granted
// balance visibility.
func (s *Service) FriendBalance(
	ctx context.Context,
	viewerID, ownerID uuid.UUID,
) (transaction.Balance, error) {
	log := s.logger.With("context", "FriendBalance", "viewerID", viewerID, "ownerID", ownerID)
	if err := s.authorize(ctx, viewerID, ownerID, account.ScopeBalance); err != nil {
		log.Warn("FriendBalance denied", "error", err)
		return transaction.Balance{}, err
	}
	var b transaction.Balance
	err := s.summary(ctx, ownerID, summaryBalance, &b, func(txs []*transaction.Transaction) any {
		return transaction.Summarize(txs)
	})
	if err != nil {
		log.Error("FriendBalance failed", "error", err)
		return transaction.Balance{}, err
	}
	return b, nil
}

// FriendAnalytics returns the owner's per-tag expense breakdown when the owner shares
// analytics with friends.
func (s *Service) FriendAnalytics(
	ctx context.Context,
	viewerID, ownerID uuid.UUID,
) (transaction.Analytics, error) {
	log := s.logger.With("context", "FriendAnalytics", "viewerID", viewerID, "ownerID", ownerID)
	if err := s.authorize(ctx, viewerID, ownerID, account.ScopeAnalytics); err != nil {
		log.Warn("FriendAnalytics denied", "error", err)
		return transaction.Analytics{}, err
	}
	var a transaction.Analytics
	err := s.summary(ctx, ownerID, summaryAnalytics, &a, func(txs []*transaction.Transaction) any {
		return transaction.Analyze(txs)
	})
	if err != nil {
		log.Error("FriendAnalytics failed", "error", err)
		return transaction.Analytics{}, err
	}
	return a, nil
}

// summary reads the aggregate kind of ownerID into dest, computing and caching it on
// a miss. Cache failures degrade to a direct computation.
func (s *Service) summary(
	ctx context.Context,
	ownerID uuid.UUID,
	kind string,
	dest any,
	compute func([]*transaction.Transaction) any,
) error {
	key := SummaryKey(ownerID, kind)
	if s.cache != nil {
		err := s.cache.Get(ctx, key, dest)
		if err == nil {
			return nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("summary cache read failed", "key", key, "error", err)
		}
	}

	// The fill is shared by every caller waiting on key, so it must outlive the
	// caller that started it. Each caller still stops waiting on its own ctx.
	ch := s.fills.DoChan(key, func() (any, error) {
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), summaryFillTimeout)
		defer cancel()
		repo, err := repository.Get[transactionrepo.Repository](s.uow)
		if err != nil {
			return nil, err
		}
		txs, err := repo.ListByOwner(fillCtx, ownerID, 0, false)
		if err != nil {
			return nil, err
		}
		result := compute(txs)
		if s.cache != nil {
			if err := s.cache.Set(fillCtx, key, result); err != nil {
				s.logger.Warn("summary cache write failed", "key", key, "error", err)
			}
		}
		return result, nil
	})
	var v any
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		v = res.Val
	}

	switch d := dest.(type) {
	case *transaction.Balance:
		*d = v.(transaction.Balance)
	case *transaction.Analytics:
		*d = v.(transaction.Analytics)
	default:
		return fmt.Errorf("unsupported summary type %T", dest)
	}
	return nil
}

// InvalidateOnLedgerChange drops the cached aggregates of the owner named by a
// transaction.LedgerChanged event.
func (s *Service) InvalidateOnLedgerChange(ctx context.Context, e eventbus.Event) error {
	changed, ok := e.(transaction.LedgerChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx,
		SummaryKey(changed.UserID, summaryBalance),
		SummaryKey(changed.UserID, summaryAnalytics),
	)
}
