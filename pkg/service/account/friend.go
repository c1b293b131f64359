package account

import (
	"bytes"
	"context"
	"errors"
	"slices"

	"github.com/adu-coder/nineteen/pkg/domain/account"
	"github.com/adu-coder/nineteen/pkg/repository"
	accountrepo "github.com/adu-coder/nineteen/pkg/repository/account"
	"github.com/google/uuid"
)

// pairFn mutates two loaded accounts. Both are saved when it returns nil.
type pairFn func(user, other *account.Account) error

// lockAccounts loads ids with row locks, in ascending id order so that two units of
// work touching the same pair cannot deadlock. Unknown ids are left out of the result.
func lockAccounts(
	ctx context.Context,
	repo accountrepo.Repository,
	ids ...uuid.UUID,
) (map[uuid.UUID]*account.Account, error) {
	ordered := slices.Clone(ids)
	slices.SortFunc(ordered, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	ordered = slices.Compact(ordered)

	locked := make(map[uuid.UUID]*account.Account, len(ordered))
	for _, id := range ordered {
		a, err := repo.GetForUpdate(ctx, id)
		if errors.Is(err, account.ErrAccountNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		locked[id] = a
	}
	return locked, nil
}

// updatePair locks userID and otherID in one unit of work, applies fn and saves both.
func (s *Service) updatePair(
	ctx context.Context,
	userID, otherID uuid.UUID,
	fn pairFn,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		locked, err := lockAccounts(ctx, repo, userID, otherID)
		if err != nil {
			return err
		}
		user, other := locked[userID], locked[otherID]
		if user == nil || other == nil {
			return account.ErrAccountNotFound
		}
		if err := fn(user, other); err != nil {
			return err
		}
		if err := repo.Update(ctx, user); err != nil {
			return err
		}
		if other == user {
			return nil
		}
		return repo.Update(ctx, other)
	})
}

// SendFriendRequest records a pending request from fromID to toID.
func (s *Service) SendFriendRequest(ctx context.Context, fromID, toID uuid.UUID) error {
	log := s.logger.With("context", "SendFriendRequest", "from", fromID, "to", toID)
	if fromID == toID {
		log.Warn("SendFriendRequest rejected", "error", account.ErrSelfFriendRequest)
		return account.ErrSelfFriendRequest
	}
	if err := s.updatePair(ctx, fromID, toID, account.SendRequest); err != nil {
		log.Error("SendFriendRequest failed", "error", err)
		return err
	}
	log.Info("SendFriendRequest successful")
	return nil
}

// AcceptFriendRequest links userID and requesterID when requesterID has a pending
// request to userID.
func (s *Service) AcceptFriendRequest(ctx context.Context, userID, requesterID uuid.UUID) error {
	log := s.logger.With("context", "AcceptFriendRequest", "userID", userID, "requester", requesterID)
	if err := s.updatePair(ctx, userID, requesterID, account.AcceptRequest); err != nil {
		log.Error("AcceptFriendRequest failed", "error", err)
		return err
	}
	log.Info("AcceptFriendRequest successful")
	return nil
}

// DeclineFriendRequest drops the pending request from requesterID to userID.
func (s *Service) DeclineFriendRequest(ctx context.Context, userID, requesterID uuid.UUID) error {
	log := s.logger.With("context", "DeclineFriendRequest", "userID", userID, "requester", requesterID)
	if err := s.updatePair(ctx, userID, requesterID, account.DeclineRequest); err != nil {
		log.Error("DeclineFriendRequest failed", "error", err)
		return err
	}
	log.Info("DeclineFriendRequest successful")
	return nil
}

// RemoveFriend unlinks userID and friendID. It succeeds when they are not friends and
// when the friend account no longer exists.
func (s *Service) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	log := s.logger.With("context", "RemoveFriend", "userID", userID, "friendID", friendID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		locked, err := lockAccounts(ctx, repo, userID, friendID)
		if err != nil {
			return err
		}
		user, friend := locked[userID], locked[friendID]
		if user == nil {
			return account.ErrAccountNotFound
		}
		account.RemoveFriend(user, friendID, friend)
		if err := repo.Update(ctx, user); err != nil {
			return err
		}
		if friend == nil || friend == user {
			return nil
		}
		return repo.Update(ctx, friend)
	})
	if err != nil {
		log.Error("RemoveFriend failed", "error", err)
		return err
	}
	log.Info("RemoveFriend successful")
	return nil
}

// UpdateFriendSharing grants or revokes friendID's access to ownerID's transactions
// and balance.
func (s *Service) UpdateFriendSharing(
	ctx context.Context,
	ownerID, friendID uuid.UUID,
	patch account.SharingPatch,
) (owner *account.Account, err error) {
	log := s.logger.With("context", "UpdateFriendSharing", "userID", ownerID, "friendID", friendID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[accountrepo.Repository](uow)
		if err != nil {
			return err
		}
		if owner, err = repo.GetForUpdate(ctx, ownerID); err != nil {
			return err
		}
		if err := owner.SetFriendSharing(friendID, patch); err != nil {
			return err
		}
		return repo.Update(ctx, owner)
	})
	if err != nil {
		log.Error("UpdateFriendSharing failed", "error", err)
		return nil, err
	}
	log.Info("UpdateFriendSharing successful")
	return owner, nil
}

// ListFriends returns the public profiles of userID's friends.
func (s *Service) ListFriends(ctx context.Context, userID uuid.UUID) ([]account.PublicProfile, error) {
	return s.listRelated(ctx, userID, func(a *account.Account) account.IDs { return a.Friends })
}

// ListIncomingRequests returns the accounts that sent userID a pending request.
func (s *Service) ListIncomingRequests(ctx context.Context, userID uuid.UUID) ([]account.PublicProfile, error) {
	return s.listRelated(ctx, userID, func(a *account.Account) account.IDs { return a.ReceivedRequests })
}

// ListOutgoingRequests returns the accounts userID has a pending request to.
func (s *Service) ListOutgoingRequests(ctx context.Context, userID uuid.UUID) ([]account.PublicProfile, error) {
	return s.listRelated(ctx, userID, func(a *account.Account) account.IDs { return a.SentRequests })
}

func (s *Service) listRelated(
	ctx context.Context,
	userID uuid.UUID,
	pick func(*account.Account) account.IDs,
) ([]account.PublicProfile, error) {
	repo, err := repository.Get[accountrepo.Repository](s.uow)
	if err != nil {
		return nil, err
	}
	user, err := repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	related, err := repo.ListByIDs(ctx, pick(user))
	if err != nil {
		return nil, err
	}
	out := make([]account.PublicProfile, 0, len(related))
	for _, a := range related {
		out = append(out, a.Public())
	}
	return out, nil
}
