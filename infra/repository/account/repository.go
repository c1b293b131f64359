package account

import (
	"context"

	"github.com/adu-coder/nineteen/infra/repository"
	"github.com/adu-coder/nineteen/pkg/domain/account"
	repo "github.com/adu-coder/nineteen/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// New creates a gorm-backed account repository.
func New(db *gorm.DB) repo.Repository {
	return &accountRepository{db: db}
}

// Create implements account.Repository.
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(mapDomainToModel(a)).Error
	})
}

var (
	profileColumns = []string{
		"Email", "DisplayName", "PhotoURL", "ExternalID",
		"ShareWithFriends", "AnalyticsShareEnabled", "LastActiveAt",
	}
	graphColumns = []string{
		"FriendIDs", "SentRequestIDs", "ReceivedRequestIDs",
		"TransactionShareIDs", "BalanceShareIDs",
	}
)

// Update implements account.Repository.
func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	return r.save(ctx, a, append(append([]string{}, profileColumns...), graphColumns...))
}

// UpdateProfile implements account.Repository.
func (r *accountRepository) UpdateProfile(ctx context.Context, a *account.Account) error {
	return r.save(ctx, a, profileColumns)
}

func (r *accountRepository) save(ctx context.Context, a *account.Account, columns []string) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", a.ID).
		Select(columns).
		Updates(mapDomainToModel(a))
	if res.Error != nil {
		return repository.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// Get implements account.Repository.
func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, repository.NotFoundAs(err, account.ErrAccountNotFound)
	}
	return mapModelToDomain(&u), nil
}

// GetForUpdate implements account.Repository. On postgres the row stays locked until
// the surrounding transaction ends; sqlite has no row locks and serializes writers.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var u User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, repository.NotFoundAs(err, account.ErrAccountNotFound)
	}
	return mapModelToDomain(&u), nil
}

// GetByEmail implements account.Repository.
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("email = ?", account.NormalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, repository.NotFoundAs(err, account.ErrAccountNotFound)
	}
	return mapModelToDomain(&u), nil
}

// ListByIDs implements account.Repository.
func (r *accountRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*account.Account, error) {
	if len(ids) == 0 {
		return []*account.Account{}, nil
	}
	var users []User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}

	byID := make(map[uuid.UUID]*User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	result := make([]*account.Account, 0, len(users))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			result = append(result, mapModelToDomain(u))
		}
	}
	return result, nil
}

var _ repo.Repository = (*accountRepository)(nil)
