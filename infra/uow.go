package infra

import (
	"context"
	"fmt"
	"reflect"

	accountinfra "github.com/adu-coder/nineteen/infra/repository/account"
	budgetinfra "github.com/adu-coder/nineteen/infra/repository/budget"
	transactioninfra "github.com/adu-coder/nineteen/infra/repository/transaction"
	"github.com/adu-coder/nineteen/pkg/repository"
	accountrepo "github.com/adu-coder/nineteen/pkg/repository/account"
	budgetrepo "github.com/adu-coder/nineteen/pkg/repository/budget"
	transactionrepo "github.com/adu-coder/nineteen/pkg/repository/transaction"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share its GORM transaction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			typeOf[accountrepo.Repository]():     func(db *gorm.DB) any { return accountinfra.New(db) },
			typeOf[transactionrepo.Repository](): func(db *gorm.DB) any { return transactioninfra.New(db) },
			typeOf[budgetrepo.Repository]():      func(db *gorm.DB) any { return budgetinfra.New(db) },
		},
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Do runs fn in a transaction boundary, providing a UoW with repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository returns the repository registered for repoType, bound to the current
// transaction. Outside Do it is bound to the plain connection.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
