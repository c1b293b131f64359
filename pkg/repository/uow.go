package repository

import (
	"context"
	"fmt"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Do runs fn in a transaction boundary. Repositories obtained from the UnitOfWork passed
// to fn share that transaction; if fn returns an error everything is rolled back.
//
//	err := uow.Do(ctx, func(uow UnitOfWork) error {
//		repo, err := Get[account.Repository](uow)
//		...
//	})
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type, bound to the
	// current transaction/session.
	GetRepository(repoType reflect.Type) (any, error)
}

// Get resolves the repository interface T from uow.
func Get[T any](uow UnitOfWork) (T, error) {
	var zero T
	repoAny, err := uow.GetRepository(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected repository type %T", repoAny)
	}
	return repo, nil
}
