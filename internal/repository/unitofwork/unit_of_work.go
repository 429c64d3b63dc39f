package unitofwork

import (
	"context"

	"angus-connect-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CabanaRepository() contract.CabanaRepository
	RemateRepository() contract.RemateRepository
	NoticiaRepository() contract.NoticiaRepository
}
