package uow

import (
	"context"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	ResetRequests() resettoken.RequestRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
