package uow

import (
	"context"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository         *user.FakeUserRepository
	ResetRequestRepository *resettoken.FakeRequestRepository
	WasRollbackCalled      bool
	WasCommitCalled        bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	resetRequestRepository *resettoken.FakeRequestRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:         userRepository,
		ResetRequestRepository: resetRequestRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) ResetRequests() resettoken.RequestRepository {
	return c.ResetRequestRepository
}

type FakeUnitOfWork struct {
	Context *FakeUnitOfWorkContext
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			user.NewFakeUserRepository(),
			resettoken.NewFakeRequestRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	return u.Context, nil
}
