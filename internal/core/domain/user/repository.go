package user

import (
	"context"
	c "resetme/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}

// SessionRepository resolves authenticated sessions. The reset flow only
// reads it to reject callers that are already logged in.
type SessionRepository interface {
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
}
