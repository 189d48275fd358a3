package resettoken

import (
	"context"
	c "resetme/internal/core/domain/common"
	"resetme/internal/core/domain/user"
	"time"
)

type Request struct {
	ID          int64
	UserID      user.ID
	TokenHash   TokenHash
	RequestedAt time.Time
	ExpiresAt   time.Time
	UsedAt      c.Optional[time.Time]
}

func (r *Request) IsUsed() bool {
	return r.UsedAt.IsPresent
}

func (r *Request) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

type CreateRequestInput struct {
	UserID      user.ID
	TokenHash   TokenHash
	RequestedAt time.Time
	ExpiresAt   time.Time
}

type RequestRepository interface {
	Create(ctx context.Context, input CreateRequestInput) (Request, error)
	// GetByTokenHash returns ErrTokenMalformed for an unknown hash.
	GetByTokenHash(ctx context.Context, hash TokenHash) (Request, error)
	MarkUsed(ctx context.Context, id int64, at time.Time) error
	HasActiveForUser(ctx context.Context, userID user.ID, now time.Time) (bool, error)
}
