package events

import (
	"context"
	c "resetme/internal/core/domain/common"
	"resetme/internal/core/domain/user"
	"time"
)

type PasswordResetRequested struct {
	UserID      user.ID   `json:"userId"`
	Email       c.Email   `json:"email"`
	RequestedAt time.Time `json:"requestedAt"`
}

type PasswordResetCompleted struct {
	UserID      user.ID   `json:"userId"`
	CompletedAt time.Time `json:"completedAt"`
}

// Publisher emits security events for audit consumers. Publishing is
// synchronous and best-effort; the flow logs failures and moves on.
type Publisher interface {
	PublishResetRequested(ctx context.Context, e PasswordResetRequested) error
	PublishResetCompleted(ctx context.Context, e PasswordResetCompleted) error
}
