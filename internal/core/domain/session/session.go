package session

import (
	"context"
	"errors"
	"resetme/internal/core/domain/resettoken"
)

// ID identifies one interactive reset flow (an opaque browser cookie).
type ID string

var ErrNoToken = errors.New("no reset password token found in the URL or in the session")

// TokenStore holds at most one reset token per flow session. A put
// overwrites the previous value; last write wins.
type TokenStore interface {
	Put(ctx context.Context, id ID, t resettoken.Token) error
	Get(ctx context.Context, id ID) (resettoken.Token, bool, error)
	Clear(ctx context.Context, id ID) error
}

type FlashCategory string

const (
	FlashError   FlashCategory = "error"
	FlashSuccess FlashCategory = "success"
)

type Flash struct {
	Category FlashCategory `json:"category"`
	Message  string        `json:"message"`
}

// FlashStore keeps messages for the next rendered page only; Pop both
// reads and consumes them.
type FlashStore interface {
	Add(ctx context.Context, id ID, f Flash) error
	Pop(ctx context.Context, id ID) ([]Flash, error)
}
