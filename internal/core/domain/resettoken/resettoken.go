package resettoken

import (
	"context"
	"crypto/sha256"
	"fmt"
	"resetme/internal/core/domain/user"
	"time"
)

type Token string

func (t Token) String() string {
	return "***"
}

// TokenHash is what gets persisted; raw tokens never touch storage.
type TokenHash string

func Hash(t Token) TokenHash {
	return TokenHash(fmt.Sprintf("%x", sha256.Sum256([]byte(t))))
}

// Codec issues and verifies self-contained reset tokens. A decoy token is
// structurally identical to a real one but is bound to no account and can
// never be verified.
type Codec interface {
	Issue(u user.User) Token
	IssueDecoy() Token
	UserID(t Token) (user.ID, bool)
	Verify(u user.User, t Token) bool
	ExpiresAt(t Token) (time.Time, bool)
}

type TokenSender interface {
	SendToken(ctx context.Context, u user.User, t Token) error
}
