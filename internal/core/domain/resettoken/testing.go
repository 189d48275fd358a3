package resettoken

import (
	"context"
	"fmt"
	c "resetme/internal/core/domain/common"
	"resetme/internal/core/domain/user"
	"sync"
	"time"
)

type FakeCodec struct {
	Token         Token
	DecoyToken    Token
	BoundUserID   user.ID
	IsUserIDValid bool
	IsValid       bool
	TokenExpiry   time.Time
}

func NewFakeCodec(token string, userID user.ID, isUserIDValid bool, isValid bool) *FakeCodec {
	return &FakeCodec{
		Token:         Token(token),
		DecoyToken:    Token("decoy-" + token),
		BoundUserID:   userID,
		IsUserIDValid: isUserIDValid,
		IsValid:       isValid,
	}
}

func (c *FakeCodec) Issue(u user.User) Token {
	return c.Token
}

func (c *FakeCodec) IssueDecoy() Token {
	return c.DecoyToken
}

func (c *FakeCodec) UserID(t Token) (user.ID, bool) {
	return c.BoundUserID, c.IsUserIDValid
}

func (c *FakeCodec) Verify(u user.User, t Token) bool {
	return c.IsValid
}

func (c *FakeCodec) ExpiresAt(t Token) (time.Time, bool) {
	if t != c.Token && t != c.DecoyToken {
		return time.Time{}, false
	}
	return c.TokenExpiry, true
}

type FakeRequestRepository struct {
	Requests    []Request
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRequestRepository() *FakeRequestRepository {
	return &FakeRequestRepository{Requests: make([]Request, 0, 10)}
}

func (r *FakeRequestRepository) Create(ctx context.Context, input CreateRequestInput) (req Request, err error) {
	if r.ReturnError {
		return req, fmt.Errorf("could not create reset request %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	req = Request{
		ID:          int64(len(r.Requests) + 1),
		UserID:      input.UserID,
		TokenHash:   input.TokenHash,
		RequestedAt: input.RequestedAt,
		ExpiresAt:   input.ExpiresAt,
	}
	r.Requests = append(r.Requests, req)
	return req, nil
}

func (r *FakeRequestRepository) GetByTokenHash(ctx context.Context, hash TokenHash) (req Request, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, req := range r.Requests {
		if req.TokenHash == hash {
			return req, nil
		}
	}
	return req, ErrTokenMalformed
}

func (r *FakeRequestRepository) MarkUsed(ctx context.Context, id int64, at time.Time) error {
	if r.ReturnError {
		return fmt.Errorf("could not mark reset request %d used", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, req := range r.Requests {
		if req.ID == id {
			if req.IsUsed() {
				return ErrTokenUsed
			}
			r.Requests[ix].UsedAt = c.NewOptional(at, true)
			return nil
		}
	}
	return ErrTokenMalformed
}

func (r *FakeRequestRepository) HasActiveForUser(ctx context.Context, userID user.ID, now time.Time) (bool, error) {
	if r.ReturnError {
		return false, fmt.Errorf("could not check active reset requests for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, req := range r.Requests {
		if req.UserID == userID && !req.IsUsed() && !req.IsExpired(now) {
			return true, nil
		}
	}
	return false, nil
}

type FakeTokenSender struct {
	Sent        []Token
	SentTo      []user.User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeTokenSender() *FakeTokenSender {
	return &FakeTokenSender{}
}

func (s *FakeTokenSender) SendToken(ctx context.Context, u user.User, t Token) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset token to user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, t)
	s.SentTo = append(s.SentTo, u)
	return nil
}

func (s *FakeTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}
