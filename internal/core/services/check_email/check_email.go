package checkemail

import (
	"context"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/domain/logging"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	"resetme/internal/core/services"
	"time"
)

type Input struct {
	SessionID session.ID
}

type Result struct {
	Token     resettoken.Token
	ExpiresAt time.Time
	IsDecoy   bool
}

type service struct {
	log        logging.Logger
	tokenStore session.TokenStore
	codec      resettoken.Codec
}

func New(
	log logging.Logger,
	tokenStore session.TokenStore,
	codec resettoken.Codec,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenStore == nil {
		panic(e.NewNilArgumentError("tokenStore"))
	}
	if codec == nil {
		panic(e.NewNilArgumentError("codec"))
	}
	return &service{
		log:        log,
		tokenStore: tokenStore,
		codec:      codec,
	}
}

// Run always yields a token-shaped value. When no reset was requested in
// this session a decoy keeps the page indistinguishable from the real case.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	token, ok, err := s.tokenStore.Get(ctx, input.SessionID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not read reset token from the flow session.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
		ok = false
	}
	if !ok {
		token = s.codec.IssueDecoy()
		result.IsDecoy = true
	}

	expiresAt, ok := s.codec.ExpiresAt(token)
	if !ok && !result.IsDecoy {
		// A forged or truncated link can leave a non-decodable value in
		// the session slot. The page must still render a token shape.
		s.log.Warning(
			ctx,
			"Stored reset token is not decodable, falling back to a decoy.",
			logging.Entry("sessionID", input.SessionID),
		)
		token = s.codec.IssueDecoy()
		result.IsDecoy = true
		expiresAt, ok = s.codec.ExpiresAt(token)
	}
	if !ok {
		return result, e.NewInvalidStateError("decoy token has no expiry")
	}

	result.Token = token
	result.ExpiresAt = expiresAt
	return result, nil
}
