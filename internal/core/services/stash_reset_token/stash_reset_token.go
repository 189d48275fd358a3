package stashresettoken

import (
	"context"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/domain/logging"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	"resetme/internal/core/services"
)

type Input struct {
	SessionID session.ID
	Token     resettoken.Token
}

type Result struct{}

type service struct {
	log        logging.Logger
	tokenStore session.TokenStore
}

func New(
	log logging.Logger,
	tokenStore session.TokenStore,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenStore == nil {
		panic(e.NewNilArgumentError("tokenStore"))
	}
	return &service{
		log:        log,
		tokenStore: tokenStore,
	}
}

// Run moves the token out of the URL into the session slot so the secret
// does not stay in browser history. An existing slot value is overwritten.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.tokenStore.Put(ctx, input.SessionID, input.Token); err != nil {
		s.log.Error(
			ctx,
			"Could not stash reset token in the flow session.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
		return result, err
	}
	return result, nil
}
