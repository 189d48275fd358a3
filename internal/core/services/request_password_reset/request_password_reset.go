package requestpasswordreset

import (
	"context"
	"errors"
	c "resetme/internal/core/domain/common"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/domain/events"
	"resetme/internal/core/domain/logging"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	"resetme/internal/core/domain/user"
	"resetme/internal/core/services"
	"time"
)

type Input struct {
	Email     c.Email
	SessionID session.ID
	AuthToken c.Optional[user.SessionToken]
	ClientIP  string
}

func (i Input) GetRateLimitKey() string {
	return "request-password-reset::" + i.ClientIP
}

type Result struct {
	// Token is set only when a reset was actually issued. Handlers must
	// not let it influence the response outside of test mode.
	Token resettoken.Token
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	sessions       user.SessionRepository
	resetRequests  resettoken.RequestRepository
	codec          resettoken.Codec
	sender         resettoken.TokenSender
	tokenStore     session.TokenStore
	publisher      events.Publisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessions user.SessionRepository,
	resetRequests resettoken.RequestRepository,
	codec resettoken.Codec,
	sender resettoken.TokenSender,
	tokenStore session.TokenStore,
	publisher events.Publisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessions == nil {
		panic(e.NewNilArgumentError("sessions"))
	}
	if resetRequests == nil {
		panic(e.NewNilArgumentError("resetRequests"))
	}
	if codec == nil {
		panic(e.NewNilArgumentError("codec"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if tokenStore == nil {
		panic(e.NewNilArgumentError("tokenStore"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		sessions:       sessions,
		resetRequests:  resetRequests,
		codec:          codec,
		sender:         sender,
		tokenStore:     tokenStore,
		publisher:      publisher,
		now:            now,
	}
}

// Run never reveals whether the email belongs to an account. Every branch
// except the already-authenticated rejection returns the same result.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.AuthToken.IsPresent {
		_, err := s.sessions.GetUserByToken(ctx, input.AuthToken.Value)
		if err == nil {
			return result, user.ErrAlreadyAuthenticated
		}
		if !errors.Is(err, user.ErrUserDoesNotExist) && !errors.Is(err, user.ErrSessionDoesNotExist) {
			return result, err
		}
	}

	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.")
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset request.",
			logging.Entry("err", err),
		)
		return result, err
	}

	now := s.now()
	hasActive, err := s.resetRequests.HasActiveForUser(ctx, u.ID, now)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not check active reset requests.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if hasActive {
		s.log.Info(
			ctx,
			"Password reset requested too soon, not issuing a new token.",
			logging.Entry("userID", u.ID),
		)
		return result, nil
	}

	token := s.codec.Issue(u)
	expiresAt, ok := s.codec.ExpiresAt(token)
	if !ok {
		return result, e.NewInvalidStateError("issued token has no expiry")
	}
	_, err = s.resetRequests.Create(ctx, resettoken.CreateRequestInput{
		UserID:      u.ID,
		TokenHash:   resettoken.Hash(token),
		RequestedAt: now,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not record password reset request.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.sender.SendToken(ctx, u, token); err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, nil
	}

	if err := s.tokenStore.Put(ctx, input.SessionID, token); err != nil {
		s.log.Error(
			ctx,
			"Could not stash reset token in the flow session.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
	}

	err = s.publisher.PublishResetRequested(ctx, events.PasswordResetRequested{
		UserID:      u.ID,
		Email:       u.Email,
		RequestedAt: now,
	})
	if err != nil {
		s.log.Error(ctx, "Could not publish reset requested event.", logging.Entry("err", err))
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("userID", u.ID),
	)
	return Result{Token: token}, nil
}
