package resetpassword

import (
	"context"
	"errors"
	"fmt"
	c "resetme/internal/core/domain/common"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/domain/events"
	"resetme/internal/core/domain/logging"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	"resetme/internal/core/domain/translation"
	uow "resetme/internal/core/domain/unit_of_work"
	"resetme/internal/core/domain/user"
	"resetme/internal/core/services"
	"time"
)

type Input struct {
	SessionID session.ID
	// NewPassword is absent when the change-password form is only being
	// rendered; the token is validated but not consumed.
	NewPassword c.Optional[user.RawPassword]
	Locale      translation.Locale
}

type Result struct{}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	userRepository user.UserRepository
	resetRequests  resettoken.RequestRepository
	codec          resettoken.Codec
	passwordHasher user.PasswordHasher
	tokenStore     session.TokenStore
	flashStore     session.FlashStore
	translator     translation.Translator
	publisher      events.Publisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	userRepository user.UserRepository,
	resetRequests resettoken.RequestRepository,
	codec resettoken.Codec,
	passwordHasher user.PasswordHasher,
	tokenStore session.TokenStore,
	flashStore session.FlashStore,
	translator translation.Translator,
	publisher events.Publisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if resetRequests == nil {
		panic(e.NewNilArgumentError("resetRequests"))
	}
	if codec == nil {
		panic(e.NewNilArgumentError("codec"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if tokenStore == nil {
		panic(e.NewNilArgumentError("tokenStore"))
	}
	if flashStore == nil {
		panic(e.NewNilArgumentError("flashStore"))
	}
	if translator == nil {
		panic(e.NewNilArgumentError("translator"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		userRepository: userRepository,
		resetRequests:  resetRequests,
		codec:          codec,
		passwordHasher: passwordHasher,
		tokenStore:     tokenStore,
		flashStore:     flashStore,
		translator:     translator,
		publisher:      publisher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	token, ok, err := s.tokenStore.Get(ctx, input.SessionID)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, session.ErrNoToken
	}

	u, request, tokenErr := s.validateToken(ctx, token)
	if tokenErr != nil {
		s.addTokenErrorFlash(ctx, input.SessionID, input.Locale, tokenErr)
		return result, tokenErr
	}

	if !input.NewPassword.IsPresent {
		return result, nil
	}

	// The request is marked used in the same transaction that persists the
	// new hash, so a crash can not leave a still-valid consumed token.
	uowCtx, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uowCtx.Rollback(ctx)

	now := s.now()
	if err := uowCtx.ResetRequests().MarkUsed(ctx, request.ID, now); err != nil {
		// A concurrent submission may have consumed the request between
		// validation and this update. The loser gets the same flash as a
		// validation failure.
		var raceErr *resettoken.Error
		if errors.As(err, &raceErr) {
			s.addTokenErrorFlash(ctx, input.SessionID, input.Locale, raceErr)
			return result, raceErr
		}
		s.log.Error(
			ctx,
			"Could not mark reset request used.",
			logging.Entry("requestID", request.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword.Value)
	if err != nil {
		return result, err
	}
	if err := uowCtx.Users().SetPassword(ctx, u.ID, newPasswordHash); err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err := uowCtx.Commit(ctx); err != nil {
		s.log.Error(ctx, "Could not commit password reset.", logging.Entry("err", err))
		return result, err
	}

	if err := s.tokenStore.Clear(ctx, input.SessionID); err != nil {
		s.log.Error(
			ctx,
			"Could not clear the flow session token slot.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
	}
	s.addFlash(ctx, input.SessionID, session.Flash{
		Category: session.FlashSuccess,
		Message:  s.translator.Trans(translation.KeySuccess, input.Locale),
	})

	err = s.publisher.PublishResetCompleted(ctx, events.PasswordResetCompleted{
		UserID:      u.ID,
		CompletedAt: now,
	})
	if err != nil {
		s.log.Error(ctx, "Could not publish reset completed event.", logging.Entry("err", err))
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", u.ID),
	)
	return result, nil
}

func (s *service) validateToken(
	ctx context.Context,
	token resettoken.Token,
) (u user.User, request resettoken.Request, tokenErr *resettoken.Error) {
	userID, ok := s.codec.UserID(token)
	if !ok {
		return u, request, resettoken.ErrTokenMalformed
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("userID", userID))
		return u, request, resettoken.ErrTokenMalformed
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return u, request, resettoken.ErrTokenMalformed
	}

	request, err = s.resetRequests.GetByTokenHash(ctx, resettoken.Hash(token))
	if err != nil {
		var re *resettoken.Error
		if errors.As(err, &re) {
			return u, request, re
		}
		s.log.Error(ctx, "Could not get reset request.", logging.Entry("err", err))
		return u, request, resettoken.ErrTokenMalformed
	}
	if request.IsUsed() {
		return u, request, resettoken.ErrTokenUsed
	}
	if request.IsExpired(s.now()) {
		return u, request, resettoken.ErrTokenExpired
	}
	if !s.codec.Verify(u, token) {
		return u, request, resettoken.ErrTokenMalformed
	}
	return u, request, nil
}

func (s *service) addTokenErrorFlash(
	ctx context.Context,
	sessionID session.ID,
	locale translation.Locale,
	tokenErr *resettoken.Error,
) {
	s.addFlash(ctx, sessionID, session.Flash{
		Category: session.FlashError,
		Message: fmt.Sprintf(
			"%s - %s",
			s.translator.Trans(translation.KeyProblemValidate, locale),
			s.translator.Trans(translation.ReasonKey(tokenErr.Reason), locale),
		),
	})
}

func (s *service) addFlash(ctx context.Context, sessionID session.ID, f session.Flash) {
	if err := s.flashStore.Add(ctx, sessionID, f); err != nil {
		s.log.Error(
			ctx,
			"Could not add flash message.",
			logging.Entry("sessionID", sessionID),
			logging.Entry("err", err),
		)
	}
}
