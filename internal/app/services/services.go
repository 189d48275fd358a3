package services

import (
	"resetme/internal/app/deps"
	drl "resetme/internal/core/domain/rate_limiter"
	"resetme/internal/core/services"
	checkemail "resetme/internal/core/services/check_email"
	ratelimiting "resetme/internal/core/services/rate_limiting"
	requestpasswordreset "resetme/internal/core/services/request_password_reset"
	resetpassword "resetme/internal/core/services/reset_password"
	stashresettoken "resetme/internal/core/services/stash_reset_token"
)

type Services struct {
	RequestPasswordReset services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	CheckEmail           services.Service[checkemail.Input, checkemail.Result]
	StashResetToken      services.Service[stashresettoken.Input, stashresettoken.Result]
	ResetPassword        services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.RequestPasswordReset = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Minute, Value: deps.Config.PasswordResetRequestsPerMinute},
		requestpasswordreset.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.ResetRequestRepository,
			deps.TokenCodec,
			deps.TokenSender,
			deps.TokenStore,
			deps.EventPublisher,
			deps.Now,
		),
	)
	s.CheckEmail = checkemail.New(
		deps.Logger,
		deps.TokenStore,
		deps.TokenCodec,
	)
	s.StashResetToken = stashresettoken.New(
		deps.Logger,
		deps.TokenStore,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.UserRepository,
		deps.ResetRequestRepository,
		deps.TokenCodec,
		deps.PasswordHasher,
		deps.TokenStore,
		deps.FlashStore,
		deps.Translator,
		deps.EventPublisher,
		deps.Now,
	)

	return s
}
