package app

import (
	"fmt"
	"net/http"
	"resetme/internal/app/deps"
	"resetme/internal/app/services"
	"resetme/internal/http/handlers/flowsession"
	checkemail "resetme/internal/http/handlers/reset/check_email"
	requestreset "resetme/internal/http/handlers/reset/request_reset"
	resetpassword "resetme/internal/http/handlers/reset/reset_password"
	showform "resetme/internal/http/handlers/reset/show_form"
	showresetform "resetme/internal/http/handlers/reset/show_reset_form"
	stashtoken "resetme/internal/http/handlers/reset/stash_token"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	resetRouter := chi.NewRouter()
	resetRouter.Use(flowsession.WithFlowSession(deps.Config.ResetSessionTTL))
	resetRouter.Use(flowsession.SetAuthTokenToContext)
	resetRouter.Method(http.MethodGet, "/", showform.New(deps.Logger, deps.FlashStore))
	resetRouter.Method(http.MethodPost, "/", requestreset.New(s.RequestPasswordReset, isTestMode))
	resetRouter.Method(http.MethodGet, "/check-email", checkemail.New(s.CheckEmail, isTestMode, deps.Now))
	resetRouter.Method(http.MethodGet, "/reset/{token}", stashtoken.New(s.StashResetToken))
	resetRouter.Method(http.MethodGet, "/reset", showresetform.New(s.ResetPassword))
	resetRouter.Method(http.MethodPost, "/reset", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/reset-password", resetRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
