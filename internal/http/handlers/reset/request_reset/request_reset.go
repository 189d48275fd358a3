package requestreset

import (
	"errors"
	"net"
	"net/http"
	c "resetme/internal/core/domain/common"
	e "resetme/internal/core/domain/errors"
	ratelimiter "resetme/internal/core/domain/rate_limiter"
	"resetme/internal/core/domain/user"
	"resetme/internal/core/services"
	service "resetme/internal/core/services/request_password_reset"
	"resetme/internal/http/handlers/flowsession"
	"resetme/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const checkEmailLocation = "/reset-password/check-email"

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string
}

func (i *Input) FromForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	i.Email = r.PostFormValue("email")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromForm(r); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Email:     c.NewEmail(input.Email),
			SessionID: flowsession.SessionID(r.Context()),
			AuthToken: flowsession.AuthToken(r.Context()),
			ClientIP:  clientIP(r),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrAlreadyAuthenticated):
			response.RenderNotFound(rw)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	if h.isTestMode {
		rw.Header().Set("x-test-password-reset-token", string(result.Token))
	}
	// The redirect is the same whether or not the email matched a user.
	response.Redirect(rw, r, checkEmailLocation)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
