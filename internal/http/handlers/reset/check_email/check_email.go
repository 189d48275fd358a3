package checkemail

import (
	"net/http"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/services"
	service "resetme/internal/core/services/check_email"
	"resetme/internal/http/handlers/flowsession"
	"resetme/internal/http/handlers/response"
	"time"

	"github.com/golang-module/carbon/v2"
)

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
	now        func() time.Time
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
	now func() time.Time,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Handler{service: service, isTestMode: isTestMode, now: now}
}

type Result struct {
	// ExpiresIn is a humanized duration ("1 hour") for the page copy.
	ExpiresIn string    `json:"expiresIn"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(
		r.Context(),
		service.Input{SessionID: flowsession.SessionID(r.Context())},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode && !result.IsDecoy {
		rw.Header().Set("x-test-password-reset-token", string(result.Token))
	}
	response.Render(rw, Result{
		ExpiresIn: carbon.Time2Carbon(result.ExpiresAt).DiffAbsInString(carbon.Time2Carbon(h.now())),
		ExpiresAt: result.ExpiresAt,
	}, http.StatusOK)
}
