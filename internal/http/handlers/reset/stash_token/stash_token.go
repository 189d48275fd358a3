package stashtoken

import (
	"net/http"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/services"
	service "resetme/internal/core/services/stash_reset_token"
	"resetme/internal/http/handlers/flowsession"
	"resetme/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

const resetFormLocation = "/reset-password/reset"

// Handler moves the token from the emailed URL into the flow session and
// redirects, so the token never sits in browser history or Referer headers.
type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" || len(token) > 1024 {
		response.RenderNotFound(rw)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			SessionID: flowsession.SessionID(r.Context()),
			Token:     resettoken.Token(token),
		},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Redirect(rw, r, resetFormLocation)
}
