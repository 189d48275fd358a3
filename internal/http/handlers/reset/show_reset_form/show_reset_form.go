package showresetform

import (
	"errors"
	"net/http"
	c "resetme/internal/core/domain/common"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	"resetme/internal/core/domain/user"
	"resetme/internal/core/services"
	service "resetme/internal/core/services/reset_password"
	"resetme/internal/http/handlers/flowsession"
	"resetme/internal/http/handlers/response"
)

const requestFormLocation = "/reset-password"

// Handler validates the stashed token before showing the new-password form.
// A bad token sends the user back to the start with a flash explaining why.
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
	_, err := h.service.Run(
		r.Context(),
		service.Input{
			SessionID:   flowsession.SessionID(r.Context()),
			NewPassword: c.Optional[user.RawPassword]{},
			Locale:      flowsession.ParseLocale(r),
		},
	)

	var tokenErr *resettoken.Error
	switch {
	case err == nil:
		response.Render(rw, struct{}{}, http.StatusOK)
	case errors.Is(err, session.ErrNoToken):
		response.RenderNotFound(rw)
	case errors.As(err, &tokenErr):
		response.Redirect(rw, r, requestFormLocation)
	default:
		response.RenderInternalError(rw)
	}
}
