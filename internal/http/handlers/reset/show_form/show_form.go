package showform

import (
	"net/http"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/domain/logging"
	"resetme/internal/core/domain/session"
	"resetme/internal/http/handlers/flowsession"
	"resetme/internal/http/handlers/response"
)

// Handler renders the "enter your email" step together with any flash
// messages left by a previous step.
type Handler struct {
	log        logging.Logger
	flashStore session.FlashStore
}

func New(log logging.Logger, flashStore session.FlashStore) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if flashStore == nil {
		panic(e.NewNilArgumentError("flashStore"))
	}
	return &Handler{log: log, flashStore: flashStore}
}

type Result struct {
	Flashes []session.Flash `json:"flashes"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	sessionID := flowsession.SessionID(r.Context())

	flashes, err := h.flashStore.Pop(r.Context(), sessionID)
	if err != nil {
		h.log.Error(
			r.Context(),
			"Could not read flash messages.",
			logging.Entry("sessionID", sessionID),
			logging.Entry("err", err),
		)
		flashes = nil
	}
	if flashes == nil {
		flashes = []session.Flash{}
	}

	response.Render(rw, Result{Flashes: flashes}, http.StatusOK)
}
