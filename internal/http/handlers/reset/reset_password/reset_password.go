package resetpassword

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

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	requestFormLocation = "/reset-password"
	loginLocation       = "/login"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Password        string
	ConfirmPassword string
}

func (i *Input) FromForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	i.Password = r.PostFormValue("password")
	i.ConfirmPassword = r.PostFormValue("confirm_password")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Password, validation.Required, validation.Length(8, 256)),
		validation.Field(&i.ConfirmPassword, validation.Required, validation.By(func(value interface{}) error {
			confirm, _ := value.(string)
			if confirm != i.Password {
				return errors.New("passwords do not match")
			}
			return nil
		})),
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

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			SessionID:   flowsession.SessionID(r.Context()),
			NewPassword: c.NewOptional(user.RawPassword(input.Password), true),
			Locale:      flowsession.ParseLocale(r),
		},
	)

	var tokenErr *resettoken.Error
	switch {
	case err == nil:
		response.Redirect(rw, r, loginLocation)
	case errors.Is(err, session.ErrNoToken):
		response.RenderNotFound(rw)
	case errors.As(err, &tokenErr):
		response.Redirect(rw, r, requestFormLocation)
	default:
		response.RenderInternalError(rw)
	}
}
