package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	"resetme/internal/core/domain/translation"
	"resetme/internal/core/domain/user"
	service "resetme/internal/core/services/reset_password"
	"resetme/internal/http/handlers/flowsession"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return result, nil
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		id               string
		form             url.Values
		serviceErr       error
		expectedStatus   int
		expectedLocation string
		expectRun        bool
	}{
		{
			id:               "success",
			form:             url.Values{"password": {"new-password"}, "confirm_password": {"new-password"}},
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/login",
			expectRun:        true,
		},
		{
			id:             "missing password",
			form:           url.Values{"confirm_password": {"new-password"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			form:           url.Values{"password": {"short"}, "confirm_password": {"short"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "passwords do not match",
			form:           url.Values{"password": {"new-password"}, "confirm_password": {"other-password"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "no stashed token",
			form:           url.Values{"password": {"new-password"}, "confirm_password": {"new-password"}},
			serviceErr:     session.ErrNoToken,
			expectedStatus: http.StatusNotFound,
		},
		{
			id:               "expired token",
			form:             url.Values{"password": {"new-password"}, "confirm_password": {"new-password"}},
			serviceErr:       resettoken.ErrTokenExpired,
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/reset-password",
		},
		{
			id:               "used token",
			form:             url.Values{"password": {"new-password"}, "confirm_password": {"new-password"}},
			serviceErr:       resettoken.ErrTokenUsed,
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/reset-password",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			req := httptest.NewRequest(
				http.MethodPost,
				"/reset-password/reset",
				strings.NewReader(testcase.form.Encode()),
			)
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("Accept-Language", "pl,en;q=0.9")
			req = req.WithContext(context.WithValue(
				req.Context(),
				flowsession.CONTEXT_SESSION_ID_KEY,
				session.ID("test-session"),
			))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, testcase.expectedStatus, rec.Code)
			if testcase.expectedLocation != "" {
				assert.Equal(t, testcase.expectedLocation, rec.Header().Get("Location"))
			}
			if testcase.expectRun {
				assert.NotNil(t, stub.input)
				assert.Equal(t, session.ID("test-session"), stub.input.SessionID)
				assert.True(t, stub.input.NewPassword.IsPresent)
				assert.Equal(t, user.RawPassword("new-password"), stub.input.NewPassword.Value)
				assert.Equal(t, translation.LocalePL, stub.input.Locale)
			}
		})
	}
}
