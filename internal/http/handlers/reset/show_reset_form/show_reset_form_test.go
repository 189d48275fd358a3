package showresetform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	service "resetme/internal/core/services/reset_password"
	"resetme/internal/http/handlers/flowsession"
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

func TestShowResetFormHandler(t *testing.T) {
	cases := []struct {
		id               string
		serviceErr       error
		expectedStatus   int
		expectedLocation string
	}{
		{
			id:             "valid token",
			expectedStatus: http.StatusOK,
		},
		{
			id:             "no stashed token",
			serviceErr:     session.ErrNoToken,
			expectedStatus: http.StatusNotFound,
		},
		{
			id:               "expired token",
			serviceErr:       resettoken.ErrTokenExpired,
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/reset-password",
		},
		{
			id:               "used token",
			serviceErr:       resettoken.ErrTokenUsed,
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/reset-password",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			req := httptest.NewRequest(http.MethodGet, "/reset-password/reset", nil)
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
		})
	}
}

func TestTokenIsNotConsumedOnRender(t *testing.T) {
	stub := &stubService{}
	handler := New(stub)

	req := httptest.NewRequest(http.MethodGet, "/reset-password/reset", nil)
	req = req.WithContext(context.WithValue(
		req.Context(),
		flowsession.CONTEXT_SESSION_ID_KEY,
		session.ID("test-session"),
	))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotNil(t, stub.input)
	assert.False(t, stub.input.NewPassword.IsPresent)
}
