package stashtoken

import (
	"context"
	"net/http"
	"net/http/httptest"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	service "resetme/internal/core/services/stash_reset_token"
	"resetme/internal/http/handlers/flowsession"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return result, nil
}

func TestStashTokenRedirects(t *testing.T) {
	stub := &stubService{}
	handler := New(stub)

	req := newRequest("test-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/reset-password/reset", rec.Header().Get("Location"))
	assert.NotNil(t, stub.input)
	assert.Equal(t, resettoken.Token("test-token"), stub.input.Token)
	assert.Equal(t, session.ID("test-session"), stub.input.SessionID)
}

func TestEmptyTokenIsNotFound(t *testing.T) {
	stub := &stubService{}
	handler := New(stub)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newRequest(""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, stub.input)
}

func newRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/reset-password/reset/token", nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("token", token)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = context.WithValue(ctx, flowsession.CONTEXT_SESSION_ID_KEY, session.ID("test-session"))
	return req.WithContext(ctx)
}
