package showform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"resetme/internal/core/domain/logging"
	"resetme/internal/core/domain/session"
	"resetme/internal/http/handlers/flowsession"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashesAreRendered(t *testing.T) {
	flashStore := session.NewFakeFlashStore()
	flash := session.Flash{Category: session.FlashError, Message: "something went wrong"}
	require.Nil(t, flashStore.Add(context.Background(), session.ID("test-session"), flash))

	handler := New(logging.NewFakeLogger(), flashStore)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newRequest())

	require.Equal(t, http.StatusOK, rec.Code)

	var body Result
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []session.Flash{flash}, body.Flashes)

	// Flashes are consumed on first render.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, newRequest())
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []session.Flash{}, body.Flashes)
}

func newRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/reset-password", nil)
	ctx := context.WithValue(req.Context(), flowsession.CONTEXT_SESSION_ID_KEY, session.ID("test-session"))
	return req.WithContext(ctx)
}
