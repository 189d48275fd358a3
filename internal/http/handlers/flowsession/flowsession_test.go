package flowsession

import (
	"net/http"
	"net/http/httptest"
	"resetme/internal/core/domain/session"
	"resetme/internal/core/domain/translation"
	"resetme/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionCookieIsIssued(t *testing.T) {
	var captured session.ID
	handler := WithFlowSession(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reset-password", nil))

	assert.NotEqual(t, session.ID(""), captured)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, SESSION_COOKIE_NAME, cookies[0].Name)
	assert.Equal(t, string(captured), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestExistingSessionCookieIsKept(t *testing.T) {
	var captured session.ID
	handler := WithFlowSession(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/reset-password", nil)
	req.AddCookie(&http.Cookie{Name: SESSION_COOKIE_NAME, Value: "existing-session"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, session.ID("existing-session"), captured)
	assert.Len(t, rec.Result().Cookies(), 0)
}

func TestParseAuthToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reset-password", nil)
	_, ok := ParseAuthToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Bearer test-token")
	token, ok := ParseAuthToken(req)
	assert.True(t, ok)
	assert.Equal(t, user.SessionToken("test-token"), token)
}

func TestParseLocale(t *testing.T) {
	cases := []struct {
		header   string
		expected translation.Locale
	}{
		{header: "", expected: translation.DefaultLocale},
		{header: "en", expected: translation.LocaleEN},
		{header: "pl,en;q=0.9", expected: translation.LocalePL},
		{header: "pl-PL,pl;q=0.9", expected: translation.LocalePL},
		{header: "DE", expected: translation.Locale("de")},
		{header: "garbage-value;;;", expected: translation.DefaultLocale},
	}

	for _, testcase := range cases {
		req := httptest.NewRequest(http.MethodGet, "/reset-password", nil)
		if testcase.header != "" {
			req.Header.Set("Accept-Language", testcase.header)
		}
		assert.Equal(t, testcase.expected, ParseLocale(req), testcase.header)
	}
}
