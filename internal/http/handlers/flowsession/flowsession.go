package flowsession

import (
	"context"
	"net/http"
	c "resetme/internal/core/domain/common"
	"resetme/internal/core/domain/session"
	"resetme/internal/core/domain/translation"
	"resetme/internal/core/domain/user"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SESSION_COOKIE_NAME = "reset_session"

	AUTH_TOKEN_PREFIX  = "Bearer "
	AUTH_TOKEN_MAX_LEN = 1024
)

type contextKey string

const (
	CONTEXT_SESSION_ID_KEY = contextKey("flow-session-id")
	CONTEXT_AUTH_TOKEN_KEY = contextKey("auth-token")
)

// WithFlowSession guarantees every request downstream carries a flow session
// ID. A missing or empty cookie gets replaced with a fresh UUID.
func WithFlowSession(ttl time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := readSessionCookie(r)
			if sessionID == "" {
				sessionID = session.ID(uuid.NewString())
				http.SetCookie(w, &http.Cookie{
					Name:     SESSION_COOKIE_NAME,
					Value:    string(sessionID),
					Path:     "/",
					MaxAge:   int(ttl / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := context.WithValue(r.Context(), CONTEXT_SESSION_ID_KEY, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseAuthToken(r)
		if ok {
			ctx := context.WithValue(r.Context(), CONTEXT_AUTH_TOKEN_KEY, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func SessionID(ctx context.Context) session.ID {
	sessionID, _ := ctx.Value(CONTEXT_SESSION_ID_KEY).(session.ID)
	return sessionID
}

func AuthToken(ctx context.Context) c.Optional[user.SessionToken] {
	token, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	return c.NewOptional(token, ok)
}

// ParseLocale picks the first language from the Accept-Language header.
// Anything unsupported falls back to the default locale downstream.
func ParseLocale(r *http.Request) translation.Locale {
	header := r.Header.Get("accept-language")
	if header == "" {
		return translation.DefaultLocale
	}
	first := strings.TrimSpace(strings.SplitN(header, ",", 2)[0])
	first = strings.SplitN(first, ";", 2)[0]
	first = strings.SplitN(first, "-", 2)[0]
	if len(first) != 2 {
		return translation.DefaultLocale
	}
	return translation.Locale(strings.ToLower(first))
}

func ParseAuthToken(r *http.Request) (token user.SessionToken, ok bool) {
	header := r.Header.Get("authorization")
	if header == "" {
		return token, false
	}
	parts := strings.SplitN(header, AUTH_TOKEN_PREFIX, 2)
	if len(parts) != 2 {
		return token, false
	}
	if len(parts[1]) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.SessionToken(parts[1]), true
}

func readSessionCookie(r *http.Request) session.ID {
	cookie, err := r.Cookie(SESSION_COOKIE_NAME)
	if err != nil || cookie.Value == "" {
		return session.ID("")
	}
	if len(cookie.Value) > 128 {
		return session.ID("")
	}
	return session.ID(cookie.Value)
}
