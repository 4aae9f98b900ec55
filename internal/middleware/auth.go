package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/trainerdash/internal/session"
	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/telemetry/tracing"
	"github.com/2beens/trainerdash/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=middleware_mocks_test.go -package=middleware_test

type sessionLoader interface {
	Load(ctx context.Context) (*strava.Session, error)
}

type sessionCtxKey struct{}

// WithSession returns a copy of ctx carrying the strava session.
func WithSession(ctx context.Context, s *strava.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

func SessionFromContext(ctx context.Context) (*strava.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*strava.Session)
	return s, ok && s != nil
}

type AuthMiddlewareHandler struct {
	sessions             sessionLoader
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(sessions sessionLoader) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		sessions: sessions,
		allowedPaths: map[string]bool{
			"/":        true,
			"/health":  true,
			"/version": true,
		},
		allowedPathsPrefixes: []string{
			"/auth/strava/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// SessionCheck rejects requests to data routes while no strava account is connected.
// The loaded session is passed down in the request context.
func (h *AuthMiddlewareHandler) SessionCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			stravaSession, err := h.sessions.Load(ctx)
			switch {
			case errors.Is(err, session.ErrNoSession):
				log.Tracef("[no session] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, http.StatusUnauthorized, "not connected to strava")
				span.SetStatus(codes.Error, "no-session")
				return
			case err != nil:
				log.Errorf("[failed session load] => %s: %s", r.URL.Path, err)
				pkg.WriteJSONError(w, http.StatusUnauthorized, "not connected to strava")
				span.SetStatus(codes.Error, "session-load-err")
				span.RecordError(err)
				return
			case stravaSession.AthleteID == 0:
				pkg.WriteJSONError(w, http.StatusUnauthorized, "athlete id missing from session")
				span.SetStatus(codes.Error, "no-athlete-id")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), stravaSession)))
		})
	}
}
