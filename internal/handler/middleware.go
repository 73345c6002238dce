package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/session"
)

// SessionGateMiddleware blocks the authenticated API surface until the
// session has settled. A loading session answers 503 so the caller
// retries; an anonymous one answers 401.
func SessionGateMiddleware(p *session.Provider, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch p.State() {
			case session.StateAuthenticated:
				next.ServeHTTP(w, r)
			case session.StateUninitialized, session.StateLoading:
				logger.Debug("request while session resolving", zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusServiceUnavailable, "session is still loading, retry shortly")
			default:
				writeError(w, http.StatusUnauthorized, "not authenticated")
			}
		})
	}
}
