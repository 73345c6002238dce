package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
	"github.com/odlemon/khaya-portal-sub000/internal/session"
)

type sessionResponse struct {
	State string       `json:"state"`
	User  *domain.User `json:"user,omitempty"`
}

func sessionPayload(p *session.Provider) sessionResponse {
	resp := sessionResponse{State: p.State().String()}
	if user, ok := p.User(); ok {
		resp.User = &user
	}
	return resp
}

// getSessionHandler reports the current session state. Callers poll
// this until the state leaves "loading".
func getSessionHandler(p *session.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionPayload(p))
	}
}

// loginHandler authenticates against the upstream and commits the
// session on success.
func loginHandler(p *session.Provider, authAPI port.AuthAPI, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}
		sess, err := authAPI.Login(r.Context(), &req)
		if err != nil {
			metrics.IncrSessionEvent("login_failed")
			handleServiceError(w, err, logger)
			return
		}
		if err := p.Login(*sess); err != nil {
			logger.Error("session commit failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to persist session")
			return
		}
		metrics.IncrSessionEvent("login")
		writeJSON(w, http.StatusOK, sessionPayload(p))
	}
}

func logoutHandler(p *session.Provider, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.Logout()
		metrics.IncrSessionEvent("logout")
		writeJSON(w, http.StatusOK, sessionPayload(p))
	}
}
