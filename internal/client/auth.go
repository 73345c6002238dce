// Package client holds the typed per-domain wrappers over the backend API.
// Each exposes one function per upstream operation. Reads surface typed
// errors (the auth-not-ready sentinel passes through untouched); writes
// always propagate failures so the caller can show a specific message.
package client

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

var tracer = otel.Tracer("client")

// AuthClient wraps the upstream auth endpoints.
type AuthClient struct {
	backend *backend.Client
	// rawHTTP is used for Me, which authenticates with an explicit token
	// rather than the session's (the session may not exist yet).
	rawHTTP *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewAuthClient creates the auth client. The backend client may be nil
// at construction and set later with SetBackend; the session provider,
// the backend client and this client form a dependency cycle that main
// breaks by wiring the backend in last.
func NewAuthClient(b *backend.Client, rawHTTP *http.Client, baseURL string, logger *zap.Logger) *AuthClient {
	return &AuthClient{backend: b, rawHTTP: rawHTTP, baseURL: baseURL, logger: logger}
}

// SetBackend installs the session-gated backend client.
func (c *AuthClient) SetBackend(b *backend.Client) {
	c.backend = b
}

// loginPayload tolerates both response shapes the backend has shipped:
// {token, user} at the top of data, or nested under data again.
type loginPayload struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
	Data  *struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	} `json:"data"`
}

// Login exchanges credentials for a session.
func (c *AuthClient) Login(ctx context.Context, req *domain.LoginRequest) (*domain.Session, error) {
	ctx, span := tracer.Start(ctx, "AuthClient.Login")
	defer span.End()

	var payload loginPayload
	if err := c.backend.Post(ctx, "/auth/login", req, &payload); err != nil {
		return nil, err
	}

	token, user := payload.Token, payload.User
	if payload.Data != nil {
		if token == "" {
			token = payload.Data.Token
		}
		if user == nil {
			user = payload.Data.User
		}
	}
	if token == "" || user == nil {
		return nil, &domain.ErrUpstream{Status: http.StatusOK, Message: "login response missing token or user"}
	}

	return &domain.Session{Token: token, User: *user}, nil
}

// Me resolves a profile from a raw bearer token. Used by the
// redirect-token bootstrap, before the session provider is settled, so it
// bypasses the session-gated backend client on purpose.
func (c *AuthClient) Me(ctx context.Context, token string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "AuthClient.Me")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.rawHTTP.Do(req)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "auth", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &domain.ErrUnauthorized{Message: "redirect token rejected"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ErrUpstream{Status: resp.StatusCode}
	}

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &domain.ErrUpstream{Status: resp.StatusCode, Message: env.Message}
	}

	var user domain.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
