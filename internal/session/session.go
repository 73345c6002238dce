// Package session owns the one portal session: bearer token + staff profile,
// backed by a two-key persistent store, with expiry checking and a
// redirect-token bootstrap path. All authenticated calls take the Provider
// as an explicit dependency; nothing else may mutate the session.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

// State is the session lifecycle state:
// uninitialized → loading → {authenticated, anonymous}.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// Provider holds the session and gates all authenticated calls.
type Provider struct {
	mu    sync.RWMutex
	state State
	token string
	user  domain.User

	store    port.SessionStore
	authAPI  port.AuthAPI
	realtime port.RealtimeConn
	metrics  *observability.Metrics
	logger   *zap.Logger

	now func() time.Time
}

// NewProvider creates an uninitialized provider. Initialize must run before
// any authenticated call; until it settles, Token returns ErrAuthNotReady.
func NewProvider(store port.SessionStore, authAPI port.AuthAPI, realtime port.RealtimeConn, metrics *observability.Metrics, logger *zap.Logger) *Provider {
	return &Provider{
		state:    StateUninitialized,
		store:    store,
		authAPI:  authAPI,
		realtime: realtime,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Initialize restores the session. redirectToken, when non-empty, is the
// `token` query parameter from a Google-redirect landing and takes effect
// only when the store holds no session. Every path settles the state
// exactly once; failures are non-fatal and fall back to anonymous.
func (p *Provider) Initialize(ctx context.Context, redirectToken string) {
	p.mu.Lock()
	p.state = StateLoading
	p.mu.Unlock()

	token, haveToken, err := p.store.Get(KeyToken)
	if err != nil {
		p.logger.Warn("session: store read failed", zap.Error(err))
	}
	rawUser, haveUser, _ := p.store.Get(KeyUser)

	if haveToken && haveUser {
		if tokenExpired(token, p.now()) {
			p.logger.Info("session: stored token expired, clearing")
			p.metrics.IncrSessionEvent("expired")
			p.clearStore()
			p.settle(StateAnonymous)
			return
		}
		var user domain.User
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			p.logger.Warn("session: stored user unreadable, clearing", zap.Error(err))
			p.clearStore()
			p.settle(StateAnonymous)
			return
		}
		p.commit(token, user)
		return
	}

	// A token without a user (or the reverse) is an interrupted login or
	// logout. Drop the orphaned key so it cannot leak into a later session.
	if haveToken != haveUser {
		p.logger.Warn("session: partial store, clearing")
		p.clearStore()
	}

	if redirectToken != "" {
		user, err := p.authAPI.Me(ctx, redirectToken)
		if err != nil {
			p.logger.Warn("session: redirect-token bootstrap failed", zap.Error(err))
			p.settle(StateAnonymous)
			return
		}
		p.logger.Info("session: bootstrapped from redirect token",
			zap.String("user_id", user.ID),
		)
		p.metrics.IncrSessionEvent("bootstrap")
		if err := p.Login(domain.Session{Token: redirectToken, User: *user}); err != nil {
			p.logger.Warn("session: bootstrap login failed", zap.Error(err))
			p.settle(StateAnonymous)
		}
		return
	}

	p.settle(StateAnonymous)
}

// Login commits a session: in-memory state, both store keys, and the
// realtime connection. It also ends the loading window.
func (p *Provider) Login(sess domain.Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	if err := p.store.Set(KeyToken, sess.Token); err != nil {
		return err
	}
	if err := p.store.Set(KeyUser, string(rawUser)); err != nil {
		return err
	}

	p.commit(sess.Token, sess.User)

	p.logger.Info("session: logged in",
		zap.String("user_id", sess.User.ID),
		zap.String("role", sess.User.Role),
	)
	return nil
}

// Logout clears in-memory state and storage and closes the realtime
// connection. Always settles to anonymous.
func (p *Provider) Logout() {
	p.clearStore()

	if p.realtime != nil {
		if err := p.realtime.Close(); err != nil {
			p.logger.Warn("session: realtime close failed", zap.Error(err))
		}
	}

	p.mu.Lock()
	p.token = ""
	p.user = domain.User{}
	p.state = StateAnonymous
	p.mu.Unlock()

	p.logger.Info("session: logged out")
}

// Token implements port.TokenSource. It returns ErrAuthNotReady until
// Initialize settles, and an empty token for an anonymous session.
func (p *Provider) Token() (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.state == StateUninitialized || p.state == StateLoading {
		return "", domain.ErrAuthNotReady
	}
	return p.token, nil
}

// User returns the authenticated profile, if any.
func (p *Provider) User() (domain.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user, p.state == StateAuthenticated
}

// State returns the current lifecycle state.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Loading reports whether initialization has not settled yet.
func (p *Provider) Loading() bool {
	s := p.State()
	return s == StateUninitialized || s == StateLoading
}

func (p *Provider) commit(token string, user domain.User) {
	p.mu.Lock()
	p.token = token
	p.user = user
	p.state = StateAuthenticated
	p.mu.Unlock()

	if p.realtime != nil {
		if err := p.realtime.Open(token); err != nil {
			p.logger.Warn("session: realtime open failed", zap.Error(err))
		}
	}
}

func (p *Provider) settle(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *Provider) clearStore() {
	_ = p.store.Delete(KeyToken)
	_ = p.store.Delete(KeyUser)
}

// tokenExpired decodes the JWT's exp claim without verifying the signature
// (the portal holds no signing secret; expiry is the only local check).
// Undecodable tokens count as expired.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Time.Before(now)
}
