package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/session"
)

// --- Mocks ---

type mockStore struct {
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string]string{}}
}

func (m *mockStore) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockStore) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *mockStore) Delete(key string) error {
	delete(m.data, key)
	return nil
}

type mockAuthAPI struct {
	user *domain.User
	err  error
}

func (m *mockAuthAPI) Login(_ context.Context, _ *domain.LoginRequest) (*domain.Session, error) {
	return nil, errors.New("not used")
}

func (m *mockAuthAPI) Me(_ context.Context, _ string) (*domain.User, error) {
	return m.user, m.err
}

type mockRealtime struct {
	opened int
	closed int
	token  string
}

func (m *mockRealtime) Open(token string) error {
	m.opened++
	m.token = token
	return nil
}

func (m *mockRealtime) Close() error {
	m.closed++
	return nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newProvider(store *mockStore, auth *mockAuthAPI, rt *mockRealtime) *session.Provider {
	return session.NewProvider(store, auth, rt, observability.NewMetrics(), zap.NewNop())
}

// --- Tests ---

func TestTokenBeforeInitialize(t *testing.T) {
	p := newProvider(newMockStore(), &mockAuthAPI{}, &mockRealtime{})

	if _, err := p.Token(); !errors.Is(err, domain.ErrAuthNotReady) {
		t.Fatalf("expected ErrAuthNotReady, got %v", err)
	}
	if !p.Loading() {
		t.Error("expected provider to report loading before Initialize")
	}
}

func TestInitializeRestoresStoredSession(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	store := newMockStore()
	store.data[session.KeyToken] = token
	store.data[session.KeyUser] = `{"_id":"admin-1","email":"admin@khaya.test","role":"admin"}`
	rt := &mockRealtime{}

	p := newProvider(store, &mockAuthAPI{}, rt)
	p.Initialize(context.Background(), "")

	if got := p.State(); got != session.StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", got)
	}
	got, err := p.Token()
	if err != nil || got != token {
		t.Errorf("Token() = %q, %v; want stored token", got, err)
	}
	user, ok := p.User()
	if !ok || user.ID != "admin-1" {
		t.Errorf("User() = %+v, %v", user, ok)
	}
	if rt.opened != 1 || rt.token != token {
		t.Errorf("realtime not opened with session token: %+v", rt)
	}
}

func TestInitializeExpiredTokenClearsStore(t *testing.T) {
	store := newMockStore()
	store.data[session.KeyToken] = signedToken(t, time.Now().Add(-time.Hour))
	store.data[session.KeyUser] = `{"_id":"admin-1"}`

	p := newProvider(store, &mockAuthAPI{}, &mockRealtime{})
	p.Initialize(context.Background(), "")

	if got := p.State(); got != session.StateAnonymous {
		t.Fatalf("expected anonymous, got %v", got)
	}
	if len(store.data) != 0 {
		t.Errorf("expected store cleared, got %v", store.data)
	}
	if token, err := p.Token(); err != nil || token != "" {
		t.Errorf("expected empty token for anonymous session, got %q, %v", token, err)
	}
}

func TestInitializeGarbageTokenCountsAsExpired(t *testing.T) {
	store := newMockStore()
	store.data[session.KeyToken] = "not-a-jwt"
	store.data[session.KeyUser] = `{"_id":"admin-1"}`

	p := newProvider(store, &mockAuthAPI{}, &mockRealtime{})
	p.Initialize(context.Background(), "")

	if got := p.State(); got != session.StateAnonymous {
		t.Fatalf("expected anonymous, got %v", got)
	}
}

func TestInitializeCorruptUserClearsStore(t *testing.T) {
	store := newMockStore()
	store.data[session.KeyToken] = signedToken(t, time.Now().Add(time.Hour))
	store.data[session.KeyUser] = "{invalid json"

	p := newProvider(store, &mockAuthAPI{}, &mockRealtime{})
	p.Initialize(context.Background(), "")

	if got := p.State(); got != session.StateAnonymous {
		t.Fatalf("expected anonymous, got %v", got)
	}
	if len(store.data) != 0 {
		t.Errorf("expected store cleared, got %v", store.data)
	}
}

func TestInitializePartialStoreClearsOrphanedKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"token only", session.KeyToken, signedToken(t, time.Now().Add(time.Hour))},
		{"user only", session.KeyUser, `{"_id":"admin-1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMockStore()
			store.data[tc.key] = tc.val

			p := newProvider(store, &mockAuthAPI{}, &mockRealtime{})
			p.Initialize(context.Background(), "")

			if got := p.State(); got != session.StateAnonymous {
				t.Fatalf("expected anonymous, got %v", got)
			}
			if len(store.data) != 0 {
				t.Errorf("expected store cleared, got %v", store.data)
			}
		})
	}
}

func TestInitializeRedirectTokenBootstrap(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	store := newMockStore()
	auth := &mockAuthAPI{user: &domain.User{ID: "admin-2", Email: "new@khaya.test"}}
	rt := &mockRealtime{}

	p := newProvider(store, auth, rt)
	p.Initialize(context.Background(), token)

	if got := p.State(); got != session.StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", got)
	}
	if store.data[session.KeyToken] != token {
		t.Error("bootstrap did not persist the token")
	}
	if rt.opened != 1 {
		t.Error("bootstrap did not open the realtime connection")
	}
}

func TestInitializeRedirectTokenRejected(t *testing.T) {
	store := newMockStore()
	auth := &mockAuthAPI{err: &domain.ErrUnauthorized{Message: "rejected"}}

	p := newProvider(store, auth, &mockRealtime{})
	p.Initialize(context.Background(), "some-token")

	if got := p.State(); got != session.StateAnonymous {
		t.Fatalf("expected anonymous, got %v", got)
	}
	if len(store.data) != 0 {
		t.Errorf("expected nothing persisted, got %v", store.data)
	}
}

func TestRedirectTokenIgnoredWhenStoreHasSession(t *testing.T) {
	stored := signedToken(t, time.Now().Add(time.Hour))
	store := newMockStore()
	store.data[session.KeyToken] = stored
	store.data[session.KeyUser] = `{"_id":"admin-1"}`
	auth := &mockAuthAPI{user: &domain.User{ID: "other"}}

	p := newProvider(store, auth, &mockRealtime{})
	p.Initialize(context.Background(), "redirect-token")

	token, err := p.Token()
	if err != nil || token != stored {
		t.Errorf("expected stored session to win over redirect token, got %q, %v", token, err)
	}
}

func TestLogout(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	store := newMockStore()
	store.data[session.KeyToken] = token
	store.data[session.KeyUser] = `{"_id":"admin-1"}`
	rt := &mockRealtime{}

	p := newProvider(store, &mockAuthAPI{}, rt)
	p.Initialize(context.Background(), "")
	p.Logout()

	if got := p.State(); got != session.StateAnonymous {
		t.Fatalf("expected anonymous after logout, got %v", got)
	}
	if len(store.data) != 0 {
		t.Errorf("expected store cleared, got %v", store.data)
	}
	if rt.closed != 1 {
		t.Errorf("expected realtime closed once, got %d", rt.closed)
	}
	if _, ok := p.User(); ok {
		t.Error("expected no user after logout")
	}
}

func TestLoginPersistsBothKeys(t *testing.T) {
	store := newMockStore()
	p := newProvider(store, &mockAuthAPI{}, &mockRealtime{})
	p.Initialize(context.Background(), "")

	err := p.Login(domain.Session{
		Token: "fresh-token",
		User:  domain.User{ID: "admin-3", Email: "three@khaya.test"},
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if store.data[session.KeyToken] != "fresh-token" {
		t.Error("token not persisted")
	}
	if store.data[session.KeyUser] == "" {
		t.Error("user not persisted")
	}
	if got := p.State(); got != session.StateAuthenticated {
		t.Errorf("expected authenticated, got %v", got)
	}
}
