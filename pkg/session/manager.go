package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Maroco0109/AgentForge-sub000/pkg/client"
)

// User is the identity decoded from the bearer token, for display
// only. The token is never verified client-side; the backend rejects
// forged or expired ones with a 401.
type User struct {
	ID    string
	Email string
}

// authAPI is the slice of the REST client the manager needs.
// *client.Client satisfies it.
type authAPI interface {
	Login(ctx context.Context, email, password string) (client.TokenResponse, error)
	Register(ctx context.Context, email, password string) (client.User, error)
}

// Manager owns the session lifecycle: it hydrates the persisted token
// on startup, performs login/register/logout against the backend, and
// supplies the current token to the REST client.
// Methods are safe for concurrent use.
type Manager struct {
	api   authAPI
	store Store

	mu    sync.RWMutex
	token string
	user  User
}

// NewManager creates a session manager and hydrates any token the
// store already holds. A missing token is not an error; the session
// simply starts unauthenticated.
func NewManager(api authAPI, store Store) (*Manager, error) {
	m := &Manager{api: api, store: store}

	token, err := store.Get(KeyAccessToken)
	if errors.Is(err, ErrNotFound) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hydrate session: %w", err)
	}

	user, err := decodeClaims(token)
	if err != nil {
		// A token we can't decode is useless; drop it.
		_ = store.Delete(KeyAccessToken)
		return m, nil
	}

	m.token = token
	m.user = user
	return m, nil
}

// Login authenticates and persists the issued token.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.adopt(resp.AccessToken)
}

// Register creates the account and then logs in with the same
// credentials, matching the sign-up flow.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	if _, err := m.api.Register(ctx, email, password); err != nil {
		return err
	}
	return m.Login(ctx, email, password)
}

// adopt stores a freshly issued token and decodes its identity.
func (m *Manager) adopt(token string) error {
	user, err := decodeClaims(token)
	if err != nil {
		return fmt.Errorf("decode token: %w", err)
	}
	if err := m.store.Set(KeyAccessToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
	return nil
}

// Logout drops the session locally. There is no server-side call; the
// token simply stops being sent.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.token = ""
	m.user = User{}
	m.mu.Unlock()

	if err := m.store.Delete(KeyAccessToken); err != nil && !errors.Is(err, ErrStoreClosed) {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Invalidate clears the session in response to a 401. Wire it as the
// client's OnUnauthorized hook.
func (m *Manager) Invalidate() {
	_ = m.Logout()
}

// Token returns the current bearer token, or "" when logged out.
// The method value is a valid client.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Authenticated reports whether a session is active.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// User returns the identity decoded from the active token. Zero value
// when logged out.
func (m *Manager) User() User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// claims is the subset of the JWT payload the UI displays.
type claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// decodeClaims extracts the identity from a JWT's payload segment
// without verifying the signature. Display use only.
func decodeClaims(token string) (User, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return User{}, fmt.Errorf("malformed token: %d segments", len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return User{}, fmt.Errorf("decode token payload: %w", err)
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return User{}, fmt.Errorf("parse token claims: %w", err)
	}

	return User{ID: c.Sub, Email: c.Email}, nil
}
