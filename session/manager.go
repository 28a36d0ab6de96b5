package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/go-crm-workspace/internal/errors"
	"github.com/jrsteele09/go-crm-workspace/navigation"
	"github.com/jrsteele09/go-crm-workspace/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// DefaultRoleClientID is the client whose resource_access roles are read.
const DefaultRoleClientID = "artax-client"

// Authenticator exchanges credentials for a raw bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// CredentialSink is the HTTP layer the session drives: it carries the default
// bearer credential and calls back when the server rejects it.
type CredentialSink interface {
	SetBearerToken(tok *oauth2.Token)
	ClearBearerToken()
	OnUnauthorized(fn func())
}

// TokenVerifier checks a token signature against the identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) error
}

// TokenObserver is notified synchronously after every token change. An empty
// token means the session ended.
type TokenObserver func(token string)

// Manager owns the authentication lifecycle of the client.
type Manager struct {
	store    storage.Store
	auth     Authenticator
	http     CredentialSink
	verifier TokenVerifier
	clientID string
	nowFunc  func() time.Time

	lock      sync.RWMutex
	nav       navigation.Navigator
	token     string
	user      *User
	loading   bool
	observers []TokenObserver
}

type ManagerOption func(*Manager)

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// WithRoleClientID selects which resource_access entry supplies roles.
func WithRoleClientID(clientID string) ManagerOption {
	return func(m *Manager) {
		m.clientID = clientID
	}
}

// WithVerifier enables signature verification of every accepted token.
func WithVerifier(v TokenVerifier) ManagerOption {
	return func(m *Manager) {
		m.verifier = v
	}
}

// NewManager creates a Manager in the loading state and registers its Logout
// with the HTTP layer, so an unauthorized response seen by any later request
// ends the session.
func NewManager(store storage.Store, auth Authenticator, http CredentialSink, nav navigation.Navigator, options ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		auth:     auth,
		http:     http,
		nav:      nav,
		clientID: DefaultRoleClientID,
		loading:  true,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}

	m.http.OnUnauthorized(m.Logout)
	return m
}

// SetNavigator swaps the navigator used by Logout and re-registers the
// unauthorized callback.
func (m *Manager) SetNavigator(nav navigation.Navigator) {
	m.lock.Lock()
	m.nav = nav
	m.lock.Unlock()

	m.http.OnUnauthorized(m.Logout)
}

// Subscribe registers an observer for token changes.
func (m *Manager) Subscribe(obs TokenObserver) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.observers = append(m.observers, obs)
}

// Initialize restores the persisted session. A stored token that cannot be
// decoded, has expired, or fails verification ends the session. Failures are
// logged, never returned.
func (m *Manager) Initialize(ctx context.Context) {
	defer m.setLoading(false)

	raw, ok, err := m.store.Get(storage.KeyAuthToken)
	if err != nil {
		log.Error().Err(err).Msg("reading stored token")
	}
	if err != nil || !ok || raw == "" {
		m.http.ClearBearerToken()
		m.setToken("", nil)
		return
	}

	claims, err := m.validate(ctx, raw)
	if err != nil {
		log.Warn().Err(err).Msg("stored token rejected")
		m.Logout()
		return
	}

	m.http.SetBearerToken(claims.bearer(raw))
	m.setToken(raw, claims.User())
}

// Login authenticates against the server and, on success, persists the token
// and makes it the default outbound credential. Every failure is an *AuthError.
func (m *Manager) Login(ctx context.Context, username, password string) (*User, error) {
	raw, err := m.auth.Authenticate(ctx, username, password)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("login failed")
		return nil, newAuthError(err)
	}

	if !strings.Contains(raw, ".") {
		return nil, &AuthError{Message: "Invalid token received from server", Err: errors.ErrMalformedToken}
	}

	claims, err := m.validate(ctx, raw)
	switch {
	case errors.Is(err, errors.ErrTokenExpired):
		return nil, &AuthError{Message: "Received token has already expired", Err: err}
	case err != nil:
		return nil, &AuthError{Message: "Unable to decode token", Err: err}
	}

	if err := m.store.Set(storage.KeyAuthToken, raw); err != nil {
		return nil, &AuthError{Message: "Unable to store session", Err: err}
	}

	user := claims.User()
	m.http.SetBearerToken(claims.bearer(raw))
	m.setToken(raw, user)

	log.Info().Str("username", username).Strs("roles", user.Roles).Msg("logged in")
	return copyUser(user), nil
}

// Logout ends the session and sends the user to the login route. Calling it
// with no session is harmless.
func (m *Manager) Logout() {
	if err := m.store.Remove(storage.KeyAuthToken); err != nil {
		log.Error().Err(err).Msg("removing stored token")
	}
	m.http.ClearBearerToken()

	m.lock.RLock()
	hadSession := m.token != ""
	nav := m.nav
	m.lock.RUnlock()

	m.setToken("", nil)

	if hadSession {
		log.Info().Msg("session ended, redirecting to login")
	}
	if nav != nil {
		nav.Navigate(navigation.RouteLogin)
	}
}

// AccessToken returns the current raw token, empty when logged out.
func (m *Manager) AccessToken() string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.token
}

// User returns a copy of the current user, or nil.
func (m *Manager) User() *User {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return copyUser(m.user)
}

func (m *Manager) IsAuthenticated() bool {
	return m.AccessToken() != ""
}

// Loading is true until Initialize has finished.
func (m *Manager) Loading() bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.loading
}

func (m *Manager) validate(ctx context.Context, raw string) (*Claims, error) {
	claims, err := deriveClaims(raw, m.nowFunc(), m.clientID)
	if err != nil {
		return nil, err
	}
	if m.verifier != nil {
		if err := m.verifier.Verify(ctx, raw); err != nil {
			return nil, errors.Wrapf(err, "[validate] verifying token")
		}
	}
	return claims, nil
}

// setToken updates state under the lock, then notifies observers outside it so
// they may call back into the manager.
func (m *Manager) setToken(token string, user *User) {
	m.lock.Lock()
	m.token = token
	m.user = user
	observers := make([]TokenObserver, len(m.observers))
	copy(observers, m.observers)
	m.lock.Unlock()

	for _, obs := range observers {
		obs(token)
	}
}

func (m *Manager) setLoading(v bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.loading = v
}

func copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Roles = append([]string{}, u.Roles...)
	return &c
}
