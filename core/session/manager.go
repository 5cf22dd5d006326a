package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/Shivankitsingh3/School-Management-System/core"
)

// LoginPath is where anonymous clients get redirected to.
const LoginPath = "/login"

// API is the slice of the backend client the session manager drives.
type API interface {
	// Login exchanges credentials for a token pair. It must be issued
	// anonymously: a 401 here is a credential rejection, not an
	// invalidated session.
	Login(ctx context.Context, creds Credentials) (TokenPair, error)
	// Me fetches the current user's profile using the stored access token.
	Me(ctx context.Context) (Profile, error)
}

// Manager owns the current-user state of one client session.
//
// States: Bootstrapping -> {Authenticated, Anonymous};
// Authenticated -> Anonymous via Logout or Invalidate;
// Anonymous -> Authenticated via Login.
//
// Invariant: the bound TokenStore holds an access token if and only if
// the manager holds a user (both are set and cleared together).
type Manager struct {
	mu           sync.Mutex
	store        TokenStore
	api          API
	user         *Profile
	loading      bool
	bootstrapped bool
}

func NewManager(store TokenStore, api API) *Manager {
	return &Manager{
		store:   store,
		api:     api,
		loading: true,
	}
}

// Snapshot returns an immutable view of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{Loading: m.loading}
	if m.user != nil {
		usr := *m.user
		snap.User = &usr
	}
	return snap
}

// Bootstrap reconstructs the session from the persisted token pair. It
// runs once; repeat calls return immediately. With no stored token the
// session resolves Anonymous without a network round trip. A stored
// token triggers a profile fetch; any failure (expired token, backend
// unreachable) clears the store and resolves Anonymous. Loading is
// false once Bootstrap returns, so route guards never decide on a
// half-built session.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bootstrapped {
		return
	}
	m.bootstrapped = true
	defer func() { m.loading = false }()

	if !m.store.Authenticated() {
		m.user = nil
		return
	}

	profile, err := m.api.Me(ctx)
	if err != nil {
		_ = m.store.ClearTokens()
		m.user = nil
		return
	}
	m.user = &profile
}

// Login authenticates against the backend, persists the returned token
// pair, fetches the profile and returns it along with the path the
// caller should navigate to. On any failure the session stays
// Anonymous and the error is surfaced for user-visible messaging.
func (m *Manager) Login(ctx context.Context, creds Credentials) (Profile, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pair, err := m.api.Login(ctx, creds)
	if err != nil {
		return Profile{}, "", err
	}
	if err := m.store.SetTokens(pair.Access, pair.Refresh); err != nil {
		// a store that cannot persist tokens cannot hold any session
		return Profile{}, "", errors.Wrap(core.NewShutdownError(err.Error()), "persisting token pair")
	}

	profile, err := m.api.Me(ctx)
	if err != nil {
		// keep the token-iff-user invariant
		_ = m.store.ClearTokens()
		return Profile{}, "", errors.Wrap(err, "fetching profile after login")
	}

	m.user = &profile
	m.loading = false
	m.bootstrapped = true
	return profile, core.LandingPath(profile.Role), nil
}

// Logout clears the token store and the user, and returns the path the
// caller should navigate to. It always succeeds locally; no server
// round trip is needed for it to take effect.
func (m *Manager) Logout() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = m.store.ClearTokens()
	m.user = nil
	return LoginPath
}

// Invalidate is the forced sign-out: the top-level 401 listener calls
// it when the backend rejects a stored token mid-session. Idempotent.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = m.store.ClearTokens()
	m.user = nil
}
