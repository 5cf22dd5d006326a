package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
	"github.com/Shivankitsingh3/School-Management-System/storage/tokens"
)

var (
	errBadCredentials = errors.New("invalid email or password")
	errTokenRejected  = errors.New("token rejected")
)

// fakeAPI implements session.API with scripted outcomes and call
// counters.
type fakeAPI struct {
	pair    session.TokenPair
	profile session.Profile

	loginErr error
	meErr    error

	loginCalls int
	meCalls    int
}

func (f *fakeAPI) Login(context.Context, session.Credentials) (session.TokenPair, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return session.TokenPair{}, f.loginErr
	}
	return f.pair, nil
}

func (f *fakeAPI) Me(context.Context) (session.Profile, error) {
	f.meCalls++
	if f.meErr != nil {
		return session.Profile{}, f.meErr
	}
	return f.profile, nil
}

// brokenStore rejects every write, standing in for a backend such as a
// full disk or an unreachable redis.
type brokenStore struct{}

func (brokenStore) AccessToken() string         { return "" }
func (brokenStore) RefreshToken() string        { return "" }
func (brokenStore) SetTokens(_, _ string) error { return errors.New("disk full") }
func (brokenStore) ClearTokens() error          { return nil }
func (brokenStore) Authenticated() bool         { return false }

func newStore(t *testing.T) session.TokenStore {
	t.Helper()
	return tokens.NewMemory().Session("test-session")
}

func TestManager_Bootstrap(t *testing.T) {
	profile := session.Profile{ID: 7, Name: "Awa", Email: "awa@test.cd", Role: core.RoleStudent}

	t.Run("no stored token resolves anonymous without a round trip", func(t *testing.T) {
		api := &fakeAPI{profile: profile}
		mgr := session.NewManager(newStore(t), api)

		if snap := mgr.Snapshot(); !snap.Loading {
			t.Error("Snapshot().Loading = false before Bootstrap, want true")
		}

		mgr.Bootstrap(context.Background())

		snap := mgr.Snapshot()
		if snap.Loading {
			t.Error("Snapshot().Loading = true after Bootstrap, want false")
		}
		if snap.User != nil {
			t.Errorf("Snapshot().User = %+v, want nil", snap.User)
		}
		if api.meCalls != 0 {
			t.Errorf("Me called %d times, want 0", api.meCalls)
		}
	})

	t.Run("stored token restores the session", func(t *testing.T) {
		api := &fakeAPI{profile: profile}
		store := newStore(t)
		if err := store.SetTokens("access", "refresh"); err != nil {
			t.Fatal(err)
		}
		mgr := session.NewManager(store, api)

		mgr.Bootstrap(context.Background())

		snap := mgr.Snapshot()
		if snap.User == nil || snap.User.ID != profile.ID {
			t.Fatalf("Snapshot().User = %+v, want profile %d", snap.User, profile.ID)
		}
		if api.meCalls != 1 {
			t.Errorf("Me called %d times, want 1", api.meCalls)
		}
	})

	t.Run("rejected token clears the store and resolves anonymous", func(t *testing.T) {
		api := &fakeAPI{meErr: errTokenRejected}
		store := newStore(t)
		if err := store.SetTokens("stale", "stale"); err != nil {
			t.Fatal(err)
		}
		mgr := session.NewManager(store, api)

		mgr.Bootstrap(context.Background())

		if snap := mgr.Snapshot(); snap.User != nil {
			t.Errorf("Snapshot().User = %+v, want nil", snap.User)
		}
		if store.Authenticated() {
			t.Error("store still holds a token after a rejected bootstrap")
		}
	})

	t.Run("runs once", func(t *testing.T) {
		api := &fakeAPI{profile: profile}
		store := newStore(t)
		if err := store.SetTokens("access", "refresh"); err != nil {
			t.Fatal(err)
		}
		mgr := session.NewManager(store, api)

		mgr.Bootstrap(context.Background())
		mgr.Bootstrap(context.Background())

		if api.meCalls != 1 {
			t.Errorf("Me called %d times across two Bootstraps, want 1", api.meCalls)
		}
	})
}

func TestManager_Login(t *testing.T) {
	profile := session.Profile{ID: 3, Name: "Moussa", Email: "moussa@test.cd", Role: core.RoleTeacher}
	pair := session.TokenPair{Access: "access", Refresh: "refresh"}

	t.Run("ok", func(t *testing.T) {
		api := &fakeAPI{pair: pair, profile: profile}
		store := newStore(t)
		mgr := session.NewManager(store, api)

		usr, landing, err := mgr.Login(context.Background(), session.Credentials{Email: profile.Email, Password: "pwd"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if usr.ID != profile.ID {
			t.Errorf("Login() user = %+v, want %+v", usr, profile)
		}
		if landing != "/teacher" {
			t.Errorf("Login() landing = %q, want /teacher", landing)
		}
		if store.AccessToken() != pair.Access || store.RefreshToken() != pair.Refresh {
			t.Error("Login() did not persist the token pair")
		}
		if snap := mgr.Snapshot(); snap.User == nil || snap.Loading {
			t.Errorf("Snapshot() after Login = %+v", snap)
		}
	})

	t.Run("rejected credentials leave the session anonymous", func(t *testing.T) {
		api := &fakeAPI{loginErr: errBadCredentials}
		store := newStore(t)
		mgr := session.NewManager(store, api)

		if _, _, err := mgr.Login(context.Background(), session.Credentials{}); !errors.Is(err, errBadCredentials) {
			t.Fatalf("Login() error = %v, want %v", err, errBadCredentials)
		}
		if store.Authenticated() {
			t.Error("store holds a token after a rejected login")
		}
		if snap := mgr.Snapshot(); snap.User != nil {
			t.Errorf("Snapshot().User = %+v, want nil", snap.User)
		}
	})

	t.Run("store failure is a shutdown error", func(t *testing.T) {
		api := &fakeAPI{pair: pair, profile: profile}
		mgr := session.NewManager(brokenStore{}, api)

		_, _, err := mgr.Login(context.Background(), session.Credentials{})
		if err == nil {
			t.Fatal("Login() error = nil, want failure")
		}
		if !core.IsShutdown(err) {
			t.Errorf("IsShutdown(%v) = false, want true", err)
		}
		if snap := mgr.Snapshot(); snap.Authenticated() {
			t.Errorf("Snapshot().User = %+v, want nil", snap.User)
		}
	})

	t.Run("profile fetch failure rolls the tokens back", func(t *testing.T) {
		api := &fakeAPI{pair: pair, meErr: errTokenRejected}
		store := newStore(t)
		mgr := session.NewManager(store, api)

		if _, _, err := mgr.Login(context.Background(), session.Credentials{}); err == nil {
			t.Fatal("Login() error = nil, want failure")
		}
		if store.Authenticated() {
			t.Error("store holds a token although no user was resolved")
		}
	})
}

func TestManager_Logout(t *testing.T) {
	api := &fakeAPI{
		pair:    session.TokenPair{Access: "access", Refresh: "refresh"},
		profile: session.Profile{ID: 1, Role: core.RoleStudent},
	}
	store := newStore(t)
	mgr := session.NewManager(store, api)

	if _, _, err := mgr.Login(context.Background(), session.Credentials{}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if got := mgr.Logout(); got != session.LoginPath {
		t.Errorf("Logout() = %q, want %q", got, session.LoginPath)
	}
	if store.Authenticated() {
		t.Error("store still holds a token after Logout")
	}
	if snap := mgr.Snapshot(); snap.User != nil {
		t.Errorf("Snapshot().User = %+v, want nil", snap.User)
	}
}

func TestManager_Invalidate(t *testing.T) {
	api := &fakeAPI{
		pair:    session.TokenPair{Access: "access", Refresh: "refresh"},
		profile: session.Profile{ID: 1, Role: core.RolePrincipal},
	}
	store := newStore(t)
	mgr := session.NewManager(store, api)

	if _, _, err := mgr.Login(context.Background(), session.Credentials{}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	mgr.Invalidate()
	mgr.Invalidate() // idempotent

	if store.Authenticated() {
		t.Error("store still holds a token after Invalidate")
	}
	if snap := mgr.Snapshot(); snap.User != nil {
		t.Errorf("Snapshot().User = %+v, want nil", snap.User)
	}
}
