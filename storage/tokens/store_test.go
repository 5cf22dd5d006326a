package tokens

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

// checkStoreContract runs every TokenStore implementation through the
// same lifecycle: empty reads, set, overwrite, idempotent clear.
func checkStoreContract(t *testing.T, store session.TokenStore) {
	t.Helper()

	if store.Authenticated() {
		t.Error("Authenticated() = true on a fresh store")
	}
	if got := store.AccessToken(); got != "" {
		t.Errorf("AccessToken() = %q on a fresh store, want empty", got)
	}
	if got := store.RefreshToken(); got != "" {
		t.Errorf("RefreshToken() = %q on a fresh store, want empty", got)
	}

	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SetTokens() error = %v", err)
	}
	if !store.Authenticated() {
		t.Error("Authenticated() = false after SetTokens")
	}
	if got := store.AccessToken(); got != "access-1" {
		t.Errorf("AccessToken() = %q, want access-1", got)
	}
	if got := store.RefreshToken(); got != "refresh-1" {
		t.Errorf("RefreshToken() = %q, want refresh-1", got)
	}

	// overwrite
	if err := store.SetTokens("access-2", "refresh-2"); err != nil {
		t.Fatalf("SetTokens() overwrite error = %v", err)
	}
	if got := store.AccessToken(); got != "access-2" {
		t.Errorf("AccessToken() after overwrite = %q, want access-2", got)
	}

	if err := store.ClearTokens(); err != nil {
		t.Fatalf("ClearTokens() error = %v", err)
	}
	if store.Authenticated() {
		t.Error("Authenticated() = true after ClearTokens")
	}
	if err := store.ClearTokens(); err != nil {
		t.Errorf("ClearTokens() on a cleared store error = %v, want nil", err)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	checkStoreContract(t, store)

	t.Run("survives a reopen", func(t *testing.T) {
		if err := store.SetTokens("persisted", "refresh"); err != nil {
			t.Fatal(err)
		}
		reopened, err := NewFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := reopened.AccessToken(); got != "persisted" {
			t.Errorf("AccessToken() after reopen = %q, want persisted", got)
		}
	})

	t.Run("file is private", func(t *testing.T) {
		if err := store.SetTokens("a", "r"); err != nil {
			t.Fatal(err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("token file mode = %o, want 600", perm)
		}
	})

	t.Run("garbage on disk reads as anonymous", func(t *testing.T) {
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		if store.Authenticated() {
			t.Error("Authenticated() = true on a corrupt file")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	mem := NewMemory()
	checkStoreContract(t, mem.Session("sid-1"))

	t.Run("sessions are isolated", func(t *testing.T) {
		a, b := mem.Session("sid-a"), mem.Session("sid-b")
		if err := a.SetTokens("access-a", "refresh-a"); err != nil {
			t.Fatal(err)
		}
		if b.Authenticated() {
			t.Error("session b sees session a's token")
		}
	})
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer store.Close()

	checkStoreContract(t, store.Session("sid-1"))

	t.Run("sessions are isolated", func(t *testing.T) {
		a, b := store.Session("sid-a"), store.Session("sid-b")
		if err := a.SetTokens("access-a", "refresh-a"); err != nil {
			t.Fatal(err)
		}
		if b.Authenticated() {
			t.Error("session b sees session a's token")
		}
	})

	t.Run("sessions expire", func(t *testing.T) {
		s := store.Session("sid-ttl")
		if err := s.SetTokens("access", "refresh"); err != nil {
			t.Fatal(err)
		}
		mr.FastForward(sessionTTL + time.Hour)
		if s.Authenticated() {
			t.Error("session still authenticated past its TTL")
		}
	})
}
