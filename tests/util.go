// Package testutil provides a fake School Management REST backend for
// tests: it issues real JWTs on login and authorizes requests against
// them, so client and session tests exercise the same bearer flow the
// production backend expects.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

var jwtKey = []byte("test-signing-key")

// Account is a known login on the fake backend.
type Account struct {
	Password string
	Profile  session.Profile
}

// Backend is the fake REST server. Handlers for feature endpoints can
// be registered per test via Handle; account/login/ and account/me/
// are always served.
type Backend struct {
	t        *testing.T
	srv      *httptest.Server
	mux      *http.ServeMux
	accounts map[string]Account

	// LoginCalls and MeCalls count round trips, for asserting that a
	// flow hit the backend exactly as often as it should.
	LoginCalls int
	MeCalls    int
}

func NewBackend(t *testing.T, accounts ...Account) *Backend {
	t.Helper()

	b := &Backend{
		t:        t,
		mux:      http.NewServeMux(),
		accounts: make(map[string]Account, len(accounts)),
	}
	for _, acc := range accounts {
		b.accounts[acc.Profile.Email] = acc
	}

	b.mux.HandleFunc("/sms/account/login/", b.handleLogin)
	b.mux.HandleFunc("/sms/account/me/", b.handleMe)

	b.srv = httptest.NewServer(b.mux)
	t.Cleanup(b.srv.Close)
	return b
}

// BaseURL is what conf.API.BaseURL should be set to.
func (b *Backend) BaseURL() string {
	return b.srv.URL + "/sms/"
}

// Handle registers a feature endpoint. The path is relative to the API
// root, e.g. "attendance/my/". The handler only runs for requests
// carrying a token this backend issued; everything else gets a 401.
func (b *Backend) Handle(path string, handler func(w http.ResponseWriter, r *http.Request, user session.Profile)) {
	b.mux.HandleFunc("/sms/"+path, func(w http.ResponseWriter, r *http.Request) {
		user, ok := b.authorize(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid or expired token"})
			return
		}
		handler(w, r, user)
	})
}

// HandleAnonymous registers an endpoint that skips the token check,
// for flows reached from emailed links such as account activation.
func (b *Backend) HandleAnonymous(path string, handler http.HandlerFunc) {
	b.mux.HandleFunc("/sms/"+path, handler)
}

// Token mints a valid token for email without going through login.
func (b *Backend) Token(email string) string {
	b.t.Helper()

	token, err := b.mint(email)
	if err != nil {
		b.t.Fatalf("Token() failed: %v", err)
	}
	return token
}

func (b *Backend) mint(email string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtKey)
}

func (b *Backend) authorize(r *http.Request) (session.Profile, bool) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" || raw == r.Header.Get("Authorization") {
		return session.Profile{}, false
	}

	claims := new(jwt.RegisteredClaims)
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return session.Profile{}, false
	}

	acc, ok := b.accounts[claims.Subject]
	if !ok {
		return session.Profile{}, false
	}
	return acc.Profile, true
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	b.LoginCalls++

	var creds session.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request"})
		return
	}

	acc, ok := b.accounts[creds.Email]
	if !ok || acc.Password != creds.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid email or password"})
		return
	}

	access, err := b.mint(creds.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	refresh, _ := b.mint(creds.Email)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access":  access,
		"refresh": refresh,
		"user_id": acc.Profile.ID,
		"name":    acc.Profile.Name,
		"role":    acc.Profile.Role,
	})
}

func (b *Backend) handleMe(w http.ResponseWriter, r *http.Request) {
	b.MeCalls++

	user, ok := b.authorize(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid or expired token"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}
