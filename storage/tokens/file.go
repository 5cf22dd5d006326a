// Package tokens provides the durable token pair stores backing client
// sessions: a single-user file store for smsctl, and in-memory and
// Redis keyed stores for browser sessions of the web app.
package tokens

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

// tokenFile is the on-disk layout; field names match the storage keys
// the browser front end used.
type tokenFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// File persists one client's token pair in a JSON file. Writes go
// through a temp file and rename so a crash never leaves half a pair.
type File struct {
	mu   sync.Mutex
	path string
}

var _ session.TokenStore = (*File)(nil)

func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "creating token store directory")
	}
	return &File{path: path}, nil
}

func (f *File) read() tokenFile {
	var tf tokenFile
	data, err := os.ReadFile(f.path)
	if err != nil {
		return tf
	}
	_ = json.Unmarshal(data, &tf)
	return tf
}

func (f *File) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read().AccessToken
}

func (f *File) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read().RefreshToken
}

func (f *File) SetTokens(access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(tokenFile{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return errors.Wrap(err, "encoding token pair")
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "writing token pair")
	}
	return errors.Wrap(os.Rename(tmp, f.path), "committing token pair")
}

func (f *File) ClearTokens() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clearing token pair")
	}
	return nil
}

func (f *File) Authenticated() bool {
	return f.AccessToken() != ""
}
