package tokens

import (
	"sync"

	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

// Memory keeps token pairs per browser session id. Sessions do not
// survive a process restart; meant for development and tests.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]session.TokenPair
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]session.TokenPair)}
}

// Session returns the keyless store view for one session id.
func (m *Memory) Session(sid string) session.TokenStore {
	return &memoryView{store: m, sid: sid}
}

type memoryView struct {
	store *Memory
	sid   string
}

var _ session.TokenStore = (*memoryView)(nil)

func (v *memoryView) pair() session.TokenPair {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return v.store.sessions[v.sid]
}

func (v *memoryView) AccessToken() string  { return v.pair().Access }
func (v *memoryView) RefreshToken() string { return v.pair().Refresh }

func (v *memoryView) SetTokens(access, refresh string) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	v.store.sessions[v.sid] = session.TokenPair{Access: access, Refresh: refresh}
	return nil
}

func (v *memoryView) ClearTokens() error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	delete(v.store.sessions, v.sid)
	return nil
}

func (v *memoryView) Authenticated() bool { return v.pair().Access != "" }
