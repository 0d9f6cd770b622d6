// Package session implements the client-side session manager for the broker
// onboarding API: it holds the current identity and token, persists them to
// durable storage with an expiry, rehydrates on startup, and drops to the
// anonymous state on logout or when the server rejects the token.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

// State is the session manager's state machine: anonymous ⇄ authenticated.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// sessionTTL mirrors the server-side token lifetime: persisted sessions
// outliving it would only produce 401s on first use.
const sessionTTL = 7 * 24 * time.Hour

// Session is the persisted authenticated state.
type Session struct {
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func (s *Session) expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists a session across restarts.
type Store interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileStore keeps the session as a mode-0600 JSON file, the closest Go-native
// analogue to the browser cookie the web client uses.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Token == "" || s.User.ID == "" {
		return nil, errors.New("session: incomplete state")
	}
	return &s, nil
}

func (f *FileStore) Save(s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Manager tracks the current session state. A successful login transitions
// anonymous→authenticated; logout or a 401 from the server transitions back.
type Manager struct {
	mu      sync.Mutex
	store   Store
	now     func() time.Time
	session *Session
}

// NewManager rehydrates state from the store. Corrupt or expired persisted
// state is cleared and the manager starts anonymous.
func NewManager(store Store) *Manager {
	m := &Manager{store: store, now: time.Now}
	s, err := store.Load()
	if err != nil || (s != nil && s.expired(m.now())) {
		_ = store.Clear()
		return m
	}
	m.session = s
	return m
}

// State reports whether the manager currently holds a valid session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current() == nil {
		return StateAnonymous
	}
	return StateAuthenticated
}

// Token returns the held session token, or "" when anonymous.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.current(); s != nil {
		return s.Token
	}
	return ""
}

// User returns the held user projection, or nil when anonymous.
func (m *Manager) User() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.current(); s != nil {
		u := s.User
		return &u
	}
	return nil
}

// Establish transitions to authenticated and persists the session with the
// standard expiry. Concurrent establishes race harmlessly: last write wins.
func (m *Manager) Establish(token string, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &Session{
		Token:     token,
		User:      user,
		ExpiresAt: m.now().Add(sessionTTL),
	}
	m.session = s
	return m.store.Save(s)
}

// Clear transitions to anonymous and removes persisted state. Called on
// explicit logout and whenever the server answers 401.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return m.store.Clear()
}

// current drops an in-memory session that expired since it was loaded.
func (m *Manager) current() *Session {
	if m.session != nil && m.session.expired(m.now()) {
		m.session = nil
		_ = m.store.Clear()
	}
	return m.session
}

// Navigation targets returned by Guard.
const (
	RedirectLogin     = "/login"
	RedirectDashboard = "/dashboard"
)

// Guard is the navigation guard for a protected surface. requiredRole is the
// role the surface demands, or "" for any authenticated identity. It returns
// the redirect target, or "" when navigation may proceed.
func (m *Manager) Guard(requiredRole domain.Role) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.current()
	if s == nil {
		return RedirectLogin
	}
	if requiredRole != "" && s.User.Role != requiredRole {
		return RedirectDashboard
	}
	return ""
}
