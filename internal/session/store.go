// Package session holds the process-wide authenticated session: who is
// logged in and the bearer token proving it. The store survives restarts
// through a pluggable Storage and notifies subscribers on login/logout.
package session

import (
	"log"
	"sync"
)

// Identity is the authenticated user as returned by the login endpoint.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session bundles the identity with its bearer credential. This is also the
// shape persisted by Storage.
type Session struct {
	Identity Identity `json:"user"`
	Token    string   `json:"token"`
}

// Storage persists the session bundle across process restarts. Load returns
// (nil, nil) when nothing is persisted.
type Storage interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// Store owns at most one active session. All methods are safe for
// concurrent use. Persistence is best effort: a failing Storage is logged
// and ignored, since the in-memory session stays valid for the rest of the
// process lifetime.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	current *Session
	subs    map[int]func(*Session)
	nextSub int
}

func NewStore(storage Storage) *Store {
	return &Store{
		storage: storage,
		subs:    make(map[int]func(*Session)),
	}
}

// Init rehydrates the session from storage. A missing or unreadable bundle
// leaves the store anonymous; it never fails.
func (s *Store) Init() {
	loaded, err := s.storage.Load()
	if err != nil {
		log.Printf("session: could not restore persisted session: %v", err)
		loaded = nil
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
}

// Login replaces the current session, persists it, and notifies
// subscribers. The role-based redirect after login is a UI convention on top
// of the subscriber signal, not part of this contract.
func (s *Store) Login(identity Identity, token string) {
	sess := &Session{Identity: identity, Token: token}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if err := s.storage.Save(sess); err != nil {
		log.Printf("session: could not persist session: %v", err)
	}
	s.notify(sess)
}

// Logout clears the session to anonymous, erases the persisted bundle, and
// notifies subscribers with nil.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		log.Printf("session: could not clear persisted session: %v", err)
	}
	s.notify(nil)
}

// Current returns a copy of the active session.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Credential returns the bearer token, or "" when anonymous. Safe to call
// before Init has run.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Authenticated reports whether a session is active.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Subscribe registers fn to run after every login (with the new session) and
// logout (with nil). The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(*Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify calls subscribers outside the lock so a subscriber may call back
// into the store.
func (s *Store) notify(sess *Session) {
	s.mu.RLock()
	fns := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(sess)
	}
}
