package store

import (
	"errors"
	"sync"

	"github.com/ikkim/shopit-client/internal/app/model"
	"github.com/ikkim/shopit-client/pkg/logger"
	"github.com/ikkim/shopit-client/pkg/util"
)

var (
	// ErrNoSession is returned when a mutation requires an active
	// session and none is held. The original frontend silently merged
	// profile updates onto a null user; this implementation fails loudly
	// instead so the session invariant stays checkable.
	ErrNoSession = errors.New("no active session")
)

// Session is the client's record of the currently authenticated user.
// Exactly these fields are persisted, in one namespaced entry.
type Session struct {
	User            *model.User `json:"user"`            // 현재 사용자 (없으면 nil)
	IsAuthenticated bool        `json:"isAuthenticated"` // User != nil 과 항상 일치
	Token           string      `json:"token,omitempty"` // 세션 토큰 (발급되는 변형에서만)
}

// UserPatch holds the profile fields a client may merge into the
// current user. Nil fields are left untouched.
type UserPatch struct {
	Username *string
	Email    *string
	Role     *model.UserRole
}

// SessionStore owns the single current session per client process.
// State machine: Anonymous → Authenticated (Set) → Anonymous (Clear).
// Every mutation writes through the persister; subscribers are notified
// after the mutation is applied.
type SessionStore struct {
	mu          sync.RWMutex
	session     Session
	persister   Persister
	subscribers []func(Session)
}

// NewSessionStore creates a session store backed by the given persister.
// A nil persister keeps the session in memory only.
func NewSessionStore(persister Persister) *SessionStore {
	return &SessionStore{persister: persister}
}

// Hydrate loads the persisted session, if any. Sessions whose token has
// already expired are discarded so the next view starts anonymous.
func (s *SessionStore) Hydrate() error {
	if s.persister == nil {
		return nil
	}

	session, ok, err := s.persister.Load()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if session.Token != "" && util.IsTokenExpired(session.Token) {
		logger.Info("Persisted session token expired, starting anonymous", map[string]interface{}{
			"email": sessionEmail(session),
		})
		if err := s.persister.Clear(); err != nil {
			logger.Warn("Failed to clear expired session", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil
	}

	// Repair a desynced pair rather than trusting stored flags.
	session.IsAuthenticated = session.User != nil

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	logger.Debug("Session hydrated", map[string]interface{}{
		"authenticated": session.IsAuthenticated,
	})
	return nil
}

// Get returns a copy of the current session.
func (s *SessionStore) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.session)
}

// Authenticated reports whether a user is held.
func (s *SessionStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated
}

// Token returns the current session token, or "" when anonymous.
// Implements api.TokenSource.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Set installs a new authenticated session (login or signup-then-login).
func (s *SessionStore) Set(user model.User, token string) {
	user.Password = ""
	s.mu.Lock()
	s.session = Session{
		User:            &user,
		IsAuthenticated: true,
		Token:           token,
	}
	snapshot := copySession(s.session)
	s.mu.Unlock()

	s.persist(snapshot)
	s.notify(snapshot)

	logger.Info("Session established", map[string]interface{}{
		"email": user.Email,
	})
}

// Clear drops the session (logout, account deletion, or a 401 from any
// endpoint).
func (s *SessionStore) Clear() {
	s.mu.Lock()
	s.session = Session{}
	snapshot := copySession(s.session)
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Clear(); err != nil {
			logger.Warn("Failed to clear persisted session", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	s.notify(snapshot)

	logger.Info("Session cleared", nil)
}

// Update shallow-merges the non-nil patch fields into the current user.
// Returns ErrNoSession when no user is held.
func (s *SessionStore) Update(patch UserPatch) error {
	s.mu.Lock()
	if s.session.User == nil {
		s.mu.Unlock()
		return ErrNoSession
	}
	if patch.Username != nil {
		s.session.User.Username = *patch.Username
	}
	if patch.Email != nil {
		s.session.User.Email = *patch.Email
	}
	if patch.Role != nil {
		s.session.User.Role = *patch.Role
	}
	snapshot := copySession(s.session)
	s.mu.Unlock()

	s.persist(snapshot)
	s.notify(snapshot)
	return nil
}

// Subscribe registers a callback invoked after every session mutation.
// The returned function removes the subscription.
func (s *SessionStore) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.subscribers[idx] = nil
		s.mu.Unlock()
	}
}

func (s *SessionStore) persist(snapshot Session) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(snapshot); err != nil {
		// The in-memory session stays valid; only durability is lost.
		logger.Warn("Failed to persist session", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *SessionStore) notify(snapshot Session) {
	s.mu.RLock()
	subs := make([]func(Session), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		if fn != nil {
			fn(copySession(snapshot))
		}
	}
}

func copySession(s Session) Session {
	out := s
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	return out
}

func sessionEmail(s Session) string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}
