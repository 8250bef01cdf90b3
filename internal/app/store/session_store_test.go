package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikkim/shopit-client/internal/app/model"
)

func testUser() model.User {
	return model.User{
		ID:       "u-1",
		Email:    "user@example.com",
		Username: "테스터",
		Role:     model.RoleUser,
	}
}

// assertInvariant checks that IsAuthenticated always mirrors the
// presence of a user.
func assertInvariant(t *testing.T, s *SessionStore) {
	t.Helper()
	session := s.Get()
	assert.Equal(t, session.User != nil, session.IsAuthenticated)
}

func signedTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{"userId": "u-1", "email": "user@example.com"}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSessionStoreLifecycle(t *testing.T) {
	s := NewSessionStore(nil)

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
	assertInvariant(t, s)

	s.Set(testUser(), "tok-1")
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok-1", s.Token())
	assert.Equal(t, "user@example.com", s.Get().User.Email)
	assertInvariant(t, s)

	s.Clear()
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Get().User)
	assertInvariant(t, s)
}

func TestSessionStoreSetStripsPassword(t *testing.T) {
	s := NewSessionStore(nil)

	user := testUser()
	user.Password = "abcd1234"
	s.Set(user, "")

	assert.Empty(t, s.Get().User.Password)
}

func TestSessionStoreGetReturnsCopy(t *testing.T) {
	s := NewSessionStore(nil)
	s.Set(testUser(), "")

	snapshot := s.Get()
	snapshot.User.Username = "변조"

	assert.Equal(t, "테스터", s.Get().User.Username)
}

func TestSessionStoreUpdate(t *testing.T) {
	s := NewSessionStore(nil)
	s.Set(testUser(), "")

	name := "새이름"
	require.NoError(t, s.Update(UserPatch{Username: &name}))

	session := s.Get()
	assert.Equal(t, "새이름", session.User.Username)
	assert.Equal(t, "user@example.com", session.User.Email, "untouched fields survive the merge")
	assertInvariant(t, s)
}

func TestSessionStoreUpdateWithoutSession(t *testing.T) {
	s := NewSessionStore(nil)

	name := "새이름"
	err := s.Update(UserPatch{Username: &name})

	assert.ErrorIs(t, err, ErrNoSession)
	assertInvariant(t, s)
}

func TestSessionStoreSubscribe(t *testing.T) {
	s := NewSessionStore(nil)

	var events []Session
	unsubscribe := s.Subscribe(func(session Session) {
		events = append(events, session)
	})

	s.Set(testUser(), "")
	s.Clear()

	require.Len(t, events, 2)
	assert.True(t, events[0].IsAuthenticated)
	assert.False(t, events[1].IsAuthenticated)

	unsubscribe()
	s.Set(testUser(), "")
	assert.Len(t, events, 2, "no notifications after unsubscribe")
}

func TestSessionStorePersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewSessionStore(NewFilePersister(path))
	first.Set(testUser(), "tok-1")

	second := NewSessionStore(NewFilePersister(path))
	require.NoError(t, second.Hydrate())

	assert.True(t, second.Authenticated())
	assert.Equal(t, "user@example.com", second.Get().User.Email)
	assert.Equal(t, "tok-1", second.Token())
	assertInvariant(t, second)
}

func TestSessionStoreClearRemovesPersistedSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewSessionStore(NewFilePersister(path))
	first.Set(testUser(), "")
	first.Clear()

	second := NewSessionStore(NewFilePersister(path))
	require.NoError(t, second.Hydrate())
	assert.False(t, second.Authenticated())
}

func TestSessionStoreHydrateDropsExpiredToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	persister := NewFilePersister(path)

	user := testUser()
	require.NoError(t, persister.Save(Session{
		User:            &user,
		IsAuthenticated: true,
		Token:           signedTestToken(t, time.Now().Add(-time.Hour)),
	}))

	s := NewSessionStore(persister)
	require.NoError(t, s.Hydrate())

	assert.False(t, s.Authenticated(), "an expired token must not restore a session")
	assertInvariant(t, s)

	// The stale entry is gone, not just ignored.
	_, ok, err := persister.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStoreHydrateKeepsValidToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	persister := NewFilePersister(path)

	user := testUser()
	require.NoError(t, persister.Save(Session{
		User:            &user,
		IsAuthenticated: true,
		Token:           signedTestToken(t, time.Now().Add(time.Hour)),
	}))

	s := NewSessionStore(persister)
	require.NoError(t, s.Hydrate())
	assert.True(t, s.Authenticated())
}

func TestSessionStoreHydrateRepairsDesyncedFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	persister := NewFilePersister(path)

	// A hand-edited or partially written entry: flag set, no user.
	require.NoError(t, persister.Save(Session{IsAuthenticated: true}))

	s := NewSessionStore(persister)
	require.NoError(t, s.Hydrate())

	assert.False(t, s.Authenticated())
	assertInvariant(t, s)
}
