package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	access  string
	refresh string
	saves   int
	clears  int
}

func (m *memoryStore) Save(accessToken, refreshToken string) error {
	m.access = accessToken
	m.refresh = refreshToken
	m.saves++
	return nil
}

func (m *memoryStore) Load() (string, string, error) {
	return m.access, m.refresh, nil
}

func (m *memoryStore) Clear() error {
	m.access = ""
	m.refresh = ""
	m.clears++
	return nil
}

func TestSessionInMemory(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Authenticated())

	require.NoError(t, s.SetTokens("access", "refresh"))
	assert.True(t, s.Authenticated())
	assert.Equal(t, "access", s.AccessToken())
	assert.Equal(t, "refresh", s.RefreshToken())

	require.NoError(t, s.Clear())
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.RefreshToken())
}

func TestPersistentSessionRoundTrip(t *testing.T) {
	store := &memoryStore{}

	s, err := NewPersistentSession(store)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.SetTokens("access", "refresh"))
	assert.Equal(t, 1, store.saves)

	// A fresh session over the same store picks the tokens back up.
	restored, err := NewPersistentSession(store)
	require.NoError(t, err)
	assert.True(t, restored.Authenticated())
	assert.Equal(t, "access", restored.AccessToken())

	require.NoError(t, restored.Clear())
	assert.Equal(t, 1, store.clears)
	assert.Empty(t, store.access)
}
