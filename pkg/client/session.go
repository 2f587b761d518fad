package client

import "sync"

// TokenStore persists session tokens across process restarts. Implementations
// may write to disk, a keychain, or anything else; the in-memory Session works
// without one.
type TokenStore interface {
	Save(accessToken, refreshToken string) error
	Load() (accessToken, refreshToken string, err error)
	Clear() error
}

// Session holds the tokens for one authenticated user. It is injected into
// the Client at construction; there is no global token state.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	store        TokenStore
}

// NewSession returns an empty in-memory session.
func NewSession() *Session {
	return &Session{}
}

// NewPersistentSession returns a session backed by store, pre-loaded with
// whatever tokens the store currently holds.
func NewPersistentSession(store TokenStore) (*Session, error) {
	s := &Session{store: store}
	access, refresh, err := store.Load()
	if err != nil {
		return nil, err
	}
	s.accessToken = access
	s.refreshToken = refresh
	return s, nil
}

// SetTokens replaces both tokens, persisting them when a store is attached.
func (s *Session) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	if s.store != nil {
		return s.store.Save(accessToken, refreshToken)
	}
	return nil
}

// AccessToken returns the current access token, empty when signed out.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token, empty when signed out.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Authenticated reports whether the session holds an access token.
func (s *Session) Authenticated() bool {
	return s.AccessToken() != ""
}

// Clear drops both tokens and wipes the store when one is attached.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	if s.store != nil {
		return s.store.Clear()
	}
	return nil
}
