// Package session provides the in-process bearer-token table. Sessions are
// deliberately not persisted: a restart invalidates every token.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// tokenBytes gives 128 bits of entropy per token (32 hex characters).
const tokenBytes = 16

// Store maps opaque tokens to user ids. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]int64
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]int64)}
}

// Issue generates a fresh random token for userID and records it. On the
// astronomically unlikely collision the old entry is overwritten.
func (s *Store) Issue(userID int64) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()

	return token, nil
}

// Resolve returns the user id a token was issued for. Empty or unknown
// tokens report ok=false.
func (s *Store) Resolve(token string) (int64, bool) {
	if token == "" {
		return 0, false
	}
	s.mu.RLock()
	userID, ok := s.sessions[token]
	s.mu.RUnlock()
	return userID, ok
}

// Count reports the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
