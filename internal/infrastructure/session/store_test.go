package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_IssueAndResolve(t *testing.T) {
	store := NewStore()

	token, err := store.Issue(7)
	require.NoError(t, err)
	require.Len(t, token, 32, "token should be 16 random bytes hex-encoded")

	userID, ok := store.Resolve(token)
	assert.True(t, ok)
	assert.Equal(t, int64(7), userID)
}

func TestStore_ResolveUnknown(t *testing.T) {
	store := NewStore()

	_, ok := store.Resolve("")
	assert.False(t, ok, "empty token must not resolve")

	_, ok = store.Resolve("0123456789abcdef0123456789abcdef")
	assert.False(t, ok, "unknown token must not resolve")
}

func TestStore_MultipleSessionsPerUser(t *testing.T) {
	store := NewStore()

	first, err := store.Issue(3)
	require.NoError(t, err)
	second, err := store.Issue(3)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, store.Count())

	for _, token := range []string{first, second} {
		userID, ok := store.Resolve(token)
		require.True(t, ok)
		assert.Equal(t, int64(3), userID)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	const goroutines = 16
	const perGoroutine = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				token, err := store.Issue(userID)
				if err != nil {
					t.Error(err)
					return
				}
				if got, ok := store.Resolve(token); !ok || got != userID {
					t.Errorf("token resolved to %d, want %d", got, userID)
					return
				}
			}
		}(int64(g))
	}
	wg.Wait()

	assert.Equal(t, goroutines*perGoroutine, store.Count())
}
