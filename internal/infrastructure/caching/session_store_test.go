package caching

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/editor"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
)

func newStoreSession(moduleID string) *editor.Session {
	return editor.NewSession(moduleID, layout.NewTree(), 0, 10)
}

func TestSessionStorePutGet(t *testing.T) {
	store := NewSessionStore(5, time.Minute, nil)

	session := newStoreSession("mod-1")
	store.Put(session)

	got, ok := store.Get("mod-1")
	require.True(t, ok)
	assert.Same(t, session, got)

	_, ok = store.Get("mod-2")
	assert.False(t, ok)
}

func TestSessionStoreReplacesPerModule(t *testing.T) {
	store := NewSessionStore(5, 0, nil)

	first := newStoreSession("mod-1")
	second := newStoreSession("mod-1")
	store.Put(first)
	store.Put(second)

	got, ok := store.Get("mod-1")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStoreCapacityEviction(t *testing.T) {
	store := NewSessionStore(2, 0, nil)

	store.Put(newStoreSession("mod-1"))
	store.Put(newStoreSession("mod-2"))

	// Touch mod-1 so mod-2 is the eviction candidate.
	_, ok := store.Get("mod-1")
	require.True(t, ok)

	store.Put(newStoreSession("mod-3"))
	assert.Equal(t, 2, store.Len())

	_, ok = store.Get("mod-2")
	assert.False(t, ok, "least recently used session is evicted")
	_, ok = store.Get("mod-1")
	assert.True(t, ok)
	_, ok = store.Get("mod-3")
	assert.True(t, ok)
}

func TestSessionStoreTTLEviction(t *testing.T) {
	store := NewSessionStore(5, 10*time.Millisecond, nil)

	store.Put(newStoreSession("mod-1"))
	time.Sleep(25 * time.Millisecond)

	_, ok := store.Get("mod-1")
	assert.False(t, ok, "idle session expires")
	assert.Equal(t, 0, store.Len())
}

func TestSessionStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewSessionStore(5, 0, nil)

	store.Put(newStoreSession("mod-1"))
	time.Sleep(15 * time.Millisecond)

	_, ok := store.Get("mod-1")
	assert.True(t, ok)
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore(5, time.Minute, nil)

	for i := 0; i < 3; i++ {
		store.Put(newStoreSession(fmt.Sprintf("mod-%d", i)))
	}
	store.Delete("mod-1")

	assert.Equal(t, 2, store.Len())
	_, ok := store.Get("mod-1")
	assert.False(t, ok)
}
