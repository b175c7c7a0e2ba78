package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	dir := t.TempDir()
	return NewManager(FilePersisterFactory(dir, "cart-storage"), DefaultTabletBreakpoint)
}

func TestManager_SameSessionSameStore(t *testing.T) {
	manager := newTestManager(t)

	first, err := manager.Get("sess-a")
	require.NoError(t, err)
	second, err := manager.Get("sess-a")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, manager.Len())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	manager := newTestManager(t)

	storeA, err := manager.Get("sess-a")
	require.NoError(t, err)
	storeB, err := manager.Get("sess-b")
	require.NoError(t, err)

	storeA.AddToCart(testProduct(), 2, nil)

	assert.Equal(t, 2, storeA.Count())
	assert.Zero(t, storeB.Count())
}

func TestManager_ViewportWidthFeedsStore(t *testing.T) {
	manager := newTestManager(t)

	store, err := manager.Get("sess-a")
	require.NoError(t, err)

	manager.SetViewportWidth("sess-a", 1024)
	store.AddToCart(testProduct(), 1, nil)
	assert.True(t, store.IsOpen())

	manager.SetViewportWidth("sess-a", 375)
	store.AddToCart(testProduct(), 1, nil)
	assert.False(t, store.IsOpen())
}

func TestManager_UnreportedWidthKeepsDrawerClosed(t *testing.T) {
	manager := newTestManager(t)

	store, err := manager.Get("sess-a")
	require.NoError(t, err)

	store.AddToCart(testProduct(), 1, nil)
	assert.False(t, store.IsOpen())
}

func TestManager_PruneIdleRehydratesFromRecord(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager(FilePersisterFactory(dir, "cart-storage"), DefaultTabletBreakpoint)

	store, err := manager.Get("sess-a")
	require.NoError(t, err)
	store.AddToCart(testProduct(), 3, nil)

	pruned := manager.PruneIdle(0)
	assert.Equal(t, 1, pruned)
	assert.Zero(t, manager.Len())

	reloaded, err := manager.Get("sess-a")
	require.NoError(t, err)
	assert.NotSame(t, store, reloaded)
	assert.Equal(t, 3, reloaded.Count())
}
