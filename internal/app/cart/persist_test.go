package cart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePersister_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart-storage-abc.json")
	persister := NewFilePersister(path)

	state := emptyState()
	state.Cart["1"] = model.LineItem{
		ProductID: 1,
		Name:      "Wireless Earbuds",
		Price:     10,
		Stock:     5,
		Quantity:  2,
		Variations: []model.SelectedVariation{
			{ID: 11, AttributeID: 3, Value: "M", Stock: intPtr(5)},
		},
	}
	require.NoError(t, persister.Save(state))

	loaded, err := persister.Load()
	require.NoError(t, err)
	assert.Equal(t, state.Cart, loaded.Cart)
}

func TestFilePersister_MissingFileIsEmptyCart(t *testing.T) {
	persister := NewFilePersister(filepath.Join(t.TempDir(), "nope.json"))

	state, err := persister.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Cart)
}

func TestFilePersister_CreatesStorageDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "carts", "cart-storage-x.json")
	persister := NewFilePersister(path)

	require.NoError(t, persister.Save(emptyState()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestPruneFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "cart-storage-old.json")
	require.NoError(t, os.WriteFile(stale, []byte(`{"cart":{}}`), 0o644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(dir, "cart-storage-new.json")
	require.NoError(t, os.WriteFile(fresh, []byte(`{"cart":{}}`), 0o644))

	removed, err := PruneFiles(dir, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestPruneFiles_MissingDir(t *testing.T) {
	removed, err := PruneFiles(filepath.Join(t.TempDir(), "missing"), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMemoryPersister_EmptyUntilSaved(t *testing.T) {
	persister := NewMemoryPersister()

	state, err := persister.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Cart)
}
