package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohandalborai/ShopSphere/internal/kvstore"
)

func TestWishlistNoDuplicates(t *testing.T) {
	wl := NewWishlistStore(kvstore.NewMemoryStore(), "wishlist")

	wl.AddToWishlist(product(7, 10))
	wl.AddToWishlist(product(7, 10))

	assert.Equal(t, 1, wl.Count())
	assert.True(t, wl.IsInWishlist(7))
}

func TestWishlistRemoveAbsentIsNoop(t *testing.T) {
	wl := NewWishlistStore(kvstore.NewMemoryStore(), "wishlist")
	wl.AddToWishlist(product(1, 10))

	wl.RemoveFromWishlist(99)

	assert.Equal(t, 1, wl.Count())
}

func TestToggleWishlistScenario(t *testing.T) {
	wl := NewWishlistStore(kvstore.NewMemoryStore(), "wishlist")
	assert.Equal(t, 0, wl.Count())

	added := wl.ToggleWishlist(product(7, 10))
	assert.True(t, added)
	assert.True(t, wl.IsInWishlist(7))

	added = wl.ToggleWishlist(product(7, 10))
	assert.False(t, added)
	assert.False(t, wl.IsInWishlist(7))

	// two toggles restore the original membership
	assert.Equal(t, 0, wl.Count())
}

func TestWishlistPersistsAcrossReload(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	wl := NewWishlistStore(kv, "wishlist")

	wl.AddToWishlist(product(1, 10))
	wl.AddToWishlist(product(2, 20))
	wl.RemoveFromWishlist(1)

	reloaded := NewWishlistStore(kv, "wishlist")
	require.Equal(t, 1, reloaded.Count())
	assert.True(t, reloaded.IsInWishlist(2))
	assert.False(t, reloaded.IsInWishlist(1))
}

func TestWishlistPersistenceFailureDoesNotPropagate(t *testing.T) {
	wl := NewWishlistStore(&failingStore{kvstore.NewMemoryStore()}, "wishlist")

	added := wl.ToggleWishlist(product(7, 10))

	assert.True(t, added)
	assert.True(t, wl.IsInWishlist(7))
}

func TestWishlistNotifiesOnEffectiveMutationsOnly(t *testing.T) {
	wl := NewWishlistStore(kvstore.NewMemoryStore(), "wishlist")

	var notified int
	wl.Subscribe(func() { notified++ })

	wl.AddToWishlist(product(1, 10))
	wl.AddToWishlist(product(1, 10)) // duplicate, no mutation
	wl.RemoveFromWishlist(99)        // absent, no mutation
	wl.RemoveFromWishlist(1)

	assert.Equal(t, 2, notified)
}
