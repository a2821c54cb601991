package state

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/models"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

// WishlistStore maintains the wishlist for one session. Entries have
// set semantics: no duplicates, no quantity.
type WishlistStore struct {
	notifier

	mu      sync.Mutex
	entries []models.WishlistEntry
	kv      kvstore.Store
	key     string
	logger  *zap.Logger
}

// NewWishlistStore creates a wishlist store, loading any persisted entries.
func NewWishlistStore(kv kvstore.Store, key string) *WishlistStore {
	s := &WishlistStore{
		kv:     kv,
		key:    key,
		logger: util.NamedLogger("wishlist"),
	}
	loadJSON(kv, s.logger, key, &s.entries)
	return s
}

// AddToWishlist inserts product if not already present. Adding a
// product that is already wishlisted is a no-op.
func (s *WishlistStore) AddToWishlist(product models.Product) {
	s.mu.Lock()
	added := s.addLocked(product)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if added {
		persistJSON(s.kv, s.logger, "wishlist", s.key, snapshot)
		s.notify()
	}
}

// RemoveFromWishlist deletes the entry for productID if present.
func (s *WishlistStore) RemoveFromWishlist(productID int64) {
	s.mu.Lock()
	removed := s.removeLocked(productID)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if removed {
		persistJSON(s.kv, s.logger, "wishlist", s.key, snapshot)
		s.notify()
	}
}

// IsInWishlist reports whether productID is wishlisted.
func (s *WishlistStore) IsInWishlist(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(productID) >= 0
}

// ToggleWishlist adds product when absent and removes it when present.
// It returns true when the product was added and false when it was
// removed; the check and the mutation happen atomically under the store
// lock so the result always reflects the mutation actually performed.
func (s *WishlistStore) ToggleWishlist(product models.Product) bool {
	s.mu.Lock()
	var added bool
	if s.indexLocked(product.ID) >= 0 {
		s.removeLocked(product.ID)
		added = false
	} else {
		s.addLocked(product)
		added = true
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if added {
		util.WishlistTogglesTotal.WithLabelValues("added").Inc()
	} else {
		util.WishlistTogglesTotal.WithLabelValues("removed").Inc()
	}
	persistJSON(s.kv, s.logger, "wishlist", s.key, snapshot)
	s.notify()
	return added
}

// Items returns a copy of the current wishlist entries.
func (s *WishlistStore) Items() []models.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Count returns the number of wishlisted products.
func (s *WishlistStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *WishlistStore) indexLocked(productID int64) int {
	for i := range s.entries {
		if s.entries[i].ID == productID {
			return i
		}
	}
	return -1
}

func (s *WishlistStore) addLocked(product models.Product) bool {
	if s.indexLocked(product.ID) >= 0 {
		return false
	}
	s.entries = append(s.entries, models.WishlistEntry{
		Product: product,
		AddedAt: time.Now(),
	})
	return true
}

func (s *WishlistStore) removeLocked(productID int64) bool {
	i := s.indexLocked(productID)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return true
}

func (s *WishlistStore) snapshotLocked() []models.WishlistEntry {
	snapshot := make([]models.WishlistEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}
