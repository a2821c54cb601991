package state

import (
	"fmt"
	"sync"

	"github.com/mohandalborai/ShopSphere/internal/authhash"
	"github.com/mohandalborai/ShopSphere/internal/kvstore"
)

// Stores bundles the domain state stores owned by one client session.
type Stores struct {
	Cart     *CartStore
	Wishlist *WishlistStore
	Orders   *OrderStore
	Auth     *AuthStore
	Language *LanguageStore
}

// Registry hands out the store set for a session ID, constructing it on
// first access and keeping the live instances for the process lifetime.
// All sessions share one kv store; keys are namespaced per session.
// Credential records are global, so accounts work across sessions.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*Stores
	kv          kvstore.Store
	hasher      authhash.Hasher
	defaultLang string
}

// NewRegistry creates an empty session registry.
func NewRegistry(kv kvstore.Store, hasher authhash.Hasher, defaultLang string) *Registry {
	return &Registry{
		sessions:    make(map[string]*Stores),
		kv:          kv,
		hasher:      hasher,
		defaultLang: defaultLang,
	}
}

// Session returns the store set for sessionID, creating and loading it
// on first access.
func (r *Registry) Session(sessionID string) *Stores {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[sessionID]; ok {
		return s
	}

	s := &Stores{
		Cart:     NewCartStore(r.kv, sessionKey(sessionID, "cart")),
		Wishlist: NewWishlistStore(r.kv, sessionKey(sessionID, "wishlist")),
		Orders:   NewOrderStore(r.kv, sessionKey(sessionID, "orders")),
		Auth:     NewAuthStore(r.kv, sessionKey(sessionID, "user"), r.hasher),
		Language: NewLanguageStore(r.kv, sessionKey(sessionID, "language"), r.defaultLang),
	}
	r.sessions[sessionID] = s
	return s
}

func sessionKey(sessionID, slice string) string {
	return fmt.Sprintf("sess:%s:%s", sessionID, slice)
}
