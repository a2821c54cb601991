// Package state holds the per-session domain state stores: cart,
// wishlist, orders, auth and language. Each store loads its initial
// value from the persistent key-value store at construction, mutates in
// memory under a mutex, and writes through on every mutation. A failed
// write is logged and never propagated; in-memory state stays
// authoritative for the rest of the session.
package state

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

// persistJSON serializes value and writes it through to the kv store.
func persistJSON(kv kvstore.Store, logger *zap.Logger, storeName, key string, value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		logger.Error("Failed to serialize state", zap.String("key", key), zap.Error(err))
		return
	}
	if err := kv.Set(key, string(b)); err != nil {
		util.KVWriteFailuresTotal.WithLabelValues(storeName).Inc()
		logger.Error("Failed to persist state", zap.String("key", key), zap.Error(err))
	}
}

// loadJSON reads key into out. A missing key or corrupt value leaves
// out untouched; corruption is logged, not fatal.
func loadJSON(kv kvstore.Store, logger *zap.Logger, key string, out interface{}) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		logger.Error("Failed to load state", zap.String("key", key), zap.Error(err))
		return
	}
	if !ok || raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Error("Failed to decode persisted state", zap.String("key", key), zap.Error(err))
	}
}

// notifier fans out change notifications to subscribed views.
// Subscribers are invoked after the mutation has completed and been
// written through, outside the store's lock.
type notifier struct {
	mu   sync.Mutex
	subs []func()
}

// Subscribe registers fn to run after every completed mutation.
func (n *notifier) Subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *notifier) notify() {
	n.mu.Lock()
	subs := make([]func(), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
