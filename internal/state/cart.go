package state

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/models"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

// CartStore maintains the cart lines for one session. At most one line
// exists per product ID; quantities are always >= 1.
type CartStore struct {
	notifier

	mu     sync.Mutex
	lines  []models.CartLine
	kv     kvstore.Store
	key    string
	logger *zap.Logger
}

// NewCartStore creates a cart store, loading any persisted lines.
func NewCartStore(kv kvstore.Store, key string) *CartStore {
	s := &CartStore{
		kv:     kv,
		key:    key,
		logger: util.NamedLogger("cart"),
	}
	loadJSON(kv, s.logger, key, &s.lines)
	return s
}

// AddToCart adds quantity units of product, incrementing the existing
// line if one exists. Quantities below one count as one. The resulting
// quantity is silently clamped to the product's reported stock when the
// product reports any.
func (s *CartStore) AddToCart(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ID == product.ID {
			s.lines[i].Quantity = clampToStock(s.lines[i].Quantity+quantity, s.lines[i].Stock)
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, models.CartLine{
			Product:  product,
			Quantity: clampToStock(quantity, product.Stock),
		})
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	util.CartMutationsTotal.WithLabelValues("add").Inc()
	persistJSON(s.kv, s.logger, "cart", s.key, snapshot)
	s.notify()
}

// RemoveFromCart deletes the line for productID. Removing an absent
// product is a no-op.
func (s *CartStore) RemoveFromCart(productID int64) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	util.CartMutationsTotal.WithLabelValues("remove").Inc()
	persistJSON(s.kv, s.logger, "cart", s.key, snapshot)
	s.notify()
}

// UpdateQuantity sets the line's quantity to newQuantity exactly. A
// quantity of zero or less removes the line. Updating a product that is
// not in the cart is a no-op.
func (s *CartStore) UpdateQuantity(productID int64, newQuantity int) {
	if newQuantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}

	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID == productID {
			s.lines[i].Quantity = clampToStock(newQuantity, s.lines[i].Stock)
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	util.CartMutationsTotal.WithLabelValues("update").Inc()
	persistJSON(s.kv, s.logger, "cart", s.key, snapshot)
	s.notify()
}

// ClearCart empties all lines.
func (s *CartStore) ClearCart() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	util.CartMutationsTotal.WithLabelValues("clear").Inc()
	persistJSON(s.kv, s.logger, "cart", s.key, []models.CartLine{})
	s.notify()
}

// Items returns a copy of the current cart lines.
func (s *CartStore) Items() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// CartCount returns the sum of quantities across all lines, not the
// number of distinct lines.
func (s *CartStore) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// CartTotal returns the sum of price times quantity over all lines,
// recomputed fresh on every call.
func (s *CartStore) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

func (s *CartStore) snapshotLocked() []models.CartLine {
	snapshot := make([]models.CartLine, len(s.lines))
	copy(snapshot, s.lines)
	return snapshot
}

// clampToStock caps quantity at the reported stock. Products that
// report no stock information pass through unclamped.
func clampToStock(quantity, stock int) int {
	if stock > 0 && quantity > stock {
		return stock
	}
	return quantity
}
