package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/models"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

// OrderStore maintains the order history for one session, newest first.
// Orders are never removed; only their status advances.
type OrderStore struct {
	notifier

	mu     sync.Mutex
	orders []models.Order
	kv     kvstore.Store
	key    string
	logger *zap.Logger
}

// NewOrderStore creates an order store, loading any persisted orders.
func NewOrderStore(kv kvstore.Store, key string) *OrderStore {
	s := &OrderStore{
		kv:     kv,
		key:    key,
		logger: util.NamedLogger("orders"),
	}
	loadJSON(kv, s.logger, key, &s.orders)
	return s
}

// AddOrder stamps data with a generated unique ID, the current time and
// the Processing status, prepends it to the order list and returns the
// completed order.
func (s *OrderStore) AddOrder(data models.Order) models.Order {
	data.ID = newOrderID()
	data.Date = time.Now()
	data.Status = models.OrderStatusProcessing

	s.mu.Lock()
	s.orders = append([]models.Order{data}, s.orders...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("Order added", zap.String("order_id", data.ID), zap.Float64("total", data.Total))
	persistJSON(s.kv, s.logger, "orders", s.key, snapshot)
	s.notify()
	return data
}

// GetOrderByID returns the order with the given ID. The boolean reports
// whether it was found; a miss is not an error.
func (s *OrderStore) GetOrderByID(orderID string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return models.Order{}, false
}

// Orders returns a copy of the order list, newest first.
func (s *OrderStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetStatus advances the status of an existing order. It exists for the
// fulfillment worker; there is no public cancel or edit surface. The
// boolean reports whether the order was found.
func (s *OrderStore) SetStatus(orderID, status string) bool {
	s.mu.Lock()
	found := false
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			found = true
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !found {
		return false
	}
	persistJSON(s.kv, s.logger, "orders", s.key, snapshot)
	s.notify()
	return true
}

func (s *OrderStore) snapshotLocked() []models.Order {
	snapshot := make([]models.Order, len(s.orders))
	copy(snapshot, s.orders)
	return snapshot
}

// newOrderID builds an order identifier from the current time plus a
// random disambiguator. Collisions are negligible for a single session;
// cryptographic uniqueness is not required here.
func newOrderID() string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
