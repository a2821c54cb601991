package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohandalborai/ShopSphere/internal/broker"
	"github.com/mohandalborai/ShopSphere/internal/models"
	"github.com/mohandalborai/ShopSphere/internal/state"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

// FulfillmentWorker consumes OrderPlaced events and, after a simulated
// fulfillment delay, advances the order to Delivered. There is no real
// fulfillment backend; this exists so order histories progress the way
// the storefront presents them.
type FulfillmentWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	registry     *state.Registry
	publisher    *broker.EventPublisher
	delay        time.Duration
	logger       *zap.Logger
}

// NewFulfillmentWorker creates a fulfillment worker.
func NewFulfillmentWorker(
	consumer *broker.Consumer,
	registry *state.Registry,
	publisher *broker.EventPublisher,
	delay time.Duration,
) *FulfillmentWorker {
	w := &FulfillmentWorker{
		consumer:  consumer,
		registry:  registry,
		publisher: publisher,
		delay:     delay,
		logger:    util.NamedLogger("fulfillment"),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	w.eventHandler = eventHandler
	return w
}

// Start starts the worker
func (w *FulfillmentWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting fulfillment worker", zap.Duration("delay", w.delay))
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *FulfillmentWorker) Stop() error {
	w.logger.Info("Stopping fulfillment worker")
	return w.consumer.Close()
}

func (w *FulfillmentWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	w.logger.Info("Order queued for fulfillment",
		zap.String("order_id", event.OrderID),
		zap.String("session_id", event.SessionID))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.delay):
	}

	orders := w.registry.Session(event.SessionID).Orders
	if !orders.SetStatus(event.OrderID, models.OrderStatusDelivered) {
		w.logger.Warn("Order vanished before fulfillment", zap.String("order_id", event.OrderID))
		return nil
	}

	util.OrdersDeliveredTotal.Inc()
	w.logger.Info("Order delivered", zap.String("order_id", event.OrderID))

	if w.publisher != nil {
		statusEvent := &models.OrderStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderStatusChanged,
				Timestamp: time.Now(),
			},
			SessionID: event.SessionID,
			OrderID:   event.OrderID,
			OldStatus: models.OrderStatusProcessing,
			NewStatus: models.OrderStatusDelivered,
		}
		if err := w.publisher.PublishOrderStatusChanged(ctx, statusEvent); err != nil {
			w.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
		}
	}

	return nil
}
