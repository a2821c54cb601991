package state

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohandalborai/ShopSphere/internal/models"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutRequest carries the customer, payment and note fields
// collected by the checkout form. Payment fields are validated but
// never stored; there is no real payment gateway behind this.
type CheckoutRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`

	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	Country string `json:"country" validate:"required"`

	CardNumber string `json:"card_number" validate:"required"`
	CardName   string `json:"card_name" validate:"required"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`

	OrderNotes string `json:"order_notes"`
}

// ValidationError carries field-level validation messages, keyed by the
// form field's JSON name. Values are translation keys resolved by the
// view layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "checkout validation failed"
}

// OrderEventSink receives best-effort order events. A nil sink is valid.
type OrderEventSink interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
}

// Checkout turns a validated checkout request plus the session's cart
// into a placed order.
type Checkout struct {
	taxRate  float64
	events   OrderEventSink
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCheckout creates a checkout with the given tax rate and optional
// event sink.
func NewCheckout(taxRate float64, events OrderEventSink) *Checkout {
	return &Checkout{
		taxRate:  taxRate,
		events:   events,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   util.NamedLogger("checkout"),
	}
}

// Validate checks all form fields and returns a ValidationError with
// one message per offending field, or nil. Validation happens before
// any state mutation.
func (c *Checkout) Validate(req *CheckoutRequest) *ValidationError {
	fields := make(map[string]string)

	if err := c.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				name := fieldJSONName(fe.Field())
				if fe.Tag() == "email" {
					fields[name] = "invalid_email"
				} else {
					fields[name] = "required_field"
				}
			}
		}
	}

	if _, ok := fields["card_number"]; !ok {
		if digits := strings.ReplaceAll(req.CardNumber, " ", ""); len(digits) < 16 {
			fields["card_number"] = "card_length_error"
		}
	}
	if _, ok := fields["cvv"]; !ok {
		if len(req.CVV) < 3 {
			fields["cvv"] = "cvv_length_error"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// PlaceOrder validates the request, snapshots the cart into a new order,
// clears the cart and publishes an OrderPlaced event. The event publish
// is best effort and never fails the checkout.
func (c *Checkout) PlaceOrder(ctx context.Context, sessionID string, cart *CartStore, orders *OrderStore, req *CheckoutRequest) (models.Order, error) {
	if verr := c.Validate(req); verr != nil {
		util.CheckoutFailedTotal.WithLabelValues("validation").Inc()
		return models.Order{}, verr
	}

	items := cart.Items()
	if len(items) == 0 {
		util.CheckoutFailedTotal.WithLabelValues("empty_cart").Inc()
		return models.Order{}, ErrEmptyCart
	}

	subtotal := cart.CartTotal()
	tax := subtotal * c.taxRate

	order := orders.AddOrder(models.Order{
		Customer: models.Customer{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			State:      req.State,
			ZipCode:    req.ZipCode,
			Country:    req.Country,
			OrderNotes: req.OrderNotes,
		},
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	})

	cart.ClearCart()
	util.OrdersPlacedTotal.Inc()
	c.logger.Info("Order placed",
		zap.String("session_id", sessionID),
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total))

	if c.events != nil {
		event := &models.OrderPlacedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderPlaced,
				Timestamp: time.Now(),
			},
			SessionID: sessionID,
			OrderID:   order.ID,
			Email:     order.Customer.Email,
			Total:     order.Total,
			Items:     order.Items,
		}
		if err := c.events.PublishOrderPlaced(ctx, event); err != nil {
			c.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
		}
	}

	return order, nil
}

// fieldJSONName maps a CheckoutRequest struct field name to its JSON
// form name.
func fieldJSONName(field string) string {
	switch field {
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	case "Email":
		return "email"
	case "Phone":
		return "phone"
	case "Address":
		return "address"
	case "City":
		return "city"
	case "State":
		return "state"
	case "ZipCode":
		return "zip_code"
	case "Country":
		return "country"
	case "CardNumber":
		return "card_number"
	case "CardName":
		return "card_name"
	case "ExpiryDate":
		return "expiry_date"
	case "CVV":
		return "cvv"
	default:
		return field
	}
}
