package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/notifications"
)

var (
	// ErrOrderNotFound is returned when the order id resolves to nothing.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidStatus is returned for a status outside the ten known states.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidPaymentStatus is returned for an unknown payment status.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Store is the order persistence surface the lifecycle needs.
type Store interface {
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	UpdateLifecycle(ctx context.Context, id string, update LifecycleUpdate) error
}

// Dispatcher hands a domain event to the notification layer.
type Dispatcher interface {
	Dispatch(ctx context.Context, event any) error
}

// Transition is a requested state change, as submitted by staff. An empty
// TrackingNumber leaves the stored tracking number unchanged.
type Transition struct {
	Status         models.OrderStatus
	PaymentStatus  models.PaymentStatus
	TrackingNumber string
	CancelReason   string
}

// LifecycleUpdate is the set of fields the lifecycle is allowed to write.
type LifecycleUpdate struct {
	Status         models.OrderStatus
	PaymentStatus  models.PaymentStatus
	TrackingNumber string
	CancelReason   string
	UpdatedAt      time.Time
}

// Lifecycle applies status transitions to orders and fans the resulting
// event out to the notification dispatcher. The machine is permissive: staff
// may move an order from any status to any status. The only rule enforced
// here is the no-op short-circuit, which is what keeps repeated saves from
// producing duplicate notifications.
type Lifecycle struct {
	store      Store
	dispatcher Dispatcher
}

// NewLifecycle creates a new Lifecycle
func NewLifecycle(store Store, dispatcher Dispatcher) *Lifecycle {
	return &Lifecycle{store: store, dispatcher: dispatcher}
}

// ApplyTransition validates and persists a transition, then dispatches the
// resulting OrderStatusChanged event. The order update happens strictly
// before dispatch: if persistence fails no event is emitted. A dispatch
// failure (notifications.PartialFailure) is returned to the caller but the
// persisted transition stands.
func (l *Lifecycle) ApplyTransition(ctx context.Context, orderID string, t Transition) error {
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.PaymentStatus.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, t.PaymentStatus)
	}

	order, err := l.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	tracking := t.TrackingNumber
	if tracking == "" {
		tracking = order.TrackingNumber
	}

	// No-op short-circuit: an idempotent re-save writes nothing and
	// notifies nobody.
	if t.Status == order.Status && t.PaymentStatus == order.PaymentStatus && tracking == order.TrackingNumber {
		return nil
	}

	update := LifecycleUpdate{
		Status:         t.Status,
		PaymentStatus:  t.PaymentStatus,
		TrackingNumber: tracking,
		CancelReason:   order.CancelReason,
		UpdatedAt:      time.Now(),
	}
	if t.Status == models.OrderStatusCancelled && t.CancelReason != "" {
		update.CancelReason = t.CancelReason
	}

	if err := l.store.UpdateLifecycle(ctx, orderID, update); err != nil {
		return fmt.Errorf("update order %s: %w", orderID, err)
	}

	event := notifications.OrderStatusChanged{
		OrderID:        orderID,
		OrderNumber:    order.OrderNumber,
		CustomerID:     order.CustomerID,
		OldStatus:      order.Status,
		NewStatus:      t.Status,
		OldPayment:     order.PaymentStatus,
		NewPayment:     t.PaymentStatus,
		TrackingNumber: tracking,
		CancelReason:   update.CancelReason,
	}
	return l.dispatcher.Dispatch(ctx, event)
}
