package notifications

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/anonto42/souq-admin/backend/internal/models"
)

// Target selects which inbox collection a write goes to.
type Target string

const (
	TargetStaff    Target = "staff"
	TargetCustomer Target = "customer"
)

// Write is one pending notification record, addressed to a single target
// store. A dispatch produces zero, one or two of these.
type Write struct {
	Target    Target
	Recipient string // customer Firebase UID; required for TargetCustomer
	Type      string
	Title     string
	Message   models.Message
	TargetID  string
	TargetURL string
	Metadata  map[string]any
}

// Store is the persistence surface the dispatcher needs from a notification
// collection.
type Store interface {
	Create(ctx context.Context, n *models.Notification) error
}

// PartialFailure reports that some, but not necessarily all, writes of a
// dispatch failed. The underlying state change is never rolled back.
type PartialFailure struct {
	Errs []error
}

func (p *PartialFailure) Error() string {
	msgs := make([]string, len(p.Errs))
	for i, err := range p.Errs {
		msgs[i] = err.Error()
	}
	return "notification dispatch partially failed: " + strings.Join(msgs, "; ")
}

// Dispatcher converts domain events into notification records in the staff
// and customer inbox collections. Each invocation is independent and
// at-most-once; deduplication of repeated saves is the order lifecycle's job.
type Dispatcher struct {
	staff    Store
	customer Store
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(staff, customer Store) *Dispatcher {
	return &Dispatcher{staff: staff, customer: customer}
}

// BuildWrites is the pure event-to-writes mapping. It never touches storage.
func BuildWrites(event any) []Write {
	switch e := event.(type) {
	case NewOrderPlaced:
		return []Write{
			{
				Target:    TargetStaff,
				Type:      models.StaffNotifOrder,
				Title:     "New order",
				Message:   models.PlainText(fmt.Sprintf("New order #%s placed — total %s", e.OrderNumber, formatAmount(e.Total))),
				TargetID:  e.OrderID,
				TargetURL: "/orders/" + e.OrderID,
				Metadata:  map[string]any{"order_number": e.OrderNumber, "total": e.Total},
			},
			{
				Target:    TargetCustomer,
				Recipient: e.CustomerID,
				Type:      models.CustomerNotifOrderConfirmed,
				Title:     "Order confirmed",
				Message:   orderConfirmedMessage(e),
				TargetID:  e.OrderID,
				TargetURL: "/orders/" + e.OrderID,
				Metadata:  map[string]any{"order_number": e.OrderNumber, "total": e.Total},
			},
		}
	case OrderStatusChanged:
		return statusChangeWrites(e)
	case NewCustomerRegistered:
		return []Write{
			{
				Target:    TargetStaff,
				Type:      models.StaffNotifCustomer,
				Title:     "New customer",
				Message:   models.PlainText(fmt.Sprintf("New customer registered: %s (%s)", e.Name, e.Email)),
				TargetID:  e.CustomerID,
				TargetURL: "/customers/" + e.CustomerID,
			},
			{
				Target:    TargetCustomer,
				Recipient: e.CustomerID,
				Type:      models.CustomerNotifWelcome,
				Title:     "Welcome",
				Message:   welcomeMessage(),
			},
		}
	case NewSupportMessage:
		return []Write{
			{
				Target:    TargetStaff,
				Type:      models.StaffNotifSupport,
				Title:     "New support message",
				Message:   models.PlainText("New support message: " + e.Subject),
				TargetID:  e.MessageID,
				TargetURL: "/support/" + e.MessageID,
				Metadata:  map[string]any{"customer_id": e.CustomerID},
			},
		}
	case LowStockDetected:
		return []Write{
			{
				Target:    TargetStaff,
				Type:      models.StaffNotifProduct,
				Title:     "Low stock",
				Message:   models.PlainText(fmt.Sprintf("Product %q is low on stock (%d left)", e.Name, e.Stock)),
				TargetID:  e.ProductID,
				TargetURL: "/products/" + e.ProductID,
				Metadata:  map[string]any{"stock": e.Stock},
			},
		}
	}
	return nil
}

// statusChangeWrites implements the per-status fan-out table. Every target
// status produces at most one staff write and at most one customer write.
func statusChangeWrites(e OrderStatusChanged) []Write {
	orderMeta := map[string]any{"order_number": e.OrderNumber}
	if e.TrackingNumber != "" {
		orderMeta["tracking_number"] = e.TrackingNumber
	}

	customer := func(typ, title string, msg models.Message) Write {
		return Write{
			Target:    TargetCustomer,
			Recipient: e.CustomerID,
			Type:      typ,
			Title:     title,
			Message:   msg,
			TargetID:  e.OrderID,
			TargetURL: "/orders/" + e.OrderID,
			Metadata:  orderMeta,
		}
	}

	switch e.NewStatus {
	case models.OrderStatusPreparing:
		return []Write{customer(models.CustomerNotifOrderProcessing, "Order processing", processingMessage(e))}
	case models.OrderStatusShipped:
		return []Write{customer(models.CustomerNotifOrderShipped, "Order shipped", shippedMessage(e))}
	case models.OrderStatusDelivered:
		return []Write{
			{
				Target:    TargetStaff,
				Type:      models.StaffNotifOrder,
				Title:     "Order delivered",
				Message:   models.PlainText(fmt.Sprintf("Order #%s has been delivered", e.OrderNumber)),
				TargetID:  e.OrderID,
				TargetURL: "/orders/" + e.OrderID,
				Metadata:  orderMeta,
			},
			customer(models.CustomerNotifOrderDelivered, "Order delivered", deliveredMessage(e)),
		}
	case models.OrderStatusCancelled:
		staffMsg := fmt.Sprintf("Order #%s has been cancelled", e.OrderNumber)
		if e.CancelReason != "" {
			staffMsg += " — reason: " + e.CancelReason
		}
		return []Write{
			{
				Target:    TargetStaff,
				Type:      models.StaffNotifOrder,
				Title:     "Order cancelled",
				Message:   models.PlainText(staffMsg),
				TargetID:  e.OrderID,
				TargetURL: "/orders/" + e.OrderID,
				Metadata:  orderMeta,
			},
			customer(models.CustomerNotifOrderCancelled, "Order cancelled", cancelledMessage(e)),
		}
	default:
		return []Write{customer(models.CustomerNotifGeneral, "Order update", generalStatusMessage(e))}
	}
}

// Dispatch persists every write produced for event. The two stores are
// independent: a failed write is logged and collected, and the remaining
// writes are still attempted. Customer writes without a recipient are
// skipped. Returns nil, or a *PartialFailure listing what failed.
func (d *Dispatcher) Dispatch(ctx context.Context, event any) error {
	var errs []error
	for _, w := range BuildWrites(event) {
		if w.Target == TargetCustomer && w.Recipient == "" {
			log.Printf("dispatch: skipping customer write for %T: missing recipient", event)
			continue
		}

		n := &models.Notification{
			Recipient: w.Recipient,
			Type:      w.Type,
			Title:     w.Title,
			Message:   w.Message,
			TargetID:  w.TargetID,
			TargetURL: w.TargetURL,
			Metadata:  w.Metadata,
			CreatedAt: time.Now(),
		}

		store := d.staff
		if w.Target == TargetCustomer {
			store = d.customer
		}
		if err := store.Create(ctx, n); err != nil {
			log.Printf("dispatch: %s notification write failed for %T: %v", w.Target, event, err)
			errs = append(errs, fmt.Errorf("%s write: %w", w.Target, err))
		}
	}
	if len(errs) > 0 {
		return &PartialFailure{Errs: errs}
	}
	return nil
}
