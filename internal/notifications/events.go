package notifications

import "github.com/anonto42/souq-admin/backend/internal/models"

// Domain events consumed by the dispatcher. Each event is built by the code
// that performed the underlying action, after its own persistence succeeded.

// NewOrderPlaced fires once when an order is created.
type NewOrderPlaced struct {
	OrderID     string
	OrderNumber string
	CustomerID  string
	Total       float64
}

// OrderStatusChanged fires once per effective lifecycle transition. A
// transition that changes nothing never produces this event.
type OrderStatusChanged struct {
	OrderID        string
	OrderNumber    string
	CustomerID     string
	OldStatus      models.OrderStatus
	NewStatus      models.OrderStatus
	OldPayment     models.PaymentStatus
	NewPayment     models.PaymentStatus
	TrackingNumber string
	CancelReason   string
}

// PaymentConfirmed reports whether this transition is the one that moved the
// payment state to paid.
func (e OrderStatusChanged) PaymentConfirmed() bool {
	return e.NewPayment == models.PaymentPaid && e.OldPayment != models.PaymentPaid
}

// NewCustomerRegistered fires once when a shopper completes registration.
type NewCustomerRegistered struct {
	CustomerID string
	Name       string
	Email      string
}

// NewSupportMessage fires once per submitted support message.
type NewSupportMessage struct {
	MessageID  string
	CustomerID string
	Subject    string
}

// LowStockDetected fires when a stock update crosses the product's low-stock
// threshold from above.
type LowStockDetected struct {
	ProductID string
	Name      string
	Stock     int
}
