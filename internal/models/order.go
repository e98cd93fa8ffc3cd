package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfilment state of an order. All ten states are
// selectable by staff at any time; the lifecycle is permissive.
type OrderStatus string

const (
	OrderStatusReceived        OrderStatus = "Received"
	OrderStatusUnderReview     OrderStatus = "Under Review"
	OrderStatusPreparing       OrderStatus = "Preparing"
	OrderStatusShipped         OrderStatus = "Shipped"
	OrderStatusArrivedHub      OrderStatus = "Arrived Hub"
	OrderStatusOutForDelivery  OrderStatus = "Out for Delivery"
	OrderStatusDelivered       OrderStatus = "Delivered"
	OrderStatusCancelled       OrderStatus = "Cancelled"
	OrderStatusDeliveryFailed  OrderStatus = "Delivery Failed"
	OrderStatusAwaitingPayment OrderStatus = "Awaiting Payment"
)

// AllOrderStatuses lists every selectable status, in display order.
var AllOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusUnderReview,
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusArrivedHub,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusDeliveryFailed,
	OrderStatusAwaitingPayment,
}

// Valid reports whether s is one of the ten known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range AllOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// PaymentStatus is tracked independently of OrderStatus; paid + Cancelled
// may coexist (refund path).
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether p is a known payment status.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// OrderItem is a line item snapshot taken at order time.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Order represents a customer order stored in MongoDB. The lifecycle only
// mutates Status, PaymentStatus, TrackingNumber and CancelReason; everything
// else is owned by the commerce endpoints.
type Order struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrderNumber    string             `json:"order_number" bson:"order_number"` // Human-readable display number, immutable
	CustomerID     string             `json:"customer_id" bson:"customer_id"`   // Firebase UID of the shopper
	Items          []OrderItem        `json:"items" bson:"items"`
	Total          float64            `json:"total" bson:"total"`
	Status         OrderStatus        `json:"status" bson:"status"`
	PaymentStatus  PaymentStatus      `json:"payment_status" bson:"payment_status"`
	TrackingNumber string             `json:"tracking_number,omitempty" bson:"tracking_number,omitempty"`
	CancelReason   string             `json:"cancel_reason,omitempty" bson:"cancel_reason,omitempty"`
	ShippingAddr   string             `json:"shipping_address,omitempty" bson:"shipping_address,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateOrderRequest defines the request body for placing a new order
type CreateOrderRequest struct {
	CustomerID    string      `json:"customer_id" validate:"required"`
	Items         []OrderItem `json:"items" validate:"required,min=1,dive"`
	Total         float64     `json:"total" validate:"required,gt=0"`
	ShippingAddr  string      `json:"shipping_address,omitempty"`
	PayOnDelivery bool        `json:"pay_on_delivery,omitempty"`
}

// UpdateOrderStatusRequest defines the request body for a status transition
type UpdateOrderStatusRequest struct {
	Status         OrderStatus   `json:"status" validate:"required"`
	PaymentStatus  PaymentStatus `json:"payment_status" validate:"required"`
	TrackingNumber string        `json:"tracking_number,omitempty"`
	CancelReason   string        `json:"cancel_reason,omitempty"`
}
