package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/notifications"
	"github.com/anonto42/souq-admin/backend/internal/orders"
	"github.com/anonto42/souq-admin/backend/internal/repositories"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderRepository repositories.OrderRepository
	lifecycle       *orders.Lifecycle
	dispatcher      orders.Dispatcher
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderRepo repositories.OrderRepository, lifecycle *orders.Lifecycle, dispatcher orders.Dispatcher) *OrderHandler {
	return &OrderHandler{
		orderRepository: orderRepo,
		lifecycle:       lifecycle,
		dispatcher:      dispatcher,
	}
}

// RegisterOrderRoutes registers order routes for the staff panel
func (h *OrderHandler) RegisterOrderRoutes(g *echo.Group) {
	g.POST("/orders", h.CreateOrder)
	g.GET("/orders", h.GetOrders)
	g.GET("/orders/:id", h.GetOrder)
	g.PUT("/orders/:id/status", h.UpdateOrderStatus)
}

// CreateOrder places a new order and notifies both audiences
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	orderNumber, err := h.orderRepository.NextOrderNumber(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Pay-on-delivery orders enter the pipeline immediately; everything
	// else waits for payment.
	status := models.OrderStatusAwaitingPayment
	if req.PayOnDelivery {
		status = models.OrderStatusReceived
	}

	order := &models.Order{
		OrderNumber:   orderNumber,
		CustomerID:    req.CustomerID,
		Items:         req.Items,
		Total:         req.Total,
		Status:        status,
		PaymentStatus: models.PaymentPending,
		ShippingAddr:  req.ShippingAddr,
	}

	if err := h.orderRepository.CreateOrder(c.Request().Context(), order); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The order is durable at this point; notification failures must not
	// undo it. Partial failures surface as a warning only.
	event := notifications.NewOrderPlaced{
		OrderID:     order.ID.Hex(),
		OrderNumber: order.OrderNumber,
		CustomerID:  order.CustomerID,
		Total:       order.Total,
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), event); err != nil {
		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"data":    echo.Map{"order": order},
			"warning": "order created but some notifications failed",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"order": order}})
}

// GetOrders returns orders, optionally scoped to a customer
func (h *OrderHandler) GetOrders(c echo.Context) error {
	customerID := c.QueryParam("customer_id")
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit == 0 {
		limit = 20 // Default limit
	}

	var result []models.Order
	var err error
	if customerID != "" {
		result, err = h.orderRepository.GetOrdersByCustomerID(c.Request().Context(), customerID, skip, limit)
	} else {
		result, err = h.orderRepository.GetAllOrders(c.Request().Context(), skip, limit)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"orders": result}})
}

// GetOrder returns a single order by ID
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderRepository.GetOrderByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"order": order}})
}

// UpdateOrderStatus applies a lifecycle transition to an order. An
// unchanged submission succeeds silently with no side effects; notification
// failures after a persisted transition are reported as a warning, never as
// a failed request.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.lifecycle.ApplyTransition(c.Request().Context(), c.Param("id"), orders.Transition{
		Status:         req.Status,
		PaymentStatus:  req.PaymentStatus,
		TrackingNumber: req.TrackingNumber,
		CancelReason:   req.CancelReason,
	})
	if err != nil {
		var partial *notifications.PartialFailure
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		case errors.Is(err, orders.ErrInvalidStatus), errors.Is(err, orders.ErrInvalidPaymentStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.As(err, &partial):
			// The transition itself is durable
			return c.JSON(http.StatusOK, echo.Map{
				"success": true,
				"data":    echo.Map{"updated": true},
				"warning": "status updated but some notifications failed",
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"updated": true}})
}
