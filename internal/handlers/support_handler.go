package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/notifications"
	"github.com/anonto42/souq-admin/backend/internal/orders"
	"github.com/anonto42/souq-admin/backend/internal/repositories"
)

// SupportHandler handles support message submission and the staff-facing list
type SupportHandler struct {
	supportRepository repositories.SupportMessageRepository
	dispatcher        orders.Dispatcher
}

// NewSupportHandler creates a new SupportHandler
func NewSupportHandler(supportRepo repositories.SupportMessageRepository, dispatcher orders.Dispatcher) *SupportHandler {
	return &SupportHandler{
		supportRepository: supportRepo,
		dispatcher:        dispatcher,
	}
}

// RegisterCustomerRoutes registers the customer-facing support route
func (h *SupportHandler) RegisterCustomerRoutes(g *echo.Group) {
	g.POST("/support", h.CreateMessage)
}

// RegisterStaffRoutes registers the staff-facing support routes
func (h *SupportHandler) RegisterStaffRoutes(g *echo.Group) {
	g.GET("/support", h.GetMessages)
}

// CreateMessage stores a support message and raises a staff notification
func (h *SupportHandler) CreateMessage(c echo.Context) error {
	customerUID := getCustomerUID(c)
	if customerUID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Customer not authenticated")
	}

	var req models.CreateSupportMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message := &models.SupportMessage{
		CustomerID: customerUID,
		Subject:    req.Subject,
		Body:       req.Body,
	}
	if err := h.supportRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	event := notifications.NewSupportMessage{
		MessageID:  message.ID.Hex(),
		CustomerID: customerUID,
		Subject:    message.Subject,
	}
	// Best effort; the message itself is already stored
	if err := h.dispatcher.Dispatch(c.Request().Context(), event); err != nil {
		c.Logger().Warnf("support notification failed: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"message": message}})
}

// GetMessages returns support messages for the staff panel
func (h *SupportHandler) GetMessages(c echo.Context) error {
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit == 0 {
		limit = 20 // Default limit
	}

	messages, err := h.supportRepository.GetMessages(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"messages": messages}})
}
