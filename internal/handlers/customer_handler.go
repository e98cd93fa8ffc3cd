package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/notifications"
	"github.com/anonto42/souq-admin/backend/internal/orders"
	"github.com/anonto42/souq-admin/backend/internal/repositories"
)

// CustomerHandler handles customer registration and the staff-facing
// customer list
type CustomerHandler struct {
	customerRepository repositories.CustomerRepository
	firebaseAuth       *auth.Client
	dispatcher         orders.Dispatcher
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerRepo repositories.CustomerRepository, firebaseAuthClient *auth.Client, dispatcher orders.Dispatcher) *CustomerHandler {
	return &CustomerHandler{
		customerRepository: customerRepo,
		firebaseAuth:       firebaseAuthClient,
		dispatcher:         dispatcher,
	}
}

// RegisterPublicRoutes registers the unauthenticated registration route
func (h *CustomerHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/customers/register", h.Register)
}

// RegisterStaffRoutes registers the staff-facing customer routes
func (h *CustomerHandler) RegisterStaffRoutes(g *echo.Group) {
	g.GET("/customers", h.GetCustomers)
	g.GET("/customers/:uid", h.GetCustomer)
}

// Register verifies a Firebase ID token, creates the customer record and
// notifies both audiences (staff "new customer", customer welcome)
func (h *CustomerHandler) Register(c echo.Context) error {
	var req models.RegisterCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify Firebase ID token
	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	email := ""
	if claim, ok := token.Claims["email"].(string); ok {
		email = claim
	}
	name := req.Name
	if name == "" {
		if displayName, ok := token.Claims["name"].(string); ok {
			name = displayName
		}
	}

	// Already registered: idempotent success, no duplicate notifications
	if existing, err := h.customerRepository.GetCustomerByUID(c.Request().Context(), token.UID); err == nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"customer": existing}})
	} else if !errors.Is(err, repositories.ErrCustomerNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	customer := &models.Customer{
		FirebaseUID: token.UID,
		Name:        name,
		Email:       email,
		Phone:       req.Phone,
	}
	if err := h.customerRepository.CreateCustomer(c.Request().Context(), customer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	event := notifications.NewCustomerRegistered{
		CustomerID: customer.FirebaseUID,
		Name:       customer.Name,
		Email:      customer.Email,
	}
	if err := h.dispatcher.Dispatch(c.Request().Context(), event); err != nil {
		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"data":    echo.Map{"customer": customer},
			"warning": "customer registered but some notifications failed",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"customer": customer}})
}

// GetCustomers returns all customers for the staff panel
func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit == 0 {
		limit = 20 // Default limit
	}

	customers, err := h.customerRepository.GetCustomers(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"customers": customers}})
}

// GetCustomer returns a single customer by Firebase UID
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	customer, err := h.customerRepository.GetCustomerByUID(c.Request().Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, repositories.ErrCustomerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Customer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"customer": customer}})
}
