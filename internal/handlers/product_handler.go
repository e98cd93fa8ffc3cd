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

// ProductHandler handles HTTP requests related to catalog products
type ProductHandler struct {
	productRepository repositories.ProductRepository
	dispatcher        orders.Dispatcher
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productRepo repositories.ProductRepository, dispatcher orders.Dispatcher) *ProductHandler {
	return &ProductHandler{
		productRepository: productRepo,
		dispatcher:        dispatcher,
	}
}

// RegisterProductRoutes registers product-related routes
func (h *ProductHandler) RegisterProductRoutes(g *echo.Group) {
	g.POST("/products", h.CreateProduct)
	g.GET("/products/:id", h.GetProduct)
	g.GET("/products", h.GetProducts)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)
}

// CreateProduct creates a new product
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product := &models.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		ImageURLs:         req.ImageURLs,
		CategoryID:        req.CategoryID,
		BrandID:           req.BrandID,
		Active:            true,
	}

	if err := h.productRepository.CreateProduct(c.Request().Context(), product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"product": product}})
}

// GetProduct retrieves a product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productRepository.GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err.Error() == "product not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"product": product}})
}

// GetProducts retrieves products, optionally by category
func (h *ProductHandler) GetProducts(c echo.Context) error {
	categoryID := c.QueryParam("category_id")
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit == 0 {
		limit = 20 // Default limit
	}

	products, err := h.productRepository.GetProducts(c.Request().Context(), categoryID, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"products": products}})
}

// UpdateProduct updates an existing product. A stock change that crosses the
// low-stock threshold from above raises a staff notification; already-low
// stock does not re-fire on every save.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req models.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	existing, err := h.productRepository.GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err.Error() == "product not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	oldStock := existing.Stock

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Stock != nil {
		existing.Stock = *req.Stock
	}
	if req.LowStockThreshold != nil {
		existing.LowStockThreshold = *req.LowStockThreshold
	}
	if req.ImageURLs != nil {
		existing.ImageURLs = req.ImageURLs
	}
	if req.CategoryID != "" {
		existing.CategoryID = req.CategoryID
	}
	if req.BrandID != "" {
		existing.BrandID = req.BrandID
	}

	if err := h.productRepository.UpdateProduct(c.Request().Context(), c.Param("id"), existing); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if crossedLowStock(oldStock, existing.Stock, existing.LowStockThreshold) {
		event := notifications.LowStockDetected{
			ProductID: existing.ID.Hex(),
			Name:      existing.Name,
			Stock:     existing.Stock,
		}
		// Best effort; the product update already succeeded
		if err := h.dispatcher.Dispatch(c.Request().Context(), event); err != nil {
			c.Logger().Warnf("low stock notification failed: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"product": existing}})
}

// crossedLowStock reports whether a stock change moved the product from
// above the threshold to at-or-below it.
func crossedLowStock(oldStock, newStock, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	return oldStock > threshold && newStock <= threshold
}

// DeleteProduct deletes a product
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productRepository.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		if err.Error() == "product not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
