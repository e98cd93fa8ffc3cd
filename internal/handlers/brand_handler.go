package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/repositories"
)

// BrandHandler handles HTTP requests related to product brands
type BrandHandler struct {
	brandRepository repositories.BrandRepository
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandRepo repositories.BrandRepository) *BrandHandler {
	return &BrandHandler{brandRepository: brandRepo}
}

// RegisterBrandRoutes registers brand-related routes
func (h *BrandHandler) RegisterBrandRoutes(g *echo.Group) {
	g.POST("/brands", h.CreateBrand)
	g.GET("/brands", h.GetBrands)
	g.PUT("/brands/:id", h.UpdateBrand)
	g.DELETE("/brands/:id", h.DeleteBrand)
}

// CreateBrand creates a new brand
func (h *BrandHandler) CreateBrand(c echo.Context) error {
	var req models.BrandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	brand := &models.Brand{Name: req.Name, LogoURL: req.LogoURL}
	if err := h.brandRepository.CreateBrand(c.Request().Context(), brand); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"brand": brand}})
}

// GetBrands retrieves all brands
func (h *BrandHandler) GetBrands(c echo.Context) error {
	brands, err := h.brandRepository.GetBrands(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"brands": brands}})
}

// UpdateBrand updates an existing brand
func (h *BrandHandler) UpdateBrand(c echo.Context) error {
	var req models.BrandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	brand := &models.Brand{Name: req.Name, LogoURL: req.LogoURL}
	if err := h.brandRepository.UpdateBrand(c.Request().Context(), c.Param("id"), brand); err != nil {
		if err.Error() == "brand not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Brand not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"brand": brand}})
}

// DeleteBrand deletes a brand
func (h *BrandHandler) DeleteBrand(c echo.Context) error {
	if err := h.brandRepository.DeleteBrand(c.Request().Context(), c.Param("id")); err != nil {
		if err.Error() == "brand not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Brand not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
