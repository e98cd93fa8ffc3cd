package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/repositories"
)

// CategoryHandler handles HTTP requests related to catalog categories
type CategoryHandler struct {
	categoryRepository repositories.CategoryRepository
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryRepo repositories.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepository: categoryRepo}
}

// RegisterCategoryRoutes registers category-related routes
func (h *CategoryHandler) RegisterCategoryRoutes(g *echo.Group) {
	g.POST("/categories", h.CreateCategory)
	g.GET("/categories", h.GetCategories)
	g.PUT("/categories/:id", h.UpdateCategory)
	g.DELETE("/categories/:id", h.DeleteCategory)
}

// CreateCategory creates a new category
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req models.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category := &models.Category{Name: req.Name, ImageURL: req.ImageURL}
	if err := h.categoryRepository.CreateCategory(c.Request().Context(), category); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"category": category}})
}

// GetCategories retrieves all categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryRepository.GetCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"categories": categories}})
}

// UpdateCategory updates an existing category
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req models.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category := &models.Category{Name: req.Name, ImageURL: req.ImageURL}
	if err := h.categoryRepository.UpdateCategory(c.Request().Context(), c.Param("id"), category); err != nil {
		if err.Error() == "category not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"category": category}})
}

// DeleteCategory deletes a category
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryRepository.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		if err.Error() == "category not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
