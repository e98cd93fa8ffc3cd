package handlers

import (
	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getStaffClaims returns the authenticated staff claims, or nil when the
// request did not pass the staff middleware.
func getStaffClaims(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("staff").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getCustomerUID returns the authenticated customer's Firebase UID, or ""
// when the request did not pass the customer middleware.
func getCustomerUID(c echo.Context) string {
	uid, ok := c.Get("firebaseUID").(string)
	if !ok {
		return ""
	}
	return uid
}
