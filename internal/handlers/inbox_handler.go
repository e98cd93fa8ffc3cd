package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/souq-admin/backend/internal/repositories"
)

// InboxHandler serves one notification inbox. The same handler backs the
// staff inbox (broadcast, with a time filter) and the customer inbox
// (recipient-scoped); filtering, read-state and bulk-delete semantics are
// identical for both audiences.
type InboxHandler struct {
	store      repositories.NotificationStore
	staffInbox bool
}

// NewStaffInboxHandler creates the handler for the staff inbox
func NewStaffInboxHandler(store repositories.NotificationStore) *InboxHandler {
	return &InboxHandler{store: store, staffInbox: true}
}

// NewCustomerInboxHandler creates the handler for the customer inbox
func NewCustomerInboxHandler(store repositories.NotificationStore) *InboxHandler {
	return &InboxHandler{store: store}
}

// RegisterInboxRoutes registers inbox routes on g
func (h *InboxHandler) RegisterInboxRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
	g.DELETE("/notifications/read", h.DeleteRead)
	g.DELETE("/notifications", h.DeleteAll)
}

// recipient resolves the audience scope of a request. The staff inbox is a
// broadcast stream with no recipient; the customer inbox is scoped to the
// authenticated shopper.
func (h *InboxHandler) recipient(c echo.Context) (string, error) {
	if h.staffInbox {
		if getStaffClaims(c) == nil {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "Staff not authenticated")
		}
		return "", nil
	}
	uid := getCustomerUID(c)
	if uid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Customer not authenticated")
	}
	return uid, nil
}

// filterFromRequest builds the view filter from the query string. Bulk
// mutation routes take the same parameters so they operate on exactly the
// visible view.
func (h *InboxHandler) filterFromRequest(c echo.Context) (repositories.InboxFilter, error) {
	uid, err := h.recipient(c)
	if err != nil {
		return repositories.InboxFilter{}, err
	}

	f := repositories.InboxFilter{
		Recipient: uid,
		Status:    c.QueryParam("status"),
		Type:      c.QueryParam("type"),
	}
	switch f.Status {
	case "", repositories.InboxStatusAll, repositories.InboxStatusUnread, repositories.InboxStatusRead:
	default:
		return repositories.InboxFilter{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid status filter")
	}

	// Time filter is a staff-inbox feature only
	if h.staffInbox {
		switch window := c.QueryParam("window"); window {
		case "", "all":
		case "today":
			f.Since = time.Now().Add(-24 * time.Hour)
		case "week":
			f.Since = time.Now().AddDate(0, 0, -7)
		case "month":
			f.Since = time.Now().AddDate(0, 0, -30)
		default:
			return repositories.InboxFilter{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid time window")
		}
	}
	return f, nil
}

// GetNotifications returns the filtered view plus the audience-wide unread count
func (h *InboxHandler) GetNotifications(c echo.Context) error {
	f, err := h.filterFromRequest(c)
	if err != nil {
		return err
	}

	notifications, err := h.store.List(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Unread count is always over the unfiltered audience collection
	unreadCount, err := h.store.UnreadCount(c.Request().Context(), f.Recipient)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": notifications,
			"unreadCount":   unreadCount,
		},
	})
}

// GetUnreadCount returns the unread notification count
func (h *InboxHandler) GetUnreadCount(c echo.Context) error {
	uid, err := h.recipient(c)
	if err != nil {
		return err
	}

	count, err := h.store.UnreadCount(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// MarkAsRead marks a single notification as read (idempotent)
func (h *InboxHandler) MarkAsRead(c echo.Context) error {
	if _, err := h.recipient(c); err != nil {
		return err
	}

	if err := h.store.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return notificationMutationError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}

// MarkAllAsRead marks every unread notification in the current view as read
func (h *InboxHandler) MarkAllAsRead(c echo.Context) error {
	f, err := h.filterFromRequest(c)
	if err != nil {
		return err
	}

	if err := h.store.MarkAllRead(c.Request().Context(), f); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}

// DeleteNotification hard-deletes a single notification
func (h *InboxHandler) DeleteNotification(c echo.Context) error {
	if _, err := h.recipient(c); err != nil {
		return err
	}

	if err := h.store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return notificationMutationError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}

// notificationMutationError maps single-notification store errors onto HTTP
// status codes.
func notificationMutationError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrInvalidNotificationID):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// DeleteRead hard-deletes every read notification in the current view
func (h *InboxHandler) DeleteRead(c echo.Context) error {
	f, err := h.filterFromRequest(c)
	if err != nil {
		return err
	}

	if err := h.store.DeleteRead(c.Request().Context(), f); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}

// DeleteAll hard-deletes every notification in the current view
func (h *InboxHandler) DeleteAll(c echo.Context) error {
	f, err := h.filterFromRequest(c)
	if err != nil {
		return err
	}

	if err := h.store.DeleteAll(c.Request().Context(), f); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}
