package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/repositories"
)

// memNotificationStore is an in-memory NotificationStore with the same
// filter, read-state and bulk-delete semantics as the Mongo-backed one.
type memNotificationStore struct {
	items []*models.Notification
}

func (s *memNotificationStore) matches(n *models.Notification, f repositories.InboxFilter) bool {
	if f.Recipient != "" && n.Recipient != f.Recipient {
		return false
	}
	switch f.Status {
	case repositories.InboxStatusUnread:
		if n.Read {
			return false
		}
	case repositories.InboxStatusRead:
		if !n.Read {
			return false
		}
	}
	if f.Type != "" && f.Type != "all" && n.Type != f.Type {
		return false
	}
	if !f.Since.IsZero() && n.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}

func (s *memNotificationStore) Create(_ context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	s.items = append(s.items, n)
	return nil
}

func (s *memNotificationStore) List(_ context.Context, f repositories.InboxFilter) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range s.items {
		if s.matches(n, f) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (s *memNotificationStore) UnreadCount(_ context.Context, recipient string) (int64, error) {
	var count int64
	for _, n := range s.items {
		if !n.Read && (recipient == "" || n.Recipient == recipient) {
			count++
		}
	}
	return count, nil
}

func (s *memNotificationStore) MarkRead(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %q", repositories.ErrInvalidNotificationID, id)
	}
	for _, n := range s.items {
		if n.ID.Hex() == id {
			n.Read = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (s *memNotificationStore) MarkAllRead(_ context.Context, f repositories.InboxFilter) error {
	for _, n := range s.items {
		if !n.Read && s.matches(n, f) {
			n.Read = true
		}
	}
	return nil
}

func (s *memNotificationStore) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %q", repositories.ErrInvalidNotificationID, id)
	}
	for i, n := range s.items {
		if n.ID.Hex() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (s *memNotificationStore) DeleteRead(_ context.Context, f repositories.InboxFilter) error {
	kept := s.items[:0]
	for _, n := range s.items {
		if n.Read && s.matches(n, f) {
			continue
		}
		kept = append(kept, n)
	}
	s.items = kept
	return nil
}

func (s *memNotificationStore) DeleteAll(_ context.Context, f repositories.InboxFilter) error {
	kept := s.items[:0]
	for _, n := range s.items {
		if s.matches(n, f) {
			continue
		}
		kept = append(kept, n)
	}
	s.items = kept
	return nil
}

func seedStaffInbox(s *memNotificationStore) {
	now := time.Now()
	seed := []*models.Notification{
		{Type: models.StaffNotifOrder, Title: "New order", Read: true, CreatedAt: now.Add(-48 * time.Hour)},
		{Type: models.StaffNotifOrder, Title: "Order delivered", Read: false, CreatedAt: now.Add(-2 * time.Hour)},
		{Type: models.StaffNotifCustomer, Title: "New customer", Read: true, CreatedAt: now.Add(-1 * time.Hour)},
		{Type: models.StaffNotifSupport, Title: "New support message", Read: false, CreatedAt: now.Add(-30 * time.Minute)},
		{Type: models.StaffNotifProduct, Title: "Low stock", Read: true, CreatedAt: now.Add(-10 * time.Minute)},
	}
	for _, n := range seed {
		n.ID = primitive.NewObjectID()
		s.items = append(s.items, n)
	}
}

func staffContext(e *echo.Echo, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("staff", &models.JwtCustomClaims{UserID: 1, Email: "admin@example.com", Role: models.RoleAdmin})
	return c, rec
}

func customerContext(e *echo.Echo, method, target, uid string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set("firebaseUID", uid)
	}
	return c, rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	return data
}

func TestStaffInboxListWithFilters(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	seedStaffInbox(store)
	h := NewStaffInboxHandler(store)

	c, rec := staffContext(e, http.MethodGet, "/notifications?status=unread&type=order")
	require.NoError(t, h.GetNotifications(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	list, ok := data["notifications"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)
	// Unread count ignores the view filter: two unread in the whole inbox
	assert.EqualValues(t, 2, data["unreadCount"])
}

func TestStaffInboxTimeWindow(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	seedStaffInbox(store)
	h := NewStaffInboxHandler(store)

	// One seeded item is 48h old; "today" keeps the other four
	c, rec := staffContext(e, http.MethodGet, "/notifications?window=today")
	require.NoError(t, h.GetNotifications(c))
	data := decodeData(t, rec)
	assert.Len(t, data["notifications"].([]any), 4)

	c, _ = staffContext(e, http.MethodGet, "/notifications?window=yesterday")
	err := h.GetNotifications(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCustomerInboxIgnoresTimeWindow(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	old := &models.Notification{
		ID:        primitive.NewObjectID(),
		Recipient: "C1",
		Type:      models.CustomerNotifGeneral,
		CreatedAt: time.Now().AddDate(0, -2, 0),
	}
	store.items = append(store.items, old)
	h := NewCustomerInboxHandler(store)

	// The window parameter is a staff-inbox feature; customers get all history
	c, rec := customerContext(e, http.MethodGet, "/notifications?window=today", "C1")
	require.NoError(t, h.GetNotifications(c))
	data := decodeData(t, rec)
	assert.Len(t, data["notifications"].([]any), 1)
}

func TestCustomerInboxScopedToRecipient(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	for _, uid := range []string{"C1", "C1", "C2"} {
		store.items = append(store.items, &models.Notification{
			ID:        primitive.NewObjectID(),
			Recipient: uid,
			Type:      models.CustomerNotifGeneral,
			CreatedAt: time.Now(),
		})
	}
	h := NewCustomerInboxHandler(store)

	c, rec := customerContext(e, http.MethodGet, "/notifications", "C1")
	require.NoError(t, h.GetNotifications(c))
	data := decodeData(t, rec)
	assert.Len(t, data["notifications"].([]any), 2)
	assert.EqualValues(t, 2, data["unreadCount"])
}

func TestCustomerInboxRequiresAuth(t *testing.T) {
	e := echo.New()
	h := NewCustomerInboxHandler(&memNotificationStore{})

	c, _ := customerContext(e, http.MethodGet, "/notifications", "")
	err := h.GetNotifications(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestInvalidStatusFilter(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	h := NewStaffInboxHandler(store)

	c, _ := staffContext(e, http.MethodGet, "/notifications?status=archived")
	err := h.GetNotifications(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestMarkAsReadIsIdempotent(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	seedStaffInbox(store)
	h := NewStaffInboxHandler(store)
	id := store.items[1].ID.Hex()

	for i := 0; i < 2; i++ {
		c, rec := staffContext(e, http.MethodPut, "/notifications/"+id+"/read")
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, h.MarkAsRead(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.True(t, store.items[1].Read)
}

func TestMarkAsReadErrorMapping(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	seedStaffInbox(store)
	h := NewStaffInboxHandler(store)

	// Malformed ID is a client error, not a server failure
	c, _ := staffContext(e, http.MethodPut, "/notifications/nope/read")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	err := h.MarkAsRead(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	// Well-formed but unknown ID is a 404
	missing := primitive.NewObjectID().Hex()
	c, _ = staffContext(e, http.MethodPut, "/notifications/"+missing+"/read")
	c.SetParamNames("id")
	c.SetParamValues(missing)
	err = h.MarkAsRead(c)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestDeleteNotificationErrorMapping(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	seedStaffInbox(store)
	h := NewStaffInboxHandler(store)

	c, _ := staffContext(e, http.MethodDelete, "/notifications/nope")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	err := h.DeleteNotification(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	missing := primitive.NewObjectID().Hex()
	c, _ = staffContext(e, http.MethodDelete, "/notifications/"+missing)
	c.SetParamNames("id")
	c.SetParamValues(missing)
	err = h.DeleteNotification(c)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	require.Len(t, store.items, 5)
}

func TestDeleteReadThenMarkAllRead(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	seedStaffInbox(store) // 5 items: 3 read, 2 unread
	h := NewStaffInboxHandler(store)

	c, _ := staffContext(e, http.MethodDelete, "/notifications/read")
	require.NoError(t, h.DeleteRead(c))
	require.Len(t, store.items, 2)

	c, _ = staffContext(e, http.MethodPut, "/notifications/read-all")
	require.NoError(t, h.MarkAllAsRead(c))
	require.Len(t, store.items, 2)
	for _, n := range store.items {
		assert.True(t, n.Read)
	}
}

func TestMarkAllReadScopedToFilteredView(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	seedStaffInbox(store)
	h := NewStaffInboxHandler(store)

	c, _ := staffContext(e, http.MethodPut, "/notifications/read-all?type=order")
	require.NoError(t, h.MarkAllAsRead(c))

	// The unread support notification sits outside the filtered view
	for _, n := range store.items {
		if n.Type == models.StaffNotifSupport {
			assert.False(t, n.Read)
		}
		if n.Type == models.StaffNotifOrder {
			assert.True(t, n.Read)
		}
	}
}

func TestDeleteAllScopedToFilteredView(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	seedStaffInbox(store)
	h := NewStaffInboxHandler(store)

	c, _ := staffContext(e, http.MethodDelete, "/notifications?type=order")
	require.NoError(t, h.DeleteAll(c))

	require.Len(t, store.items, 3)
	for _, n := range store.items {
		assert.NotEqual(t, models.StaffNotifOrder, n.Type)
	}
}

func TestGetUnreadCount(t *testing.T) {
	e := echo.New()
	store := &memNotificationStore{}
	seedStaffInbox(store)
	h := NewStaffInboxHandler(store)

	c, rec := staffContext(e, http.MethodGet, "/notifications/unread-count")
	require.NoError(t, h.GetUnreadCount(c))
	data := decodeData(t, rec)
	assert.EqualValues(t, 2, data["count"])
}
