package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/souq-admin/backend/internal/models"
)

type fakeStore struct {
	created []*models.Notification
	err     error
}

func (f *fakeStore) Create(_ context.Context, n *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}

func statusEvent(newStatus models.OrderStatus) OrderStatusChanged {
	return OrderStatusChanged{
		OrderID:     "65f000000000000000000001",
		OrderNumber: "1001",
		CustomerID:  "C1",
		OldStatus:   models.OrderStatusReceived,
		NewStatus:   newStatus,
		OldPayment:  models.PaymentPending,
		NewPayment:  models.PaymentPending,
	}
}

func countByTarget(writes []Write) (staff, customer int) {
	for _, w := range writes {
		switch w.Target {
		case TargetStaff:
			staff++
		case TargetCustomer:
			customer++
		}
	}
	return staff, customer
}

func TestBuildWritesStatusChangeFanOut(t *testing.T) {
	tests := []struct {
		status       models.OrderStatus
		wantStaff    int
		wantCustomer int
		wantType     string
	}{
		{models.OrderStatusReceived, 0, 1, models.CustomerNotifGeneral},
		{models.OrderStatusUnderReview, 0, 1, models.CustomerNotifGeneral},
		{models.OrderStatusPreparing, 0, 1, models.CustomerNotifOrderProcessing},
		{models.OrderStatusShipped, 0, 1, models.CustomerNotifOrderShipped},
		{models.OrderStatusArrivedHub, 0, 1, models.CustomerNotifGeneral},
		{models.OrderStatusOutForDelivery, 0, 1, models.CustomerNotifGeneral},
		{models.OrderStatusDelivered, 1, 1, models.CustomerNotifOrderDelivered},
		{models.OrderStatusCancelled, 1, 1, models.CustomerNotifOrderCancelled},
		{models.OrderStatusDeliveryFailed, 0, 1, models.CustomerNotifGeneral},
		{models.OrderStatusAwaitingPayment, 0, 1, models.CustomerNotifGeneral},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			writes := BuildWrites(statusEvent(tt.status))
			require.LessOrEqual(t, len(writes), 2)

			staff, customer := countByTarget(writes)
			assert.Equal(t, tt.wantStaff, staff)
			assert.Equal(t, tt.wantCustomer, customer)

			for _, w := range writes {
				if w.Target == TargetCustomer {
					assert.Equal(t, tt.wantType, w.Type)
					assert.Equal(t, "C1", w.Recipient)
					assert.True(t, w.Message.IsBilingual())
				}
			}
		})
	}
}

func TestBuildWritesShippedIncludesTracking(t *testing.T) {
	event := statusEvent(models.OrderStatusShipped)
	event.TrackingNumber = "TRK1"

	writes := BuildWrites(event)
	require.Len(t, writes, 1)

	w := writes[0]
	assert.Equal(t, TargetCustomer, w.Target)
	assert.Equal(t, models.CustomerNotifOrderShipped, w.Type)
	assert.Contains(t, w.Message.EN, "TRK1")
	assert.Contains(t, w.Message.AR, "TRK1")
	assert.Equal(t, "TRK1", w.Metadata["tracking_number"])
}

func TestBuildWritesCancelledIncludesReason(t *testing.T) {
	event := statusEvent(models.OrderStatusCancelled)
	event.OldStatus = models.OrderStatusPreparing
	event.CancelReason = "out of stock"

	writes := BuildWrites(event)
	require.Len(t, writes, 2)

	staffWrite, customerWrite := writes[0], writes[1]
	require.Equal(t, TargetStaff, staffWrite.Target)
	assert.Equal(t, models.StaffNotifOrder, staffWrite.Type)
	assert.Contains(t, staffWrite.Message.Text, "out of stock")
	assert.False(t, staffWrite.Message.IsBilingual())

	require.Equal(t, TargetCustomer, customerWrite.Target)
	assert.Equal(t, models.CustomerNotifOrderCancelled, customerWrite.Type)
	assert.Contains(t, customerWrite.Message.EN, "out of stock")
}

func TestGeneralMessageAppendsPaymentConfirmedClause(t *testing.T) {
	event := statusEvent(models.OrderStatusUnderReview)
	event.NewPayment = models.PaymentPaid

	writes := BuildWrites(event)
	require.Len(t, writes, 1)

	msg := writes[0].Message
	assert.Contains(t, msg.EN, "under review")
	assert.Contains(t, msg.EN, "payment has been confirmed")
	// The status clause always comes first
	assert.Less(t, strings.Index(msg.EN, "under review"), strings.Index(msg.EN, "payment has been confirmed"))
}

func TestGeneralMessageWithoutPaymentChange(t *testing.T) {
	// Already paid before the transition: no clause
	event := statusEvent(models.OrderStatusUnderReview)
	event.OldPayment = models.PaymentPaid
	event.NewPayment = models.PaymentPaid

	writes := BuildWrites(event)
	require.Len(t, writes, 1)
	assert.NotContains(t, writes[0].Message.EN, "payment has been confirmed")
}

func TestBuildWritesNewOrderPlaced(t *testing.T) {
	writes := BuildWrites(NewOrderPlaced{
		OrderID:     "65f000000000000000000002",
		OrderNumber: "1002",
		CustomerID:  "C2",
		Total:       12345.5,
	})
	require.Len(t, writes, 2)

	staffWrite := writes[0]
	assert.Equal(t, TargetStaff, staffWrite.Target)
	assert.Equal(t, models.StaffNotifOrder, staffWrite.Type)
	// Amounts carry locale-aware thousands separators at write time
	assert.Contains(t, staffWrite.Message.Text, "12,345.50")

	customerWrite := writes[1]
	assert.Equal(t, models.CustomerNotifOrderConfirmed, customerWrite.Type)
	assert.Equal(t, "C2", customerWrite.Recipient)
}

func TestBuildWritesStaffOnlyEvents(t *testing.T) {
	writes := BuildWrites(NewSupportMessage{MessageID: "m1", CustomerID: "C1", Subject: "broken item"})
	require.Len(t, writes, 1)
	assert.Equal(t, TargetStaff, writes[0].Target)
	assert.Equal(t, models.StaffNotifSupport, writes[0].Type)

	writes = BuildWrites(LowStockDetected{ProductID: "p1", Name: "Mug", Stock: 3})
	require.Len(t, writes, 1)
	assert.Equal(t, models.StaffNotifProduct, writes[0].Type)
	assert.Contains(t, writes[0].Message.Text, "3 left")
}

func TestBuildWritesNewCustomerRegistered(t *testing.T) {
	writes := BuildWrites(NewCustomerRegistered{CustomerID: "C3", Name: "Sara", Email: "sara@example.com"})
	require.Len(t, writes, 2)
	assert.Equal(t, models.StaffNotifCustomer, writes[0].Type)
	assert.Equal(t, models.CustomerNotifWelcome, writes[1].Type)
	assert.Equal(t, "C3", writes[1].Recipient)
}

func TestBuildWritesUnknownEvent(t *testing.T) {
	assert.Nil(t, BuildWrites(struct{}{}))
}

func TestDispatchIndependentFailure(t *testing.T) {
	staff := &fakeStore{err: errors.New("write timeout")}
	customer := &fakeStore{}
	d := NewDispatcher(staff, customer)

	event := statusEvent(models.OrderStatusCancelled)
	err := d.Dispatch(context.Background(), event)

	// The staff failure is reported, but the customer write went through
	var partial *PartialFailure
	require.ErrorAs(t, err, &partial)
	require.Len(t, partial.Errs, 1)
	assert.Empty(t, staff.created)
	require.Len(t, customer.created, 1)
	assert.Equal(t, models.CustomerNotifOrderCancelled, customer.created[0].Type)
	assert.False(t, customer.created[0].CreatedAt.IsZero())
}

func TestDispatchSkipsCustomerWriteWithoutRecipient(t *testing.T) {
	staff := &fakeStore{}
	customer := &fakeStore{}
	d := NewDispatcher(staff, customer)

	event := statusEvent(models.OrderStatusCancelled)
	event.CustomerID = ""

	require.NoError(t, d.Dispatch(context.Background(), event))
	assert.Len(t, staff.created, 1)
	assert.Empty(t, customer.created)
}

func TestDispatchSuccess(t *testing.T) {
	staff := &fakeStore{}
	customer := &fakeStore{}
	d := NewDispatcher(staff, customer)

	require.NoError(t, d.Dispatch(context.Background(), statusEvent(models.OrderStatusShipped)))
	assert.Empty(t, staff.created)
	require.Len(t, customer.created, 1)
	assert.Equal(t, "C1", customer.created[0].Recipient)
	assert.Equal(t, "/orders/65f000000000000000000001", customer.created[0].TargetURL)
}
