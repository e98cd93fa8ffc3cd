package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/notifications"
)

type fakeOrderStore struct {
	order     *models.Order
	getErr    error
	updateErr error
	updates   []LifecycleUpdate
}

func (f *fakeOrderStore) GetOrderByID(_ context.Context, _ string) (*models.Order, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	o := *f.order
	return &o, nil
}

func (f *fakeOrderStore) UpdateLifecycle(_ context.Context, _ string, update LifecycleUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, update)
	return nil
}

type fakeDispatcher struct {
	events []any
	err    error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, event any) error {
	f.events = append(f.events, event)
	return f.err
}

func storedOrder() *models.Order {
	return &models.Order{
		OrderNumber:    "1001",
		CustomerID:     "C1",
		Status:         models.OrderStatusReceived,
		PaymentStatus:  models.PaymentPending,
		TrackingNumber: "",
	}
}

func TestApplyTransitionEmitsEvent(t *testing.T) {
	store := &fakeOrderStore{order: storedOrder()}
	dispatcher := &fakeDispatcher{}
	l := NewLifecycle(store, dispatcher)

	err := l.ApplyTransition(context.Background(), "o1", Transition{
		Status:         models.OrderStatusShipped,
		PaymentStatus:  models.PaymentPaid,
		TrackingNumber: "TRK1",
	})
	require.NoError(t, err)

	require.Len(t, store.updates, 1)
	update := store.updates[0]
	assert.Equal(t, models.OrderStatusShipped, update.Status)
	assert.Equal(t, models.PaymentPaid, update.PaymentStatus)
	assert.Equal(t, "TRK1", update.TrackingNumber)
	assert.False(t, update.UpdatedAt.IsZero())

	require.Len(t, dispatcher.events, 1)
	event, ok := dispatcher.events[0].(notifications.OrderStatusChanged)
	require.True(t, ok)
	assert.Equal(t, "o1", event.OrderID)
	assert.Equal(t, "1001", event.OrderNumber)
	assert.Equal(t, "C1", event.CustomerID)
	assert.Equal(t, models.OrderStatusReceived, event.OldStatus)
	assert.Equal(t, models.OrderStatusShipped, event.NewStatus)
	assert.Equal(t, models.PaymentPending, event.OldPayment)
	assert.Equal(t, models.PaymentPaid, event.NewPayment)
	assert.Equal(t, "TRK1", event.TrackingNumber)
	assert.True(t, event.PaymentConfirmed())
}

func TestApplyTransitionNoOp(t *testing.T) {
	order := storedOrder()
	order.Status = models.OrderStatusShipped
	order.TrackingNumber = "TRK1"
	store := &fakeOrderStore{order: order}
	dispatcher := &fakeDispatcher{}
	l := NewLifecycle(store, dispatcher)

	// Re-saving the same status, payment status and tracking number writes
	// nothing and notifies nobody.
	err := l.ApplyTransition(context.Background(), "o1", Transition{
		Status:         models.OrderStatusShipped,
		PaymentStatus:  models.PaymentPending,
		TrackingNumber: "TRK1",
	})
	require.NoError(t, err)
	assert.Empty(t, store.updates)
	assert.Empty(t, dispatcher.events)
}

func TestApplyTransitionEmptyTrackingInheritsStored(t *testing.T) {
	order := storedOrder()
	order.Status = models.OrderStatusShipped
	order.TrackingNumber = "TRK1"
	store := &fakeOrderStore{order: order}
	dispatcher := &fakeDispatcher{}
	l := NewLifecycle(store, dispatcher)

	// An empty tracking number on the request does not clear the stored one,
	// so this save changes nothing.
	err := l.ApplyTransition(context.Background(), "o1", Transition{
		Status:        models.OrderStatusShipped,
		PaymentStatus: models.PaymentPending,
	})
	require.NoError(t, err)
	assert.Empty(t, store.updates)
	assert.Empty(t, dispatcher.events)
}

func TestApplyTransitionAnyStatusToAnyStatus(t *testing.T) {
	// The machine is permissive: Delivered back to Received is allowed.
	order := storedOrder()
	order.Status = models.OrderStatusDelivered
	store := &fakeOrderStore{order: order}
	dispatcher := &fakeDispatcher{}
	l := NewLifecycle(store, dispatcher)

	err := l.ApplyTransition(context.Background(), "o1", Transition{
		Status:        models.OrderStatusReceived,
		PaymentStatus: models.PaymentPending,
	})
	require.NoError(t, err)
	require.Len(t, store.updates, 1)
	require.Len(t, dispatcher.events, 1)
}

func TestApplyTransitionInvalidStatus(t *testing.T) {
	store := &fakeOrderStore{order: storedOrder()}
	dispatcher := &fakeDispatcher{}
	l := NewLifecycle(store, dispatcher)

	err := l.ApplyTransition(context.Background(), "o1", Transition{
		Status:        "Teleported",
		PaymentStatus: models.PaymentPending,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	err = l.ApplyTransition(context.Background(), "o1", Transition{
		Status:        models.OrderStatusShipped,
		PaymentStatus: "maybe",
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)

	assert.Empty(t, store.updates)
	assert.Empty(t, dispatcher.events)
}

func TestApplyTransitionPersistenceFailureEmitsNothing(t *testing.T) {
	store := &fakeOrderStore{order: storedOrder(), updateErr: errors.New("write conflict")}
	dispatcher := &fakeDispatcher{}
	l := NewLifecycle(store, dispatcher)

	err := l.ApplyTransition(context.Background(), "o1", Transition{
		Status:        models.OrderStatusPreparing,
		PaymentStatus: models.PaymentPending,
	})
	require.Error(t, err)
	assert.Empty(t, dispatcher.events)
}

func TestApplyTransitionOrderNotFound(t *testing.T) {
	store := &fakeOrderStore{getErr: ErrOrderNotFound}
	l := NewLifecycle(store, &fakeDispatcher{})

	err := l.ApplyTransition(context.Background(), "missing", Transition{
		Status:        models.OrderStatusPreparing,
		PaymentStatus: models.PaymentPending,
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestApplyTransitionDispatchFailureKeepsUpdate(t *testing.T) {
	store := &fakeOrderStore{order: storedOrder()}
	dispatcher := &fakeDispatcher{err: &notifications.PartialFailure{Errs: []error{errors.New("staff write: timeout")}}}
	l := NewLifecycle(store, dispatcher)

	err := l.ApplyTransition(context.Background(), "o1", Transition{
		Status:        models.OrderStatusCancelled,
		PaymentStatus: models.PaymentPending,
		CancelReason:  "customer request",
	})

	// The persisted transition stands even though dispatch failed.
	var partial *notifications.PartialFailure
	require.ErrorAs(t, err, &partial)
	require.Len(t, store.updates, 1)
	assert.Equal(t, "customer request", store.updates[0].CancelReason)
}

func TestApplyTransitionCancelReasonOnlyOnCancelled(t *testing.T) {
	store := &fakeOrderStore{order: storedOrder()}
	dispatcher := &fakeDispatcher{}
	l := NewLifecycle(store, dispatcher)

	err := l.ApplyTransition(context.Background(), "o1", Transition{
		Status:        models.OrderStatusPreparing,
		PaymentStatus: models.PaymentPending,
		CancelReason:  "should be ignored",
	})
	require.NoError(t, err)
	require.Len(t, store.updates, 1)
	assert.Empty(t, store.updates[0].CancelReason)
}
