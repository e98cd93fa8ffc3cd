package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	assert.Len(t, AllOrderStatuses, 10)
	for _, s := range AllOrderStatuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("shipped").Valid()) // statuses are case-sensitive
	assert.False(t, OrderStatus("Returned").Valid())
}

func TestPaymentStatusValid(t *testing.T) {
	for _, p := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, PaymentStatus("").Valid())
	assert.False(t, PaymentStatus("Paid").Valid())
}
