package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapReservationStatus(t *testing.T) {
	cases := []struct {
		reservation ReservationStatus
		order       OrderStatus
		item        ItemStatus
	}{
		{ReservationPending, OrderPending, ItemPending},
		{ReservationApproved, OrderConfirmed, ItemConfirmed},
		{ReservationRejected, OrderCancelled, ItemCancelled},
		{ReservationCompleted, OrderCompleted, ItemReturned},
	}

	for _, tc := range cases {
		t.Run(string(tc.reservation), func(t *testing.T) {
			order, item := MapReservationStatus(tc.reservation)
			assert.Equal(t, tc.order, order)
			assert.Equal(t, tc.item, item)
		})
	}
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, OrderConfirmed.Valid())
	assert.False(t, OrderStatus("shipped").Valid())

	assert.True(t, ItemBorrowed.Valid())
	assert.True(t, ItemCancelled.Valid())
	assert.False(t, ItemStatus("lost").Valid())

	assert.True(t, ReservationApproved.Valid())
	assert.False(t, ReservationStatus("on-hold").Valid())
}
