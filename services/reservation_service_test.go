package services

import (
	"context"
	"testing"
	"time"

	apperrors "bookrental-admin/errors"
	"bookrental-admin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newReservationFixture(t *testing.T) (*memReservationRepo, *memOrderRepo, ReservationService, primitive.ObjectID, primitive.ObjectID) {
	t.Helper()

	productID := primitive.NewObjectID()
	reservationID := primitive.NewObjectID()

	reservations := newMemReservationRepo()
	reservations.reservations[reservationID] = &models.Reservation{
		ID:        reservationID,
		UserID:    "user_123",
		ProductID: productID,
		Status:    models.ReservationPending,
	}

	orders := &memOrderRepo{}
	svc := NewReservationService(reservations, orders, newMemProductRepo(), passthroughTx{}, zap.NewNop())
	return reservations, orders, svc, reservationID, productID
}

func addOrder(orders *memOrderRepo, clerkID string, productID primitive.ObjectID, createdAt time.Time) primitive.ObjectID {
	id := primitive.NewObjectID()
	orders.orders = append(orders.orders, &models.Order{
		ID:              id,
		CustomerClerkID: clerkID,
		Products: []models.OrderItem{
			{Product: &productID, Quantity: 1, Status: models.ItemPending},
		},
		OrderStatus: models.OrderPending,
		CreatedAt:   createdAt,
	})
	return id
}

func TestUpdateStatusPropagatesToOrder(t *testing.T) {
	cases := []struct {
		status          models.ReservationStatus
		wantOrderStatus models.OrderStatus
		wantItemStatus  models.ItemStatus
	}{
		{models.ReservationPending, models.OrderPending, models.ItemPending},
		{models.ReservationApproved, models.OrderConfirmed, models.ItemConfirmed},
		{models.ReservationRejected, models.OrderCancelled, models.ItemCancelled},
		{models.ReservationCompleted, models.OrderCompleted, models.ItemReturned},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			reservations, orders, svc, reservationID, productID := newReservationFixture(t)
			addOrder(orders, "user_123", productID, time.Now())

			result, err := svc.UpdateStatus(context.Background(), reservationID, tc.status)
			require.NoError(t, err)
			require.NotNil(t, result.Order)

			assert.Equal(t, tc.status, result.Reservation.Status)
			assert.Equal(t, tc.status, reservations.reservations[reservationID].Status)
			assert.Equal(t, tc.wantOrderStatus, result.Order.OrderStatus)
			assert.Equal(t, tc.wantItemStatus, result.Order.Products[0].Status)

			saved := orders.orders[0]
			assert.Equal(t, tc.wantOrderStatus, saved.OrderStatus)
			assert.Equal(t, tc.wantItemStatus, saved.Products[0].Status)
		})
	}
}

func TestUpdateStatusPicksMostRecentOrder(t *testing.T) {
	_, orders, svc, reservationID, productID := newReservationFixture(t)

	older := addOrder(orders, "user_123", productID, time.Now().Add(-48*time.Hour))
	newer := addOrder(orders, "user_123", productID, time.Now())

	result, err := svc.UpdateStatus(context.Background(), reservationID, models.ReservationApproved)
	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.Equal(t, newer, result.Order.ID)

	for _, order := range orders.orders {
		if order.ID == older {
			assert.Equal(t, models.OrderPending, order.OrderStatus, "older order must stay untouched")
		}
	}
}

func TestUpdateStatusWithoutMatchingOrder(t *testing.T) {
	reservations, orders, svc, reservationID, _ := newReservationFixture(t)

	// Order exists for the right customer but a different product.
	addOrder(orders, "user_123", primitive.NewObjectID(), time.Now())

	result, err := svc.UpdateStatus(context.Background(), reservationID, models.ReservationApproved)
	require.NoError(t, err)

	assert.Nil(t, result.Order)
	assert.Equal(t, models.ReservationApproved, reservations.reservations[reservationID].Status)
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	_, _, svc, reservationID, _ := newReservationFixture(t)

	_, err := svc.UpdateStatus(context.Background(), reservationID, "shipped")
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestUpdateStatusUnknownReservation(t *testing.T) {
	_, _, svc, _, _ := newReservationFixture(t)

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), models.ReservationApproved)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
