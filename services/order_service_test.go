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

func newOrderFixture(borrowDuration int) (*memOrderRepo, OrderService, primitive.ObjectID, primitive.ObjectID) {
	productID := primitive.NewObjectID()
	orderID := primitive.NewObjectID()

	orders := &memOrderRepo{orders: []*models.Order{{
		ID:              orderID,
		CustomerClerkID: "user_123",
		Products: []models.OrderItem{
			{Product: &productID, Quantity: 1, BorrowDuration: borrowDuration, Status: models.ItemConfirmed},
		},
		OrderStatus: models.OrderConfirmed,
		CreatedAt:   time.Now().Add(-time.Hour),
	}}}

	svc := NewOrderService(orders, newMemCustomerRepo(), newMemProductRepo(), zap.NewNop())
	return orders, svc, orderID, productID
}

func statusPtr(s models.ItemStatus) *models.ItemStatus { return &s }

func TestUpdateOrderDerivesReturnDateOnBorrow(t *testing.T) {
	_, svc, orderID, productID := newOrderFixture(14)

	before := time.Now().AddDate(0, 0, 14).Add(-time.Minute)
	detail, err := svc.UpdateOrder(context.Background(), orderID, UpdateOrderRequest{
		ProductID:     &productID,
		ProductStatus: statusPtr(models.ItemBorrowed),
	})
	after := time.Now().AddDate(0, 0, 14).Add(time.Minute)
	require.NoError(t, err)

	item := detail.Products[0]
	assert.Equal(t, models.ItemBorrowed, item.Status)
	require.NotNil(t, item.ReturnDate)
	assert.True(t, item.ReturnDate.After(before) && item.ReturnDate.Before(after),
		"return date should be now + borrow duration")
}

func TestUpdateOrderLeavesReturnDateWithoutDuration(t *testing.T) {
	_, svc, orderID, productID := newOrderFixture(0)

	detail, err := svc.UpdateOrder(context.Background(), orderID, UpdateOrderRequest{
		ProductID:     &productID,
		ProductStatus: statusPtr(models.ItemBorrowed),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ItemBorrowed, detail.Products[0].Status)
	assert.Nil(t, detail.Products[0].ReturnDate)
}

func TestUpdateOrderNonBorrowTransitionKeepsReturnDate(t *testing.T) {
	orders, svc, orderID, productID := newOrderFixture(14)

	existing := time.Now().AddDate(0, 0, 3)
	orders.orders[0].Products[0].ReturnDate = &existing
	orders.orders[0].Products[0].Status = models.ItemBorrowed

	detail, err := svc.UpdateOrder(context.Background(), orderID, UpdateOrderRequest{
		ProductID:     &productID,
		ProductStatus: statusPtr(models.ItemReturned),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ItemReturned, detail.Products[0].Status)
	require.NotNil(t, detail.Products[0].ReturnDate)
	assert.True(t, detail.Products[0].ReturnDate.Equal(existing))
}

func TestUpdateOrderStatusOnly(t *testing.T) {
	orders, svc, orderID, _ := newOrderFixture(7)

	status := models.OrderCompleted
	detail, err := svc.UpdateOrder(context.Background(), orderID, UpdateOrderRequest{OrderStatus: &status})
	require.NoError(t, err)

	assert.Equal(t, models.OrderCompleted, detail.OrderStatus)
	assert.Equal(t, models.OrderCompleted, orders.orders[0].OrderStatus)
	assert.Equal(t, models.ItemConfirmed, detail.Products[0].Status, "line items stay untouched")
}

func TestUpdateOrderUnknownProduct(t *testing.T) {
	_, svc, orderID, _ := newOrderFixture(7)

	otherProduct := primitive.NewObjectID()
	_, err := svc.UpdateOrder(context.Background(), orderID, UpdateOrderRequest{
		ProductID:     &otherProduct,
		ProductStatus: statusPtr(models.ItemBorrowed),
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestUpdateOrderInvalidStatus(t *testing.T) {
	_, svc, orderID, _ := newOrderFixture(7)

	status := models.OrderStatus("shipped")
	_, err := svc.UpdateOrder(context.Background(), orderID, UpdateOrderRequest{OrderStatus: &status})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}
