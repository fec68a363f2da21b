package controllers

import (
	"net/http"

	apperrors "bookrental-admin/errors"
	"bookrental-admin/logger"
	"bookrental-admin/models"
	"bookrental-admin/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderController struct {
	orders    services.OrderService
	validator *RequestValidator
}

func NewOrderController(orders services.OrderService) *OrderController {
	return &OrderController{orders: orders, validator: NewRequestValidator()}
}

// GetOrders lists all orders, newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.orders.ListOrders(c.Request.Context())
	if err != nil {
		logger.Error(c, "Failed to fetch orders", err)
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns an order with products populated plus its customer.
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, err := oc.validator.ParseObjectID(c, "orderId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	detail, customer, err := oc.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderDetails": detail, "customer": customer})
}

// UpdateOrder applies a partial status update: the overall order status, a
// single line item's status, or both.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, err := oc.validator.ParseObjectID(c, "orderId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var body struct {
		OrderStatus   *string `json:"orderStatus"`
		ProductID     *string `json:"productId"`
		ProductStatus *string `json:"productStatus"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}
	if body.OrderStatus == nil && (body.ProductID == nil || body.ProductStatus == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	req := services.UpdateOrderRequest{}
	if body.OrderStatus != nil {
		status := models.OrderStatus(*body.OrderStatus)
		req.OrderStatus = &status
	}
	if body.ProductID != nil && body.ProductStatus != nil {
		productID, err := primitive.ObjectIDFromHex(*body.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID format"})
			return
		}
		status := models.ItemStatus(*body.ProductStatus)
		req.ProductID = &productID
		req.ProductStatus = &status
	}

	detail, err := oc.orders.UpdateOrder(c.Request.Context(), id, req)
	if err != nil {
		logger.Error(c, "Failed to update order", err, zap.String("order_id", id.Hex()))
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
