package controllers

import (
	"net/http"

	apperrors "bookrental-admin/errors"
	"bookrental-admin/logger"
	"bookrental-admin/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkout services.CheckoutService
}

func NewCheckoutController(checkout services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// CreateCheckoutSession turns the storefront cart into a hosted checkout
// session.
func (cc *CheckoutController) CreateCheckoutSession(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough data to checkout"})
		return
	}

	session, err := cc.checkout.CreateSession(c.Request.Context(), req)
	if err != nil {
		logger.Error(c, "Failed to create checkout session", err)
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
