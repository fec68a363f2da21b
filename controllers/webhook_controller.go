package controllers

import (
	"net/http"

	apperrors "bookrental-admin/errors"
	"bookrental-admin/logger"
	"bookrental-admin/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WebhookController struct {
	stripe  *services.StripeService
	handler services.WebhookService
}

func NewWebhookController(stripe *services.StripeService, handler services.WebhookService) *WebhookController {
	return &WebhookController{stripe: stripe, handler: handler}
}

// StripeWebhook verifies and dispatches Stripe webhook events. A failed
// signature verification is answered with 500 so the provider retries the
// delivery.
func (wc *WebhookController) StripeWebhook(c *gin.Context) {
	event, err := wc.stripe.ParseWebhook(c.Request)
	if err != nil {
		logger.Warn(c, "Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Webhook verification failed"})
		return
	}

	logger.Info(c, "Processing Stripe webhook",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	if err := wc.handler.HandleEvent(c.Request.Context(), event); err != nil {
		logger.Error(c, "Webhook handler failed", err, zap.String("event_id", event.ID))
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
