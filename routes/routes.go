package routes

import (
	"net/http"

	"bookrental-admin/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every API route onto the engine. Mutating catalog,
// order and reservation endpoints sit behind the auth middleware; checkout
// and the Stripe webhook stay open since they are called by the storefront
// and by Stripe respectively.
func RegisterRoutes(
	r *gin.Engine,
	collectionController *controllers.CollectionController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
	reservationController *controllers.ReservationController,
	checkoutController *controllers.CheckoutController,
	webhookController *controllers.WebhookController,
	requireAuth gin.HandlerFunc,
) {
	api := r.Group("/api")

	collectionRoutes := api.Group("/collections")
	{
		collectionRoutes.GET("", collectionController.GetCollections)
		collectionRoutes.POST("", requireAuth, collectionController.CreateCollection)
		collectionRoutes.GET("/:collectionId", collectionController.GetCollection)
		collectionRoutes.POST("/:collectionId", requireAuth, collectionController.UpdateCollection)
		collectionRoutes.DELETE("/:collectionId", requireAuth, collectionController.DeleteCollection)
	}

	productRoutes := api.Group("/products")
	{
		productRoutes.GET("", productController.GetProducts)
		productRoutes.POST("", requireAuth, productController.CreateProduct)
		productRoutes.GET("/:productId", productController.GetProduct)
		productRoutes.POST("/:productId", requireAuth, productController.UpdateProduct)
		productRoutes.DELETE("/:productId", requireAuth, productController.DeleteProduct)
		productRoutes.GET("/:productId/related", productController.GetRelatedProducts)
	}

	orderRoutes := api.Group("/orders")
	{
		orderRoutes.GET("", orderController.GetOrders)
		orderRoutes.GET("/:orderId", orderController.GetOrder)
		orderRoutes.PATCH("/:orderId", requireAuth, orderController.UpdateOrder)
	}

	reservationRoutes := api.Group("/reservations")
	{
		reservationRoutes.GET("", reservationController.GetReservations)
		reservationRoutes.GET("/:reservationId", reservationController.GetReservation)
		reservationRoutes.PATCH("/:reservationId", requireAuth, reservationController.UpdateReservation)
	}

	api.POST("/checkout", checkoutController.CreateCheckoutSession)
	api.POST("/webhooks", webhookController.StripeWebhook)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
}
