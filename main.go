package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookrental-admin/config"
	"bookrental-admin/controllers"
	"bookrental-admin/database"
	"bookrental-admin/logger"
	"bookrental-admin/middleware"
	"bookrental-admin/repository"
	"bookrental-admin/routes"
	"bookrental-admin/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer zap.L().Sync()

	// --- 1. Infrastructure ---

	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.MongoDB); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	redisClient := database.NewRedisClient(cfg.RedisURL)
	transactor := database.NewTransactor(database.MongoClient)

	// --- 2. Dependency injection ---

	collectionRepo := repository.NewCollectionRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	reservationRepo := repository.NewReservationRepository(database.DB)
	customerRepo := repository.NewCustomerRepository(database.DB)

	stripeService := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey)
	eventStore := services.NewRedisIdempotencyStore(
		redisClient,
		time.Duration(cfg.WebhookEventTTLDays)*24*time.Hour,
	)

	catalogService := services.NewCatalogService(collectionRepo, productRepo, transactor, zap.L())
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo, zap.L())
	reservationService := services.NewReservationService(reservationRepo, orderRepo, productRepo, transactor, zap.L())
	checkoutService := services.NewCheckoutService(
		stripeService,
		cfg.Currency,
		cfg.StoreURL,
		cfg.ShippingRates,
		cfg.AllowedShipCountry,
		zap.L(),
	)
	webhookService := services.NewWebhookService(stripeService, eventStore, orderRepo, customerRepo, transactor, zap.L())

	cacheManager := controllers.NewCacheManager(redisClient)

	collectionController := controllers.NewCollectionController(catalogService)
	productController := controllers.NewProductController(catalogService, cacheManager)
	orderController := controllers.NewOrderController(orderService)
	reservationController := controllers.NewReservationController(reservationService)
	checkoutController := controllers.NewCheckoutController(checkoutService)
	webhookController := controllers.NewWebhookController(stripeService, webhookService)

	// --- 3. HTTP server & middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(logger.RequestLogger())
	r.Use(middleware.RateLimit())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(
		r,
		collectionController,
		productController,
		orderController,
		reservationController,
		checkoutController,
		webhookController,
		middleware.RequireAuth(cfg.JWTSecret),
	)

	// --- 4. Graceful shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Admin API starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down admin API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		zap.L().Error("Failed to close MongoDB", zap.Error(err))
	}

	zap.L().Info("Admin API stopped gracefully")
}
