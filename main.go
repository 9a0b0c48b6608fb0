package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"farmmarket/internal/config"
	"farmmarket/internal/database"
	"farmmarket/internal/handlers"
	"farmmarket/internal/middleware"
	"farmmarket/internal/orders"
	"farmmarket/internal/payments"
	"farmmarket/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureProduceIndexes(db); err != nil {
		log.Printf("produce index warning: %v", err)
	}

	orderStore := store.NewOrderStore(db)
	produceStore := store.NewProduceStore(db)

	engine := orders.NewEngine(orderStore, produceStore, cfg.DeliveryEstimateDays)
	gateway := payments.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	adapter := payments.NewAdapter(orderStore, gateway, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	throttle := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		throttle = middleware.RateLimit(rdb, cfg.PaymentRateLimit, cfg.PaymentRateWindow)
		log.Println("rate limiting enabled via redis:", cfg.RedisAddr)
	}

	r := gin.Default()

	api := r.Group("/api")

	api.GET("/produce", handlers.ListProduce(produceStore))
	api.GET("/produce/:id", handlers.GetProduce(produceStore))
	api.POST("/produce", middleware.AuthGuard(cfg.JWTSecret, "farmer"), handlers.CreateProduce(produceStore))

	orderRoutes := api.Group("/orders")
	{
		orderRoutes.POST("", middleware.AuthGuard(cfg.JWTSecret, "buyer"), throttle, handlers.PlaceOrder(engine))
		orderRoutes.GET("/buyer", middleware.AuthGuard(cfg.JWTSecret, "buyer"), handlers.GetBuyerOrders(engine))
		orderRoutes.GET("/farmer", middleware.AuthGuard(cfg.JWTSecret, "farmer"), handlers.GetFarmerOrders(engine))
		orderRoutes.GET("/:id", middleware.AuthGuard(cfg.JWTSecret), handlers.GetOrder(engine))
		orderRoutes.PATCH("/:id/status", middleware.AuthGuard(cfg.JWTSecret, "farmer"), handlers.UpdateOrderStatus(engine))
		orderRoutes.PATCH("/:id/cancel", middleware.AuthGuard(cfg.JWTSecret, "buyer"), handlers.CancelOrder(engine))
		orderRoutes.PATCH("/:id/tracking", middleware.AuthGuard(cfg.JWTSecret, "farmer"), handlers.UpdateTracking(engine))
		orderRoutes.PATCH("/:id/payout", middleware.AuthGuard(cfg.JWTSecret, "admin"), handlers.MarkFarmerPaid(engine))
	}

	paymentRoutes := api.Group("/payments")
	paymentRoutes.Use(middleware.AuthGuard(cfg.JWTSecret, "buyer"), throttle)
	{
		paymentRoutes.POST("/create-order", handlers.CreatePaymentOrder(adapter))
		paymentRoutes.POST("/verify", handlers.VerifyPayment(adapter))
		paymentRoutes.POST("/cod", handlers.SelectCOD(adapter))
	}

	api.DELETE("/admin/accounts/:id/orders", middleware.AuthGuard(cfg.JWTSecret, "admin"), handlers.PurgeAccountOrders(orderStore))

	r.Run(":" + cfg.Port)
}
