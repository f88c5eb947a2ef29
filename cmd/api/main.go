package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rifamarket/rifa_api/internal/cache"
	"github.com/rifamarket/rifa_api/internal/config"
	"github.com/rifamarket/rifa_api/internal/database"
	"github.com/rifamarket/rifa_api/internal/handler"
	"github.com/rifamarket/rifa_api/internal/middleware"
	"github.com/rifamarket/rifa_api/internal/repository"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/sse"
	"github.com/rifamarket/rifa_api/internal/worker"
	"github.com/rifamarket/rifa_api/pkg/mercadopago"
	"github.com/rifamarket/rifa_api/pkg/stripe"
)

// main is the application entrypoint for the Rifa marketplace API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting rifa api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Connect to Mongo (shop directory)
	mongoDB, err := database.ConnectMongo(&cfg.Mongo)
	if err != nil {
		log.Error().Err(err).Msg("mongo connection failed")
		fmt.Fprintf(os.Stderr, "mongo connection failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("mongo connected successfully")

	// 3d. Initialize checkout session cache
	checkoutCache := cache.NewCheckoutCache(redisClient, cfg.Worker.CheckoutSessionTTL)

	// 4. Initialize gateway clients
	stripeClient := stripe.NewClient(cfg.Stripe.SecretKey)
	mpClient := mercadopago.NewClient(cfg.MercadoPago.AccessToken)

	// 5. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	productRepo := repository.NewProductRepository(db)
	raffleRepo := repository.NewRaffleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	directoryRepo := repository.NewDirectoryRepository(mongoDB)

	// 6. Initialize services
	authSvc := service.NewAuthService(userRepo, shopRepo)
	shopSvc := service.NewShopService(shopRepo, directoryRepo)
	raffleSvc := service.NewRaffleService(raffleRepo, productRepo, shopSvc)
	paymentSvc := service.NewPaymentService(paymentRepo, raffleRepo, checkoutCache, cfg.Currency)
	complaintSvc := service.NewComplaintService(complaintRepo)

	// Gateway router keyed by payment method
	gatewayRouter := service.NewGatewayRouter()
	if cfg.Stripe.SecretKey != "" {
		gatewayRouter.Register(service.NewStripeGateway(
			stripeClient, cfg.Currency, cfg.Checkout.SuccessURL, cfg.Checkout.FailureURL,
		))
	}
	if cfg.MercadoPago.AccessToken != "" {
		gatewayRouter.Register(service.NewMercadoPagoGateway(
			mpClient, cfg.Currency, cfg.Checkout.SuccessURL, cfg.Checkout.FailureURL,
			cfg.Worker.CheckoutSessionTTL,
		))
	}
	checkoutSvc := service.NewCheckoutService(paymentSvc, raffleRepo, gatewayRouter, checkoutCache)

	// S3-backed image storage for the product catalog
	storageSvc, err := service.NewStorageService(context.Background(), cfg.S3)
	if err != nil {
		log.Error().Err(err).Msg("storage service initialization failed")
		fmt.Fprintf(os.Stderr, "storage service initialization failed: %v\n", err)
		os.Exit(1)
	}
	productSvc := service.NewProductService(productRepo, shopRepo, storageSvc)

	// SSE hub for live payment status
	hub := sse.NewHub()
	paymentSvc.SetNotifier(sse.NewHubNotifier(hub))

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:           handler.NewHealthHandler(db, redisClient),
		Auth:             handler.NewAuthHandler(authSvc),
		Raffle:           handler.NewRaffleHandler(raffleSvc),
		RaffleManagement: handler.NewRaffleManagementHandler(raffleSvc),
		Payment:          handler.NewPaymentHandler(paymentSvc),
		Checkout:         handler.NewCheckoutHandler(checkoutSvc),
		AdminPayment:     handler.NewAdminPaymentHandler(paymentSvc),
		Complaint:        handler.NewComplaintHandler(complaintSvc),
		Shop:             handler.NewShopHandler(shopSvc),
		Product:          handler.NewProductHandler(productSvc),
		Webhook:          handler.NewWebhookHandler(paymentSvc, mpClient, cfg.Stripe.WebhookSecret, cfg.MercadoPago.WebhookSecret),
		SSE:              handler.NewSSEHandler(hub),
	}

	// 8. Initialize middleware
	shopAuthMw := middleware.NewShopAuthMiddleware(authSvc)
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, shopAuthMw, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewStatusCheckWorker(
		paymentRepo, paymentSvc, gatewayRouter,
		cfg.Worker.StatusCheckInterval,
		cfg.Worker.StatusCheckStaleAfter,
		cfg.Worker.PaymentMaxAge,
	).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health           *handler.HealthHandler
	Auth             *handler.AuthHandler
	Raffle           *handler.RaffleHandler
	RaffleManagement *handler.RaffleManagementHandler
	Payment          *handler.PaymentHandler
	Checkout         *handler.CheckoutHandler
	AdminPayment     *handler.AdminPaymentHandler
	Complaint        *handler.ComplaintHandler
	Shop             *handler.ShopHandler
	Product          *handler.ProductHandler
	Webhook          *handler.WebhookHandler
	SSE              *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, shopAuth *middleware.ShopAuthMiddleware, jwtMiddleware *middleware.JWTMiddleware) {
	// Gateway webhook endpoints (signature-verified, no session auth)
	router.POST("/webhook/stripe", handlers.Webhook.HandleStripe)
	router.POST("/webhook/mercadopago", handlers.Webhook.HandleMercadoPago)

	router.GET("/v1/health", handlers.Health.GetHealth)

	// Accounts
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", jwtMiddleware.Handle(), handlers.Auth.Me)
	}

	// Public marketplace reads
	router.GET("/v1/raffles", handlers.Raffle.ListRaffles)
	router.GET("/v1/raffles/:raffleId", handlers.Raffle.GetRaffle)
	router.GET("/v1/shops", handlers.Shop.ListDirectory)
	router.GET("/v1/shops/:shopId", handlers.Shop.GetDirectoryEntry)

	// Payment status stream (token via query param for EventSource)
	router.GET("/v1/payments/:paymentId/events", handlers.SSE.StreamPayment)

	// User routes (JWT)
	user := router.Group("/v1")
	user.Use(jwtMiddleware.Handle())
	{
		user.POST("/payments", handlers.Payment.CreatePayment)
		user.GET("/payments", handlers.Payment.ListPayments)
		user.GET("/payments/:paymentId", handlers.Payment.GetPayment)
		user.GET("/payments/:paymentId/tickets", handlers.Payment.GetPaymentTickets)
		user.POST("/payments/confirm", handlers.Payment.ConfirmPayment)
		user.POST("/payments/:paymentId/fail", handlers.Payment.FailPayment)

		user.POST("/checkout", handlers.Checkout.StartCheckout)
		user.GET("/checkout/outcome", handlers.Checkout.GetOutcome)

		user.POST("/complaints", handlers.Complaint.CreateComplaint)
		user.GET("/complaints", handlers.Complaint.ListComplaints)
		user.GET("/complaints/:complaintId", handlers.Complaint.GetComplaint)
		user.POST("/complaints/:complaintId/cancel", handlers.Complaint.CancelComplaint)
	}

	// Shop management routes (API key)
	shop := router.Group("/v1/shop")
	shop.Use(shopAuth.Handle())
	{
		shop.GET("/profile", handlers.Shop.GetOwnShop)

		shop.POST("/products", handlers.Product.CreateProduct)
		shop.GET("/products", handlers.Product.ListProducts)
		shop.GET("/products/:productId", handlers.Product.GetProduct)
		shop.PUT("/products/:productId/image", handlers.Product.UploadProductImage)

		shop.POST("/raffles", handlers.RaffleManagement.CreateRaffle)
		shop.GET("/raffles", handlers.RaffleManagement.ListShopRaffles)
		shop.GET("/raffles/:raffleId", handlers.RaffleManagement.GetShopRaffle)
		shop.POST("/raffles/:raffleId/submit", handlers.RaffleManagement.SubmitRaffle)
		shop.POST("/raffles/:raffleId/pause", handlers.RaffleManagement.PauseRaffle)
		shop.POST("/raffles/:raffleId/resume", handlers.RaffleManagement.ResumeRaffle)
		shop.POST("/raffles/:raffleId/finish", handlers.RaffleManagement.FinishRaffle)
		shop.POST("/raffles/:raffleId/cancel", handlers.RaffleManagement.CancelRaffle)
	}

	// Admin routes (JWT + admin role)
	admin := router.Group("/v1/admin")
	admin.GET("/payments/events", handlers.SSE.StreamAll)
	admin.Use(jwtMiddleware.Handle(), jwtMiddleware.RequireAdmin())
	{
		admin.GET("/payments", handlers.AdminPayment.ListPayments)
		admin.GET("/payments/stats", handlers.AdminPayment.GetStats)
		admin.POST("/payments/:paymentId/refund", handlers.AdminPayment.RefundPayment)

		admin.GET("/raffles/pending", handlers.RaffleManagement.ListPendingRaffles)
		admin.POST("/raffles/:raffleId/approve", handlers.RaffleManagement.ApproveRaffle)
		admin.POST("/raffles/:raffleId/reject", handlers.RaffleManagement.RejectRaffle)

		admin.POST("/shops", handlers.Shop.RegisterShop)
		admin.GET("/shops", handlers.Shop.ListShops)
		admin.POST("/shops/:shopId/verification", handlers.Shop.SetVerification)
		admin.POST("/shops/:shopId/rotate-key", handlers.Shop.RotateShopKey)

		admin.GET("/complaints", handlers.Complaint.ListComplaintQueue)
		admin.POST("/complaints/:complaintId/review", handlers.Complaint.ReviewComplaint)
		admin.POST("/complaints/:complaintId/resolve", handlers.Complaint.ResolveComplaint)
		admin.POST("/complaints/:complaintId/reject", handlers.Complaint.RejectComplaint)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
