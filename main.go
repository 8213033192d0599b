package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servify/config"
	"servify/cron"
	"servify/database"
	bookingRepo "servify/database/repository/booking"
	catalogRepo "servify/database/repository/catalog"
	offeringRepo "servify/database/repository/offering"
	userRepoPkg "servify/database/repository/user"
	"servify/handlers"
	"servify/middleware"
	"servify/routes"
	"servify/services/booking"
	"servify/services/cart"
	"servify/services/catalog"
	"servify/services/offering"
	"servify/services/storage"
	"servify/services/user"
	"servify/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	storageService, err := storage.NewCloudinaryStorage(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterCORS(router)
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	categoryRepo := catalogRepo.NewMongoCategoryRepo()
	subcategoryRepo := catalogRepo.NewMongoSubcategoryRepo()
	offerings := offeringRepo.NewMongoOfferingRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	users := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:      users,
		AuthCache: utils.GetAuthCacheClient(),
	}
	catalogService := &catalog.DefaultCatalogService{
		Categories:    categoryRepo,
		Subcategories: subcategoryRepo,
		Offerings:     offerings,
	}
	offeringService := &offering.DefaultOfferingService{
		Offerings:     offerings,
		Subcategories: subcategoryRepo,
	}

	leaser := &booking.RedisSlotLeaser{Client: utils.GetSessionCacheClient()}
	slotSource := &booking.DailyTemplateSlotSource{
		Bookings: bookings,
		Leaser:   leaser,
	}
	sweeper := cron.NewLeaseSweeper()
	checkout := &booking.StripeCheckout{
		SuccessURL: config.AppConfig.CheckoutSuccessURL,
		CancelURL:  config.AppConfig.CheckoutCancelURL,
	}
	bookingService := &booking.DefaultBookingSessionService{
		Offerings:    offerings,
		Bookings:     bookings,
		Slots:        slotSource,
		Leaser:       leaser,
		Sweeper:      sweeper,
		Checkout:     checkout,
		Sessions:     &booking.RedisSessionStore{Client: utils.GetSessionCacheClient()},
		HoldDuration: time.Duration(config.AppConfig.HoldDurationSeconds) * time.Second,
	}
	cartService := &cart.RedisCartService{Client: utils.GetCartCacheClient()}

	// Background lease sweep worker.
	cron.InitLeaseWorker(leaser)

	// handlers and routes.
	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	offeringHandler := handlers.NewOfferingHandler(offeringService)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	cartHandler := handlers.NewCartHandler(cartService)
	storageHandler := handlers.NewStorageHandler(storageService)

	auth := middleware.JWTAuthMiddleware(userService)

	routes.RegisterHealthRoute(router)
	routes.RegisterUserRoutes(router, userHandler, auth)
	routes.RegisterCatalogRoutes(router, catalogHandler, auth)
	routes.RegisterOfferingRoutes(router, offeringHandler, storageHandler, auth)
	routes.RegisterBookingRoutes(router, bookingHandler, auth)
	routes.RegisterCartRoutes(router, cartHandler)
	routes.RegisterAdminUserRoutes(router, userHandler, auth)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
}
