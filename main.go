package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carebook/config"
	"carebook/database"
	providerRepo "carebook/database/repository/provider"
	reservationRepo "carebook/database/repository/reservation"
	schedulerRepo "carebook/database/repository/scheduler"
	"carebook/handlers"
	"carebook/middleware"
	"carebook/routes"
	"carebook/services"
	"carebook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	cacheClient := utils.GetCacheClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	resRepo := reservationRepo.NewMongoReservationRepo()
	schedRepo := schedulerRepo.NewMongoSchedulerRepo()

	// services.
	availabilityService := &services.DefaultAvailabilityService{
		Repo:  provRepo,
		Cache: cacheClient,
	}
	providerService := &services.DefaultProviderService{
		Repo:   provRepo,
		Cache:  cacheClient,
		Logger: logger,
	}
	bookingService := &services.DefaultBookingService{
		Providers:    provRepo,
		Reservations: resRepo,
		Scheduler:    schedRepo,
		Cache:        cacheClient,
		Logger:       logger,
	}
	settlementGateway := services.NewStripeGateway(config.AppConfig.StripeKey, logger)
	settlementService := &services.DefaultSettlementService{
		Reservations: resRepo,
		Gateway:      settlementGateway,
		Currency:     config.AppConfig.Currency,
		Logger:       logger,
	}
	dashboardService := &services.DefaultDashboardService{
		Reservations: resRepo,
	}

	// handlers.
	providerHandler := handlers.NewProviderHandler(providerService, availabilityService, dashboardService)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	settlementHandler := handlers.NewSettlementHandler(settlementService)

	routes.RegisterRoutes(router, providerHandler, bookingHandler, settlementHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("mongo disconnect: %v", err)
	}
}
