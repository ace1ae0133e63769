// File: bookify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookify/config"
	"bookify/handlers"
	"bookify/middleware"
	"bookify/routes"
	"bookify/services/checkout"
	"bookify/services/provider"
	"bookify/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	cacheClient := utils.InitCatalogCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// External collaborators.
	providerClient := provider.NewRestClient(
		config.AppConfig.ProviderBaseURL,
		config.AppConfig.ProviderAPIKey,
		time.Duration(config.AppConfig.ProviderTimeoutSeconds)*time.Second,
		logger,
		cacheClient,
	)

	// Services.
	checkoutService := &checkout.DefaultCheckoutService{
		Provider: providerClient,
		Store:    checkout.NewSessionStore(),
		Payments: &checkout.StripeProcessor{Logger: logger},
		Currency: config.AppConfig.Currency,
		TaxRate:  config.AppConfig.TaxRate,
		Logger:   logger,
	}

	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, logger)
	catalogHandler := handlers.NewCatalogHandler(providerClient, logger)

	// Register routes.
	routes.RegisterRoutes(router, checkoutHandler, catalogHandler)

	utils.StartHealthMonitor(func(ctx context.Context) error {
		_, err := providerClient.ListLocations(ctx, "")
		return err
	}, cacheClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
