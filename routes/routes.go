package routes

import (
	"net/http"
	"time"

	"bookify/handlers"
	"bookify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCheckoutRoutes registers the checkout core surface.
func RegisterCheckoutRoutes(r *gin.Engine, ch *handlers.CheckoutHandler) {
	api := r.Group("/api/checkout")
	{
		api.POST("/items", ch.AddToCheckout)
		api.GET("/:sessionID", ch.GetCheckout)
		api.PATCH("/:sessionID/items/:lineItemID", ch.UpdateCheckout)
		api.DELETE("/:sessionID/items/:lineItemID", ch.RemoveFromCheckout)
		api.PUT("/:sessionID/appointment", ch.SetAppointment)
		api.POST("/:sessionID/gate", ch.GateForPayment)
		api.POST("/:sessionID/payment-intent", ch.CreatePaymentIntent)
		api.POST("/:sessionID/finalize", ch.Finalize)
	}
	r.GET("/api/orders/:orderID", ch.GetOrder)
}

// RegisterCatalogRoutes registers the provider directory passthroughs.
func RegisterCatalogRoutes(r *gin.Engine, ca *handlers.CatalogHandler) {
	api := r.Group("/api/catalog")
	{
		api.GET("/locations", ca.ListLocations)
		api.GET("/staff", ca.ListStaff)
		api.GET("/services", ca.SearchServices)
		api.POST("/availability/search", ca.SearchAvailability)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.GET("", ca.ListBookings)
		bookings.DELETE("/:bookingID", ca.CancelBooking)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "collaborators": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, ch *handlers.CheckoutHandler, ca *handlers.CatalogHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCheckoutRoutes(r, ch)
	RegisterCatalogRoutes(r, ca)
	RegisterHealthRoute(r)
}
