package handlers

import (
	"net/http"

	"bookify/models"
	"bookify/services/provider"
	"bookify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the booking provider's directories: locations,
// staff, service catalog, availability, and existing bookings.
type CatalogHandler struct {
	Provider provider.Client
	Logger   *zap.Logger
}

func NewCatalogHandler(client provider.Client, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Provider: client, Logger: logger}
}

// ListLocations handles GET /api/catalog/locations.
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.Provider.ListLocations(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Logger.Error("failed to list locations", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "booking provider unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// ListStaff handles GET /api/catalog/staff.
func (h *CatalogHandler) ListStaff(c *gin.Context) {
	staff, err := h.Provider.ListStaff(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Logger.Error("failed to list staff", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "booking provider unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

// SearchServices handles GET /api/catalog/services.
func (h *CatalogHandler) SearchServices(c *gin.Context) {
	services, err := h.Provider.SearchServiceCatalog(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Logger.Error("failed to search service catalog", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "booking provider unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// SearchAvailability handles POST /api/catalog/availability/search.
func (h *CatalogHandler) SearchAvailability(c *gin.Context) {
	var query models.AvailabilityQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slots, err := h.Provider.SearchAvailability(c.Request.Context(), query)
	if err != nil {
		h.Logger.Error("failed to search availability", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "booking provider unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availabilities": slots})
}

// ListBookings handles GET /api/bookings.
func (h *CatalogHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Provider.ListBookings(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "booking provider unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking handles DELETE /api/bookings/:bookingID.
func (h *CatalogHandler) CancelBooking(c *gin.Context) {
	confirmation, err := h.Provider.CancelBooking(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": confirmation})
}
