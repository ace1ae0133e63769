package handlers

import (
	"errors"
	"net/http"
	"time"

	"bookify/models"
	"bookify/services/checkout"
	"bookify/services/provider"
	"bookify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler exposes the checkout core surface over HTTP. Request and
// response encodings live here; the core mandates no wire format.
type CheckoutHandler struct {
	Svc    checkout.Service
	Logger *zap.Logger
}

func NewCheckoutHandler(svc checkout.Service, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{Svc: svc, Logger: logger}
}

// respondError maps the core error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var notFound *checkout.NotFoundError
	var invalidState *checkout.InvalidStateError
	var validation *checkout.ValidationError
	var providerErr *provider.Error

	switch {
	case errors.As(err, &notFound), errors.Is(err, provider.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &invalidState):
		utils.JSONError(c, http.StatusConflict, "invalid session state", err.Error())
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.As(err, &providerErr):
		utils.JSONError(c, http.StatusBadGateway, "booking provider unavailable", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// AddToCheckout handles POST /api/checkout/items.
func (h *CheckoutHandler) AddToCheckout(c *gin.Context) {
	var body struct {
		SessionID          string     `json:"sessionId"`
		ServiceVariationID string     `json:"serviceVariationId" binding:"required"`
		Quantity           int        `json:"quantity"`
		LocationID         string     `json:"locationId"`
		StaffID            string     `json:"staffId"`
		StartTime          *time.Time `json:"startTime"`
		Notes              string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Svc.AddToCheckout(c.Request.Context(), checkout.AddToCheckoutInput{
		SessionID:          body.SessionID,
		ServiceVariationID: body.ServiceVariationID,
		Quantity:           body.Quantity,
		LocationID:         body.LocationID,
		StaffID:            body.StaffID,
		StartTime:          body.StartTime,
		Notes:              body.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetCheckout handles GET /api/checkout/:sessionID.
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	session, err := h.Svc.GetCheckout(c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateCheckout handles PATCH /api/checkout/:sessionID/items/:lineItemID.
func (h *CheckoutHandler) UpdateCheckout(c *gin.Context) {
	var body struct {
		Quantity   *int       `json:"quantity"`
		LocationID string     `json:"locationId"`
		StaffID    string     `json:"staffId"`
		StartTime  *time.Time `json:"startTime"`
		Notes      string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Svc.UpdateCheckout(c.Request.Context(), checkout.UpdateCheckoutInput{
		SessionID:  c.Param("sessionID"),
		LineItemID: c.Param("lineItemID"),
		Quantity:   body.Quantity,
		LocationID: body.LocationID,
		StaffID:    body.StaffID,
		StartTime:  body.StartTime,
		Notes:      body.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RemoveFromCheckout handles DELETE /api/checkout/:sessionID/items/:lineItemID.
func (h *CheckoutHandler) RemoveFromCheckout(c *gin.Context) {
	session, err := h.Svc.RemoveFromCheckout(c.Param("sessionID"), c.Param("lineItemID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetAppointment handles PUT /api/checkout/:sessionID/appointment.
func (h *CheckoutHandler) SetAppointment(c *gin.Context) {
	var body struct {
		Slots []models.SlotRequest `json:"slots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Svc.SetAppointment(c.Request.Context(), c.Param("sessionID"), body.Slots)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GateForPayment handles POST /api/checkout/:sessionID/gate. Deficiencies are
// a normal 200 response, not an error.
func (h *CheckoutHandler) GateForPayment(c *gin.Context) {
	var body struct {
		Buyer models.Buyer `json:"buyer"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Svc.GateForPayment(c.Param("sessionID"), body.Buyer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreatePaymentIntent handles POST /api/checkout/:sessionID/payment-intent.
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	intent, err := h.Svc.CreatePaymentIntent(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

// Finalize handles POST /api/checkout/:sessionID/finalize.
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	var body struct {
		Buyer models.Buyer `json:"buyer"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	order, err := h.Svc.Finalize(c.Request.Context(), c.Param("sessionID"), body.Buyer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrder handles GET /api/orders/:orderID.
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	order, err := h.Svc.GetOrder(c.Param("orderID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
