package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createPaymentRequest struct {
	ReservationID int64 `json:"reservation_id" binding:"required"`
}

type paymentReservationRequest struct {
	PaymentID     int64 `json:"payment_id" binding:"required"`
	ReservationID int64 `json:"reservation_id" binding:"required"`
}

// GetPayments handles GET /api/payments.
func (h *Handler) GetPayments(c *gin.Context) {
	payments, err := h.services.Payments.Payments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetPaymentsSince handles GET /api/payments/since.
func (h *Handler) GetPaymentsSince(c *gin.Context) {
	start, ok := h.optionalTime(c, "start")
	if !ok {
		return
	}
	payments, err := h.services.Payments.PaymentsSince(c.Request.Context(), start)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetPayment handles GET /api/payments/:id.
func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.services.Payments.Payment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreatePayment handles POST /api/payments.
func (h *Handler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	p, err := h.services.Payments.CreatePayment(c.Request.Context(), req.ReservationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// AddPaymentReservation handles POST /api/payments/reservation.
func (h *Handler) AddPaymentReservation(c *gin.Context) {
	var req paymentReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	p, err := h.services.Payments.AddPaymentReservation(c.Request.Context(), req.PaymentID, req.ReservationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePayment handles DELETE /api/payments/:id.
func (h *Handler) DeletePayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Payments.DeletePayment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
