package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/parse"
)

type updateAdminRequest struct {
	Email string `json:"email"`
}

type adminReservationRequest struct {
	AdminID       int64 `json:"admin_id" binding:"required"`
	ReservationID int64 `json:"reservation_id" binding:"required"`
}

// GetAdmins handles GET /api/admins. sort=asc|desc orders by username.
func (h *Handler) GetAdmins(c *gin.Context) {
	var (
		admins []model.Admin
		err    error
	)
	if raw := c.Query("sort"); raw != "" {
		desc, perr := parse.Descending(raw)
		if perr != nil {
			badInput(c, perr)
			return
		}
		admins, err = h.services.Admins.AdminsByUsername(c.Request.Context(), desc)
	} else {
		admins, err = h.services.Admins.Admins(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

// GetAdmin handles GET /api/admins/:id.
func (h *Handler) GetAdmin(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	admin, err := h.services.Admins.Admin(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

// CreateAdmin handles POST /api/admins.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	admin, err := h.services.Admins.CreateAdmin(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

// UpdateAdmin handles PUT /api/admins/:id. Only the email can change.
func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	admin, err := h.services.Admins.UpdateAdmin(c.Request.Context(), id, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

// DeleteAdmin handles DELETE /api/admins/:id.
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Admins.DeleteAdmin(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminControlRoom handles POST /api/admins/:id/rooms/:room_id.
func (h *Handler) AdminControlRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	roomID, ok := pathID(c, "room_id")
	if !ok {
		return
	}
	if err := h.services.Admins.AdminControlRoom(c.Request.Context(), id, roomID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddAdminReservation handles POST /api/admins/reservation.
func (h *Handler) AddAdminReservation(c *gin.Context) {
	var req adminReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	r, err := h.services.Admins.AddAdminReservation(c.Request.Context(), req.AdminID, req.ReservationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteAdminReservation handles DELETE /api/admins/:id/reservations/:reservation_id.
func (h *Handler) DeleteAdminReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reservationID, ok := pathID(c, "reservation_id")
	if !ok {
		return
	}
	if err := h.services.Admins.DeleteAdminReservation(c.Request.Context(), id, reservationID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
