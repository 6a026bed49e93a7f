package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/parse"
)

type createReservationRequest struct {
	Start string `json:"reservation_start" binding:"required"`
	End   string `json:"reservation_end" binding:"required"`
}

type updateReservationRequest struct {
	Start *string `json:"reservation_start"`
	End   *string `json:"reservation_end"`
}

type reservationRoomRequest struct {
	ReservationID int64 `json:"reservation_id" binding:"required"`
	RoomID        int64 `json:"room_id" binding:"required"`
}

// GetReservations handles GET /api/reservations.
func (h *Handler) GetReservations(c *gin.Context) {
	reservations, err := h.services.Reservations.Reservations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservationsBetween handles GET /api/reservations/between.
func (h *Handler) GetReservationsBetween(c *gin.Context) {
	start, ok := h.requiredTime(c, "start")
	if !ok {
		return
	}
	end, ok := h.requiredTime(c, "end")
	if !ok {
		return
	}
	reservations, err := h.services.Reservations.ReservationsBetween(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// FilterReservations handles GET /api/reservations/filter. sort=start lists
// reservations starting after start, sort=end those ending before end.
func (h *Handler) FilterReservations(c *gin.Context) {
	var (
		reservations []model.Reservation
		err          error
	)
	switch c.Query("sort") {
	case "start":
		after, ok := h.optionalTime(c, "start")
		if !ok {
			return
		}
		reservations, err = h.services.Reservations.ReservationsStartingAfter(c.Request.Context(), after)
	case "end":
		before, ok := h.optionalTime(c, "end")
		if !ok {
			return
		}
		reservations, err = h.services.Reservations.ReservationsEndingBefore(c.Request.Context(), before)
	default:
		badInput(c, fmt.Errorf("invalid sort %q: expected start or end", c.Query("sort")))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetTopReservations handles GET /api/reservations/top/:num, ordered by price.
func (h *Handler) GetTopReservations(c *gin.Context) {
	n, desc, ok := topParams(c)
	if !ok {
		return
	}
	reservations, err := h.services.Reservations.TopReservationsByPrice(c.Request.Context(), n, desc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservation handles GET /api/reservations/:id.
func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, err := h.services.Reservations.Reservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// CreateReservation handles POST /api/reservations.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	start, err := parse.Timestamp(req.Start, h.loc)
	if err != nil {
		badInput(c, err)
		return
	}
	end, err := parse.Timestamp(req.End, h.loc)
	if err != nil {
		badInput(c, err)
		return
	}

	r, err := h.services.Reservations.CreateReservation(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// AddReservationRoom handles POST /api/reservations/room.
func (h *Handler) AddReservationRoom(c *gin.Context) {
	var req reservationRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	r, err := h.services.Reservations.AddReservationRoom(c.Request.Context(), req.ReservationID, req.RoomID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateReservation handles PUT /api/reservations/:id.
func (h *Handler) UpdateReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}

	var start, end *time.Time
	var err error
	if req.Start != nil {
		if start, err = parse.OptionalTimestamp(*req.Start, h.loc); err != nil {
			badInput(c, err)
			return
		}
	}
	if req.End != nil {
		if end, err = parse.OptionalTimestamp(*req.End, h.loc); err != nil {
			badInput(c, err)
			return
		}
	}

	r, err := h.services.Reservations.UpdateReservation(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteReservation handles DELETE /api/reservations/:id.
func (h *Handler) DeleteReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Reservations.DeleteReservation(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
