package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/service"
)

type createRoomRequest struct {
	Name         string   `json:"name"`
	PricePerHour *float64 `json:"price_per_hour"`
	Description  string   `json:"description"`
}

type updateRoomRequest struct {
	Name         *string  `json:"name"`
	PricePerHour *float64 `json:"price_per_hour"`
	Description  *string  `json:"description"`
}

// GetRooms handles GET /api/rooms. With free=true only rooms without
// reservations are returned.
func (h *Handler) GetRooms(c *gin.Context) {
	free := false
	if raw := c.Query("free"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badInput(c, errors.New("free must be true or false"))
			return
		}
		free = v
	}

	var (
		rooms []model.Room
		err   error
	)
	if free {
		rooms, err = h.services.Rooms.FreeRooms(c.Request.Context())
	} else {
		rooms, err = h.services.Rooms.Rooms(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetFreeRoomsBetween handles GET /api/rooms/free.
func (h *Handler) GetFreeRoomsBetween(c *gin.Context) {
	start, ok := h.requiredTime(c, "start")
	if !ok {
		return
	}
	end, ok := h.requiredTime(c, "end")
	if !ok {
		return
	}
	rooms, err := h.services.Rooms.FreeRoomsBetween(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoomByName handles GET /api/rooms/by-name.
func (h *Handler) GetRoomByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		badInput(c, errors.New("query parameter \"name\" is required"))
		return
	}
	room, err := h.services.Rooms.RoomByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetTopRooms handles GET /api/rooms/top/:num, ordered by price.
func (h *Handler) GetTopRooms(c *gin.Context) {
	n, desc, ok := topParams(c)
	if !ok {
		return
	}
	rooms, err := h.services.Rooms.TopRoomsByPrice(c.Request.Context(), n, desc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoomsByCapacity handles GET /api/rooms/capacity/:num. Only ascending
// order is offered.
func (h *Handler) GetRoomsByCapacity(c *gin.Context) {
	n, desc, ok := topParams(c)
	if !ok {
		return
	}
	if desc {
		badInput(c, errors.New("rooms by capacity are only sorted ascending"))
		return
	}
	rooms, err := h.services.Rooms.TopRoomsByOccupancy(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	room, err := h.services.Rooms.Room(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	room, err := h.services.Rooms.CreateRoom(c.Request.Context(), service.CreateRoomInput{
		Name:         req.Name,
		PricePerHour: req.PricePerHour,
		Description:  req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /api/rooms/:id.
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	room, err := h.services.Rooms.UpdateRoom(c.Request.Context(), id, service.UpdateRoomInput{
		Name:         req.Name,
		PricePerHour: req.PricePerHour,
		Description:  req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Rooms.DeleteRoom(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
