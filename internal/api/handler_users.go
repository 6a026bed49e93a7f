package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/mw"
	"room-meeting-backend/internal/parse"
	"room-meeting-backend/internal/service"
)

type profileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r profileRequest) input() service.ProfileInput {
	return service.ProfileInput{Username: r.Username, Email: r.Email, Password: r.Password}
}

type userPaymentRequest struct {
	UserID    int64 `json:"user_id" binding:"required"`
	PaymentID int64 `json:"payment_id" binding:"required"`
}

type userReservationRequest struct {
	UserID        int64 `json:"user_id" binding:"required"`
	ReservationID int64 `json:"reservation_id" binding:"required"`
}

// actsFor reports whether the caller may act on the user with the given id.
// Administrators act on every user, plain users only on themselves.
func actsFor(c *gin.Context, userID int64) bool {
	id, ok := mw.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return false
	}
	if id.Role == model.RoleAdmin {
		return true
	}
	if id.Kind == model.AccountUser && id.AccountID == userID {
		return true
	}
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	return false
}

// GetUsers handles GET /api/users. sort=asc|desc orders by username.
func (h *Handler) GetUsers(c *gin.Context) {
	var (
		users []model.User
		err   error
	)
	if raw := c.Query("sort"); raw != "" {
		desc, perr := parse.Descending(raw)
		if perr != nil {
			badInput(c, perr)
			return
		}
		users, err = h.services.Users.UsersByUsername(c.Request.Context(), desc)
	} else {
		users, err = h.services.Users.Users(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// LookupUser handles GET /api/users/lookup with exactly one of id, username
// or email.
func (h *Handler) LookupUser(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		user *model.User
		err  error
	)
	switch {
	case c.Query("id") != "":
		id, perr := parse.ID(c.Query("id"))
		if perr != nil {
			badInput(c, perr)
			return
		}
		user, err = h.services.Users.User(ctx, id)
	case c.Query("username") != "":
		user, err = h.services.Users.UserByUsername(ctx, c.Query("username"))
	case c.Query("email") != "":
		user, err = h.services.Users.UserByEmail(ctx, c.Query("email"))
	default:
		badInput(c, errors.New("one of id, username or email is required"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUser handles GET /api/users/:id.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.services.Users.User(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	user, err := h.services.Users.CreateUser(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// AddUserPayment handles POST /api/users/payment.
func (h *Handler) AddUserPayment(c *gin.Context) {
	var req userPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	if !actsFor(c, req.UserID) {
		return
	}
	p, err := h.services.Users.AddUserPayment(c.Request.Context(), req.UserID, req.PaymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddUserReservation handles POST /api/users/reservation.
func (h *Handler) AddUserReservation(c *gin.Context) {
	var req userReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	if !actsFor(c, req.UserID) {
		return
	}
	r, err := h.services.Users.AddUserReservation(c.Request.Context(), req.UserID, req.ReservationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateUser handles PUT /api/users/:id.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok || !actsFor(c, id) {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	user, err := h.services.Users.UpdateUser(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteReservationFromUser handles DELETE /api/users/:id/reservations/:reservation_id.
func (h *Handler) DeleteReservationFromUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok || !actsFor(c, id) {
		return
	}
	reservationID, ok := pathID(c, "reservation_id")
	if !ok {
		return
	}
	if err := h.services.Users.DeleteReservationFromUser(c.Request.Context(), id, reservationID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/users/:id.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
