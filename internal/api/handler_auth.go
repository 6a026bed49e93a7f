package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"room-meeting-backend/internal/mw"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}

	p, err := h.services.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.issuer.Issue(p.ID, p.Kind, p.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Ctx(c.Request.Context()).Info().
		Str("account_kind", string(p.Kind)).
		Int64("account_id", p.ID).
		Msg("login succeeded")
	c.JSON(http.StatusOK, token)
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	id, ok := mw.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	h.issuer.Revoke(id)
	c.Status(http.StatusNoContent)
}

// Health reports that the process is serving requests.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
