package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/service"
)

// respondError writes the status matching err's kind. Unclassified errors
// are logged and reported as 500 without their detail.
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperr.As(err); ok {
		status := http.StatusBadRequest
		if appErr.Kind == apperr.KindNotFound {
			status = http.StatusNotFound
		}
		c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	_ = c.Error(err)
	log.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// badInput rejects a request whose parameters could not be parsed.
func badInput(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
