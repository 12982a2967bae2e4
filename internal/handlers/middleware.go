package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	plantIDHeader = "Plant-Id"
	plantIDKey    = "plantId"
)

func (h *Handler) plantIdMiddleware(c *gin.Context) {
	plantID := strings.TrimSpace(c.GetHeader(plantIDHeader))
	if plantID == "" {
		abortWithError(c, http.StatusBadRequest, msgMissingPlantID)
		return
	}

	c.Set(plantIDKey, plantID)
	c.Next()
}

// operatorMiddleware admits requests carrying a valid operator bearer token.
func (h *Handler) operatorMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		abortWithError(c, http.StatusUnauthorized, "missing Authorization header")
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		abortWithError(c, http.StatusUnauthorized, "invalid Authorization header format")
		return
	}

	if err := h.services.ParseOperatorToken(parts[1]); err != nil {
		if h.log != nil {
			h.log.Infow("operator_token_rejected", "err", err)
		}
		abortWithError(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	c.Next()
}

func plantIDFrom(c *gin.Context) string {
	return c.GetString(plantIDKey)
}
