package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		h.writeUnauthorized(c)
		return
	}

	accessToken := strings.TrimSpace(header[len(bearerPrefix):])
	if accessToken == "" {
		h.writeUnauthorized(c)
		return
	}

	identity, err := h.services.Auth.ParseToken(accessToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set("user", *identity)

	c.Next()
}
