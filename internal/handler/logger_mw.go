package handler

import (
	"net/http"
	"time"

	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/Rasika1975/socialapp/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

func (h *Handler) requestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)

	c.Next()

	h.logger.Info("request",
		zap.String("id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
		zap.String("client_ip", c.ClientIP()),
	)
}

func (h *Handler) recoveryMiddleware(c *gin.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Sugar().Errorf("panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, rec)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewMessageResponse(service.ErrInternal.Message))
		}
	}()

	c.Next()
}
