package handler

import (
	"errors"
	"net/http"

	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/Rasika1975/socialapp/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized      = errors.New("not authorized, no token")
	errInvalidRequestBody = errors.New("invalid request body")
)

var statusByKind = map[service.Kind]int{
	service.KindValidation:    http.StatusBadRequest,
	service.KindAuth:          http.StatusUnauthorized,
	service.KindAuthorization: http.StatusForbidden,
	service.KindNotFound:      http.StatusNotFound,
	service.KindConflict:      http.StatusBadRequest,
	service.KindConfiguration: http.StatusInternalServerError,
	service.KindUnknown:       http.StatusInternalServerError,
}

// writeError is the single place service errors become HTTP responses.
// Messages of uncategorized errors never reach the client.
func (h *Handler) writeError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	message := err.Error()
	if kind == service.KindUnknown {
		if !errors.Is(err, service.ErrInternal) {
			h.logger.Sugar().Errorf("unhandled error on %s %s: %s", c.Request.Method, c.Request.URL.Path, err.Error())
		}
		message = service.ErrInternal.Message
	}

	c.AbortWithStatusJSON(statusByKind[kind], dto.NewMessageResponse(message))
}

func (h *Handler) writeBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
}

func (h *Handler) writeUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessageResponse(errNotAuthorized.Error()))
}
