package handler

import (
	"net/http"

	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.SignUpRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBadRequest(c, errInvalidRequestBody)
		return
	}

	resp, err := h.services.Auth.SignUp(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) authLogin(c *gin.Context) {
	var input dto.SignInRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBadRequest(c, errInvalidRequestBody)
		return
	}

	resp, err := h.services.Auth.SignIn(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
