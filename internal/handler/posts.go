package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func (h *Handler) postsList(c *gin.Context) {
	page, err := h.services.Post.List(c.Request.Context(), c.Query("page"), c.Query("limit"), h.servingOrigin(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// postsCreate accepts multipart (text + image) as sent by the client, and
// plain JSON or urlencoded bodies for text-only posts.
func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUser(c)

	var (
		text  string
		image *multipart.FileHeader
	)
	switch c.ContentType() {
	case binding.MIMEJSON:
		var input dto.CreatePostRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			h.writeBadRequest(c, errInvalidRequestBody)
			return
		}
		text = input.Text
	case binding.MIMEMultipartPOSTForm:
		fileHeader, err := c.FormFile("image")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			h.writeBadRequest(c, errInvalidRequestBody)
			return
		}
		image = fileHeader
		text = c.PostForm("text")
	default:
		text = c.PostForm("text")
	}

	post, err := h.services.Post.Create(c.Request.Context(), user, text, image, h.servingOrigin(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) postsLike(c *gin.Context) {
	user := h.getUser(c)

	resp, err := h.services.Post.ToggleLike(c.Request.Context(), c.Param("id"), user, h.servingOrigin(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) postsComment(c *gin.Context) {
	user := h.getUser(c)

	var input dto.CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeBadRequest(c, errInvalidRequestBody)
		return
	}

	post, err := h.services.Post.AddComment(c.Request.Context(), c.Param("id"), user, input.Text, h.servingOrigin(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUser(c)

	if err := h.services.Post.Delete(c.Request.Context(), c.Param("id"), user); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("post removed successfully"))
}
