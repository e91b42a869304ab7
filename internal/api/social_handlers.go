package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

// GET /api/comments/:eventId
func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.socialService.ListComments(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse("Event not found", "NOT_FOUND"))
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to load comments", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusOK, SuccessResponse(gin.H{
		"count":    len(comments),
		"comments": comments,
	}))
}

// POST /api/comments/:eventId
func (h *Handler) AddComment(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("Invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.validator.ValidateComment(req.Text); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse(err.Error(), "INVALID_COMMENT"))
		return
	}

	comment, err := h.socialService.AddComment(c.Request.Context(), c.Param("eventId"), CallerID(c), req.Text)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse("Event not found", "NOT_FOUND"))
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to add comment", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse(comment))
}

// DELETE /api/comments/:commentId
func (h *Handler) DeleteComment(c *gin.Context) {
	err := h.socialService.DeleteComment(c.Request.Context(), c.Param("commentId"), CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse("Comment not found", "NOT_FOUND"))
		case errors.Is(err, apperrors.ErrNotCommentAuthor):
			c.JSON(http.StatusForbidden, ErrorResponse("Only the author can delete this comment", "FORBIDDEN"))
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to delete comment", "INTERNAL_ERROR"))
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse(gin.H{"message": "Comment deleted"}))
}

// POST /api/likes/:eventId
func (h *Handler) ToggleLike(c *gin.Context) {
	liked, count, err := h.socialService.ToggleLike(c.Request.Context(), c.Param("eventId"), CallerID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse("Event not found", "NOT_FOUND"))
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to toggle like", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusOK, SuccessResponse(gin.H{
		"liked": liked,
		"count": count,
	}))
}

// GET /api/likes/:eventId
func (h *Handler) HasLiked(c *gin.Context) {
	liked, err := h.socialService.HasLiked(c.Request.Context(), c.Param("eventId"), CallerID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse("Event not found", "NOT_FOUND"))
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to check like", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusOK, SuccessResponse(gin.H{"liked": liked}))
}

// GET /api/likes/:eventId/count
func (h *Handler) CountLikes(c *gin.Context) {
	count, err := h.socialService.CountLikes(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse("Event not found", "NOT_FOUND"))
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to count likes", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusOK, SuccessResponse(gin.H{"count": count}))
}
