package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mediavault/internal/application/usecase/abstraction"
	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/internal/presentation"
)

type CommentHandler struct {
	commenter abstraction.Commenter
}

func NewCommentHandler(commenter abstraction.Commenter) *CommentHandler {
	return &CommentHandler{commenter: commenter}
}

type commentBody struct {
	Text string `json:"text"`
}

// HandleAdd handles POST /media/:id/comments.
func (h *CommentHandler) HandleAdd(c echo.Context) error {
	var body commentBody
	if err := c.Bind(&body); err != nil {
		return fail(c, apperr.ErrInvalidInput)
	}

	comment, err := h.commenter.AddComment(c.Request().Context(),
		c.Param(presentation.IDParam), body.Text, principal(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// HandleList handles GET /media/:id/comments.
func (h *CommentHandler) HandleList(c echo.Context) error {
	comments, err := h.commenter.ListComments(c.Request().Context(), c.Param(presentation.IDParam))
	if err != nil {
		return fail(c, err)
	}

	if comments == nil {
		comments = []model.Comment{}
	}

	return c.JSON(http.StatusOK, comments)
}

// HandleDelete handles DELETE /media/:id/comments/:comment_id.
func (h *CommentHandler) HandleDelete(c echo.Context) error {
	err := h.commenter.DeleteComment(c.Request().Context(),
		c.Param(presentation.IDParam), c.Param("comment_id"), principal(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "comment deleted"})
}
