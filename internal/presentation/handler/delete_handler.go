package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mediavault/internal/application/usecase/abstraction"
	"mediavault/internal/presentation"
)

type DeleteHandler struct {
	deleter abstraction.Deleter
}

func NewDeleteHandler(deleter abstraction.Deleter) *DeleteHandler {
	return &DeleteHandler{deleter: deleter}
}

// HandleDelete handles DELETE /media/:id requests.
func (h *DeleteHandler) HandleDelete(c echo.Context) error {
	item, err := h.deleter.DeleteItem(c.Request().Context(), c.Param(presentation.IDParam), principal(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":        "'" + item.Title + "' deleted",
		"deleted_sha256": item.SHA256,
	})
}
