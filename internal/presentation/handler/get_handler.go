package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mediavault/internal/application/usecase/abstraction"
	"mediavault/internal/presentation"
)

type GetHandler struct {
	getter abstraction.Getter
	lister abstraction.Lister
}

func NewGetHandler(getter abstraction.Getter, lister abstraction.Lister) *GetHandler {
	return &GetHandler{getter: getter, lister: lister}
}

// HandleGet handles GET /media/:id requests.
func (h *GetHandler) HandleGet(c echo.Context) error {
	item, err := h.getter.GetItem(c.Request().Context(), c.Param(presentation.IDParam))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, item)
}

// HandleList handles GET /media?class=video requests.
func (h *GetHandler) HandleList(c echo.Context) error {
	mediaClass := c.QueryParam("class")
	if mediaClass == "" {
		mediaClass = "video"
	}

	items, err := h.lister.ListItems(c.Request().Context(), mediaClass)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, items)
}
