package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mediavault/internal/application/usecase/abstraction"
	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/internal/presentation"
)

type FlagsHandler struct {
	updater abstraction.FlagUpdater
}

func NewFlagsHandler(updater abstraction.FlagUpdater) *FlagsHandler {
	return &FlagsHandler{updater: updater}
}

// HandleUpdateFlags handles PATCH /media/:id/flags with the full flag
// set in the JSON body.
func (h *FlagsHandler) HandleUpdateFlags(c echo.Context) error {
	var flags model.Flags
	if err := c.Bind(&flags); err != nil {
		return fail(c, apperr.ErrInvalidInput)
	}

	item, err := h.updater.UpdateFlags(c.Request().Context(), c.Param(presentation.IDParam), flags, principal(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, item)
}
