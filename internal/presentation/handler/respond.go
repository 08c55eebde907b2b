package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/presentation"
	"mediavault/internal/presentation/middleware"
)

// fail maps a taxonomy error onto an HTTP response with a JSON body and
// a reason header.
func fail(c echo.Context, err error) error {
	status := apperr.StatusOf(err)
	c.Response().Header().Set(presentation.ReasonTag, err.Error())

	return c.JSON(status, map[string]string{"error": err.Error()})
}

func queryBool(c echo.Context, name string, fallback bool) bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return value
}

var principal = middleware.Principal
