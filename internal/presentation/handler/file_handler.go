package handler

import (
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"

	"mediavault/internal/application/usecase/abstraction"
	"mediavault/internal/domain/apperr"
	"mediavault/internal/presentation"
)

type FileHandler struct {
	resolver abstraction.Resolver
}

func NewFileHandler(resolver abstraction.Resolver) *FileHandler {
	return &FileHandler{resolver: resolver}
}

// HandleFile handles GET /media/:id/file. Plain requests are served with
// byte-range support straight from the resolved file; video requests
// with start/end query parameters are answered with an extracted clip.
func (h *FileHandler) HandleFile(c echo.Context) error {
	id := c.Param(presentation.IDParam)
	ctx := c.Request().Context()

	startMS, endMS, hasRange, err := parseSegmentRange(c)
	if err != nil {
		return fail(c, err)
	}

	resolved, err := h.resolver.ResolveFile(ctx, id)
	if err != nil {
		return fail(c, err)
	}

	if hasRange && resolved.IsVideo {
		clip, err := h.resolver.ExtractSegment(ctx, id, startMS, endMS)
		if err != nil {
			return fail(c, err)
		}

		c.Response().Header().Set(presentation.TypeKey, "video/mp4")

		return c.Blob(http.StatusOK, "video/mp4", clip)
	}

	file, err := os.Open(resolved.Path)
	if err != nil {
		return fail(c, apperr.ErrNotFound)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fail(c, apperr.ErrNotFound)
	}

	c.Response().Header().Set(presentation.TypeKey, resolved.ContentType)
	c.Response().Header().Set("Accept-Ranges", "bytes")
	http.ServeContent(c.Response(), c.Request(), "", info.ModTime(), file)

	return nil
}

// parseSegmentRange reads the optional start/end millisecond query
// parameters of a clip request.
func parseSegmentRange(c echo.Context) (startMS, endMS int64, ok bool, err error) {
	rawStart := c.QueryParam("start")
	rawEnd := c.QueryParam("end")
	if rawStart == "" && rawEnd == "" {
		return 0, 0, false, nil
	}

	if rawStart != "" {
		startMS, err = strconv.ParseInt(rawStart, 10, 64)
		if err != nil || startMS < 0 {
			return 0, 0, false, apperr.ErrInvalidInput
		}
	}
	if rawEnd != "" {
		endMS, err = strconv.ParseInt(rawEnd, 10, 64)
		if err != nil || endMS <= 0 {
			return 0, 0, false, apperr.ErrInvalidInput
		}
	}

	return startMS, endMS, true, nil
}
