package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mediavault/internal/application/usecase/abstraction"
	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/internal/presentation"
)

type ChunkHandler struct {
	uploader abstraction.Uploader
}

func NewChunkHandler(uploader abstraction.Uploader) *ChunkHandler {
	return &ChunkHandler{uploader: uploader}
}

// HandleInit handles POST /media/uploads: opens a chunked upload session
// for the declared content type.
func (h *ChunkHandler) HandleInit(c echo.Context) error {
	receipt, err := h.uploader.InitUpload(c.Request().Context(),
		c.Request().Header.Get(presentation.TypeKey), principal(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, receipt)
}

// HandlePutChunk handles PUT /media/uploads/:upload_id/:index with one
// raw chunk as the body.
func (h *ChunkHandler) HandlePutChunk(c echo.Context) error {
	index, err := strconv.Atoi(c.Param(presentation.IndexParam))
	if err != nil || index < 0 {
		return fail(c, apperr.ErrInvalidInput)
	}

	receipt, err := h.uploader.PutChunk(c.Request().Context(),
		c.Param(presentation.UploadIDParam), index, c.Request().Body, principal(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, receipt)
}

// HandleComplete handles POST /media/uploads/:upload_id: assembles the
// chunks and runs the result through the ingestion pipeline.
func (h *ChunkHandler) HandleComplete(c echo.Context) error {
	outcome, err := h.uploader.CompleteUpload(c.Request().Context(),
		c.Param(presentation.UploadIDParam), c.QueryParam("title"),
		model.Flags{
			NSFW:             queryBool(c, "nsfw", false),
			Unlisted:         queryBool(c, "unlisted", false),
			CommentsDisabled: queryBool(c, "comments_disabled", true),
		},
		principal(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(statusForOutcome(outcome), outcome)
}
