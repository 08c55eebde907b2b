package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mediavault/internal/application/usecase/abstraction"
	"mediavault/internal/domain/dto"
	"mediavault/internal/domain/model"
	"mediavault/internal/presentation"
)

type UploadHandler struct {
	uploader abstraction.Uploader
}

func NewUploadHandler(uploader abstraction.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// HandleUpload handles POST /media: a single-shot upload with the raw
// payload as the request body and metadata in query parameters.
func (h *UploadHandler) HandleUpload(c echo.Context) error {
	req := c.Request()

	outcome, err := h.uploader.Upload(req.Context(), abstraction.UploadInput{
		Title:        c.QueryParam("title"),
		ContentType:  req.Header.Get(presentation.TypeKey),
		Body:         req.Body,
		DeclaredSize: req.ContentLength,
		Flags: model.Flags{
			NSFW:             queryBool(c, "nsfw", false),
			Unlisted:         queryBool(c, "unlisted", false),
			CommentsDisabled: queryBool(c, "comments_disabled", true),
		},
		Uploader: principal(c),
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(statusForOutcome(outcome), outcome)
}

// statusForOutcome distinguishes the dedup branches in the status code:
// an exact duplicate creates nothing and answers 409, both commit
// branches answer 201.
func statusForOutcome(outcome *dto.UploadOutcome) int {
	if outcome.Outcome == dto.OutcomeDuplicateExact {
		return http.StatusConflict
	}

	return http.StatusCreated
}
