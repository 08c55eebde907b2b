package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"mediavault/internal/domain/apperr"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(apperr.ErrInvalidInput))
	assert.Equal(t, http.StatusRequestEntityTooLarge, apperr.StatusOf(apperr.ErrPayloadTooLarge))
	assert.Equal(t, http.StatusUnsupportedMediaType, apperr.StatusOf(apperr.ErrContentMismatch))
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(apperr.ErrNotFound))
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(apperr.ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(apperr.ErrTranscodeFailed))
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(errors.New("anything else")))
}

func TestStatusOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", apperr.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(wrapped))
}
