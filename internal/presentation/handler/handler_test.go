package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediavault/internal/application/usecase"
	"mediavault/internal/domain/dto"
	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/fingerprint"
	"mediavault/internal/infrastructure/catalog"
	"mediavault/internal/infrastructure/session"
	"mediavault/internal/presentation"
	"mediavault/internal/presentation/middleware"
)

type passthroughTranscoder struct{}

func (passthroughTranscoder) Normalize(_ context.Context, inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".mp4"

	return outputPath, os.Rename(inputPath, outputPath)
}

func (passthroughTranscoder) ExtractSegment(_ context.Context, path string, _, _ int64) ([]byte, error) {
	return os.ReadFile(path)
}

type sha256Fingerprinter struct{}

func (sha256Fingerprinter) Fingerprint(_ context.Context, path string, _ bool) (fingerprint.Digest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fingerprint.Digest{}, err
	}

	sum := sha256.Sum256(data)

	return fingerprint.Digest{SHA256: hex.EncodeToString(sum[:])}, nil
}

// newTestServer wires the full route table over an in-memory stack, with
// admin id 99 as the only moderator.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	dir := t.TempDir()
	cat, err := catalog.New(dir, catalog.Config{})
	require.NoError(t, err)

	sessions := session.New(dir, session.Config{})
	admins := usecase.NewAdminRoster(map[string][]uint64{"nostr": {99}})

	uploader := usecase.NewUploader(cat, sessions, passthroughTranscoder{},
		sha256Fingerprinter{}, nil, dir, 1)

	uploadHandler := NewUploadHandler(uploader)
	chunkHandler := NewChunkHandler(uploader)
	getHandler := NewGetHandler(usecase.NewGetter(cat), usecase.NewLister(cat))
	deleteHandler := NewDeleteHandler(usecase.NewDeleter(cat, admins))
	flagsHandler := NewFlagsHandler(usecase.NewFlagUpdater(cat, admins))
	fileHandler := NewFileHandler(usecase.NewResolver(cat, passthroughTranscoder{}))
	commentHandler := NewCommentHandler(usecase.NewCommenter(cat, cat, admins))

	e := echo.New()
	authed := middleware.PrincipalMiddleware()

	e.POST("/media", uploadHandler.HandleUpload, authed)
	e.POST("/media/uploads", chunkHandler.HandleInit, authed)
	e.PUT("/media/uploads/:upload_id/:index", chunkHandler.HandlePutChunk, authed)
	e.POST("/media/uploads/:upload_id", chunkHandler.HandleComplete, authed)
	e.GET("/media", getHandler.HandleList)
	e.GET("/media/:id", getHandler.HandleGet)
	e.GET("/media/:id/file", fileHandler.HandleFile)
	e.DELETE("/media/:id", deleteHandler.HandleDelete, authed)
	e.PATCH("/media/:id/flags", flagsHandler.HandleUpdateFlags, authed)
	e.POST("/media/:id/comments", commentHandler.HandleAdd, authed)
	e.GET("/media/:id/comments", commentHandler.HandleList)
	e.DELETE("/media/:id/comments/:comment_id", commentHandler.HandleDelete, authed)

	return e
}

func authHeaders(req *http.Request, id uint64, name string) {
	req.Header.Set(presentation.ProviderHeader, "nostr")
	req.Header.Set(presentation.UserIDHeader, strconv.FormatUint(id, 10))
	req.Header.Set(presentation.UsernameHeader, name)
}

func doUpload(t *testing.T, e *echo.Echo, query, body string, userID uint64) (*httptest.ResponseRecorder, dto.UploadOutcome) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/media?"+query, strings.NewReader(body))
	req.Header.Set(presentation.TypeKey, "text/plain")
	authHeaders(req, userID, "user")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var outcome dto.UploadOutcome
	if rec.Code < 300 || rec.Code == http.StatusConflict {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	}

	return rec, outcome
}

func TestUploadGetListFile(t *testing.T) {
	e := newTestServer(t)

	rec, outcome := doUpload(t, e, "title=note", "hello, world", 1)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, dto.OutcomeNew, outcome.Outcome)
	require.NotNil(t, outcome.Item)

	// Metadata lookup.
	req := httptest.NewRequest(http.MethodGet, "/media/"+outcome.Item.ID, http.NoBody)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var item model.MediaItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "note", item.Title)
	assert.Equal(t, "text/plain", item.ContentType)

	// Listing by class.
	req = httptest.NewRequest(http.MethodGet, "/media?class=text", http.NoBody)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.MediaItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)

	// Full file download.
	req = httptest.NewRequest(http.MethodGet, "/media/"+outcome.Item.ID+"/file", http.NoBody)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello, world", rec.Body.String())
	assert.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))

	// Byte-range request.
	req = httptest.NewRequest(http.MethodGet, "/media/"+outcome.Item.ID+"/file", http.NoBody)
	req.Header.Set("Range", "bytes=0-4")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
}

func TestUploadExactDuplicateAnswers409(t *testing.T) {
	e := newTestServer(t)

	rec, first := doUpload(t, e, "title=note", "same bytes", 1)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, second := doUpload(t, e, "title=other", "same bytes", 2)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.OutcomeDuplicateExact, second.Outcome)
	assert.Equal(t, first.Item.ID, second.OriginalID)
	assert.Nil(t, second.Item, "no entry is created for an exact duplicate")
}

func TestUploadRequiresAuth(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/media?title=x", strings.NewReader("body"))
	req.Header.Set(presentation.TypeKey, "text/plain")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChunkedUploadOverHTTP(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/media/uploads", http.NoBody)
	req.Header.Set(presentation.TypeKey, "text/plain")
	authHeaders(req, 1, "alice")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var receipt dto.InitUploadReceipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	require.NotEmpty(t, receipt.UploadID)

	for i, chunk := range []string{"hello,", " world"} {
		req = httptest.NewRequest(http.MethodPut,
			fmt.Sprintf("/media/uploads/%s/%d", receipt.UploadID, i), strings.NewReader(chunk))
		authHeaders(req, 1, "alice")
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/media/uploads/"+receipt.UploadID+"?title=assembled", http.NoBody)
	authHeaders(req, 1, "alice")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var outcome dto.UploadOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, dto.OutcomeNew, outcome.Outcome)
	assert.Equal(t, int64(12), outcome.Item.SizeBytes)
}

func TestDeletePermissions(t *testing.T) {
	e := newTestServer(t)

	_, outcome := doUpload(t, e, "title=note", "owned by one", 1)
	require.NotNil(t, outcome.Item)

	// A stranger may not delete.
	req := httptest.NewRequest(http.MethodDelete, "/media/"+outcome.Item.ID, http.NoBody)
	authHeaders(req, 2, "bob")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// An admin may.
	req = httptest.NewRequest(http.MethodDelete, "/media/"+outcome.Item.ID, http.NoBody)
	authHeaders(req, 99, "mod")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/media/"+outcome.Item.ID, http.NoBody)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFlagUpdatePermissions(t *testing.T) {
	e := newTestServer(t)

	_, outcome := doUpload(t, e, "title=note", "flagged content", 1)
	require.NotNil(t, outcome.Item)

	patch := func(userID uint64, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/media/"+outcome.Item.ID+"/flags",
			strings.NewReader(body))
		req.Header.Set(presentation.TypeKey, echo.MIMEApplicationJSON)
		authHeaders(req, userID, "user")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		return rec
	}

	// The owner may toggle visibility.
	rec := patch(1, `{"unlisted":true,"comments_disabled":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// The owner may not flip the adult-content flag.
	rec = patch(1, `{"nsfw":true,"unlisted":true,"comments_disabled":true}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A moderator may.
	rec = patch(99, `{"nsfw":true,"unlisted":true,"comments_disabled":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A stranger may not touch anything.
	rec = patch(2, `{"unlisted":false}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCommentFlow(t *testing.T) {
	e := newTestServer(t)

	_, outcome := doUpload(t, e, "title=note&comments_disabled=false", "commentable", 1)
	require.NotNil(t, outcome.Item)
	base := "/media/" + outcome.Item.ID + "/comments"

	req := httptest.NewRequest(http.MethodPost, base, strings.NewReader(`{"text":"first!"}`))
	req.Header.Set(presentation.TypeKey, echo.MIMEApplicationJSON)
	authHeaders(req, 2, "bob")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var comment model.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	assert.Equal(t, "first!", comment.Text)

	// Listing is public.
	req = httptest.NewRequest(http.MethodGet, base, http.NoBody)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var thread []model.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &thread))
	require.Len(t, thread, 1)

	// Only the author or a moderator may delete.
	req = httptest.NewRequest(http.MethodDelete, base+"/"+comment.ID, http.NoBody)
	authHeaders(req, 3, "carol")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, base+"/"+comment.ID, http.NoBody)
	authHeaders(req, 2, "bob")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCommentsDisabledByDefault(t *testing.T) {
	e := newTestServer(t)

	_, outcome := doUpload(t, e, "title=note", "no comments", 1)
	require.NotNil(t, outcome.Item)

	req := httptest.NewRequest(http.MethodPost, "/media/"+outcome.Item.ID+"/comments",
		strings.NewReader(`{"text":"hi"}`))
	req.Header.Set(presentation.TypeKey, echo.MIMEApplicationJSON)
	authHeaders(req, 2, "bob")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
