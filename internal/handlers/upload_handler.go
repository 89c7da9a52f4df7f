package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/connectsphere/backend/internal/blob"
	"github.com/connectsphere/backend/internal/safety"
)

// UploadHandler accepts media uploads, runs them through the safety
// check and stores them in the blob store.
type UploadHandler struct {
	blobStore      blob.Store
	safetyChecker  safety.Checker
	maxUploadBytes int64
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(blobStore blob.Store, safetyChecker safety.Checker, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		blobStore:      blobStore,
		safetyChecker:  safetyChecker,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.Upload)
}

var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"video/mp4":  true,
	"video/webm": true,
	"audio/mpeg": true,
	"audio/ogg":  true,
	"audio/webm": true,
	"audio/wav":  true,
}

// Upload stores a multipart media file and returns its storage path
// and public URL
func (h *UploadHandler) Upload(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file field")
	}
	if fileHeader.Size > h.maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds the upload size limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Unsupported media type: "+contentType)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxUploadBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	if int64(len(data)) > h.maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds the upload size limit")
	}

	if err := h.safetyChecker.EnsureSafe(c.Request().Context(), data, contentType); err != nil {
		return httpError(err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	path := fmt.Sprintf("uploads/%d/%s/%s%s", userID, time.Now().UTC().Format("2006-01-02"), uuid.NewString(), ext)

	if err := h.blobStore.Put(c.Request().Context(), path, data, contentType); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store uploaded file")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"path": path,
		"url":  h.blobStore.PublicURL(path),
	})
}
