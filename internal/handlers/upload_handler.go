package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lucymaru126/montage/pkg/objectstore"
)

// 10 MiB, matches the client-side cap
const maxUploadBytes = 10 << 20

var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"video/mp4":  true,
}

// UploadHandler handles media uploads for posts and stories
type UploadHandler struct {
	store *objectstore.Store
}

// NewUploadHandler creates a new UploadHandler. The store may be nil
// when object storage is not configured; uploads then return 503.
func NewUploadHandler(store *objectstore.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.Upload)
}

// Upload stores a multipart file and returns its public URL
func (h *UploadHandler) Upload(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Object storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A file field is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "File exceeds the 10 MiB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported media type")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer file.Close()

	url, err := h.store.Upload(c.Request().Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"url": url}})
}
