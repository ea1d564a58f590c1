// Package upload accepts image uploads from the editor (profile photos,
// company logos) and stores them in an S3-compatible bucket.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/folio-space/core/internal/pkg/response"
)

const maxImageSize = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

type Handler struct {
	uploader *Uploader
}

func NewHandler(uploader *Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// RegisterRoutes mounts the upload endpoints. All of them require auth; nil
// uploader (S3 not configured) keeps the routes registered but returns 409.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/upload", authMW)
	g.POST("/image", h.image)
}

func (h *Handler) image(c *gin.Context) {
	if h.uploader == nil {
		apperr.Write(c, apperr.Precondition("image storage is not configured"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperr.Write(c, apperr.Validation("missing file field: %v", err))
		return
	}
	if file.Size > maxImageSize {
		apperr.Write(c, apperr.Validation("file too large, limit is %d bytes", maxImageSize))
		return
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		apperr.Write(c, apperr.Validation("unsupported content type %q", contentType))
		return
	}

	payload, err := readMultipart(file)
	if err != nil {
		apperr.Write(c, err)
		return
	}

	key := fmt.Sprintf("images/%s%s", uuid.New().String(), objectExt(file.Filename, ext))
	url, err := h.uploader.Put(c.Request.Context(), key, payload, contentType)
	if err != nil {
		apperr.Write(c, err)
		return
	}

	response.Created(c, gin.H{"url": url, "key": key})
}

func readMultipart(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImageSize+1))
}

// objectExt prefers the original filename's extension when it agrees with the
// declared content type family.
func objectExt(filename, fallback string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
		return ext
	}
	return fallback
}
