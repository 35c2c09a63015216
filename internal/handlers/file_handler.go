package handlers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"onboarding_backend/internal/repositories"
	"onboarding_backend/internal/storage"
	"onboarding_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored documents when local storage is in use; bucket
// storage hands out direct public URLs and never hits these routes.
type FileHandler struct {
	*BaseHandler
	storage      storage.Storage
	documentRepo repositories.DocumentRepository
}

func NewFileHandler(base *BaseHandler, storageInstance storage.Storage, documentRepo repositories.DocumentRepository) *FileHandler {
	return &FileHandler{
		BaseHandler:  base,
		storage:      storageInstance,
		documentRepo: documentRepo,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	{
		files.GET("/*path", h.ServeFile)
		files.HEAD("/*path", h.CheckFileExists)
	}
}

// ServeFile streams a stored document. Only paths recorded in the documents
// table are served; arbitrary storage paths 404.
func (h *FileHandler) ServeFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	doc, err := h.documentRepo.FindByPath(h.GetDB(c), path)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), doc.Path)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found in storage"))
		return
	}
	defer reader.Close()

	c.Header("Content-Type", doc.MimeType)
	c.Header("Content-Length", strconv.FormatInt(doc.Size, 10))
	c.Header("Cache-Control", "private, max-age=3600")
	c.Header("ETag", fmt.Sprintf(`"%s"`, doc.ID))

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.OriginalName))
	} else {
		c.Header("Content-Disposition", "inline")
	}

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers already sent, nothing to answer with
		c.Error(err)
	}
}

// CheckFileExists answers HEAD probes without streaming the body.
func (h *FileHandler) CheckFileExists(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	doc, err := h.documentRepo.FindByPath(h.GetDB(c), path)
	if err != nil {
		c.Status(404)
		return
	}

	exists, err := h.storage.Exists(c.Request.Context(), doc.Path)
	if err != nil || !exists {
		c.Status(404)
		return
	}

	c.Header("Content-Type", doc.MimeType)
	c.Header("Content-Length", strconv.FormatInt(doc.Size, 10))
	c.Status(200)
}
