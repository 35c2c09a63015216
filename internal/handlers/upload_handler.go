package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"onboarding_backend/internal/models"
	"onboarding_backend/internal/observability/metrics"
	"onboarding_backend/internal/services"
	"onboarding_backend/internal/services/dto"
	"onboarding_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const maxMultipartMemory = 32 << 20

// UploadHandler accepts the document submission form.
type UploadHandler struct {
	*BaseHandler
	uploadService   services.UploadService
	formVariant     dto.FormVariant
	additionalSlots int
	metrics         *metrics.HTTPServerMetrics
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService, formVariant dto.FormVariant, additionalSlots int, m *metrics.HTTPServerMetrics) *UploadHandler {
	if additionalSlots <= 0 {
		additionalSlots = 5
	}
	return &UploadHandler{
		BaseHandler:     base,
		uploadService:   uploadService,
		formVariant:     formVariant,
		additionalSlots: additionalSlots,
		metrics:         m,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	session := r.Group("/session")
	{
		session.POST("/documents", h.SubmitDocuments)
	}
}

// SubmitDocuments runs one submission: multipart form in, descriptor list
// out. A required-upload failure comes back as the error envelope and the
// client re-renders the submittable form.
func (h *UploadHandler) SubmitDocuments(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
		return
	}

	req := &dto.SubmitRequest{
		Token:    c.PostForm("token"),
		Name:     c.PostForm("name"),
		Files:    h.collectFiles(c),
		Metadata: h.collectMetadata(c),
	}

	resp, err := h.uploadService.Submit(c.Request.Context(), h.GetDB(c), req)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordSubmission(serviceName, "failed")
		}
		h.HandleServiceError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSubmission(serviceName, "complete")
		for _, f := range resp.Files {
			h.metrics.RecordDocument(serviceName, f.Type)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// collectFiles maps the multipart file parts onto document slots. Absent
// parts simply stay absent; presence checks are the service's job.
func (h *UploadHandler) collectFiles(c *gin.Context) map[models.DocumentSlot]*dto.FileInput {
	files := make(map[models.DocumentSlot]*dto.FileInput)

	for _, required := range models.RequiredSlots {
		if input := h.fileInput(c, string(required.Slot)); input != nil {
			files[required.Slot] = input
		}
	}
	for n := 1; n <= h.additionalSlots; n++ {
		slot := models.AdditionalSlot(n)
		if input := h.fileInput(c, string(slot)); input != nil {
			files[slot] = input
		}
	}

	return files
}

func (h *UploadHandler) fileInput(c *gin.Context, field string) *dto.FileInput {
	header, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fileInputFromHeader(header)
}

func fileInputFromHeader(header *multipart.FileHeader) *dto.FileInput {
	return &dto.FileInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			f, err := header.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

// collectMetadata reads the variant's flat field names off the form. Counts
// and presence are validated by the service, not here.
func (h *UploadHandler) collectMetadata(c *gin.Context) *dto.FormMetadata {
	switch h.formVariant {
	case dto.VariantEmploymentHistory:
		meta := &dto.FormMetadata{Variant: dto.VariantEmploymentHistory}
		for i := 1; i <= dto.EmploymentEntryCount; i++ {
			company := c.PostForm(fmt.Sprintf("company_%d", i))
			endDate := c.PostForm(fmt.Sprintf("end_date_%d", i))
			if company == "" && endDate == "" {
				continue
			}
			meta.Employment = append(meta.Employment, dto.EmploymentEntry{
				Company: company,
				EndDate: endDate,
			})
		}
		return meta
	case dto.VariantReferences:
		meta := &dto.FormMetadata{Variant: dto.VariantReferences}
		for i := 1; i <= dto.ReferenceCount; i++ {
			name := c.PostForm(fmt.Sprintf("reference_%d_name", i))
			phone := c.PostForm(fmt.Sprintf("reference_%d_phone", i))
			company := c.PostForm(fmt.Sprintf("reference_%d_company", i))
			if name == "" && phone == "" && company == "" {
				continue
			}
			meta.References = append(meta.References, dto.Reference{
				Name:    name,
				Phone:   phone,
				Company: company,
			})
		}
		return meta
	default:
		return nil
	}
}
