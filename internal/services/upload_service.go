package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"onboarding_backend/internal/logger"
	"onboarding_backend/internal/models"
	"onboarding_backend/internal/repositories"
	"onboarding_backend/internal/services/dto"
	"onboarding_backend/internal/storage"
	"onboarding_backend/internal/validator"
	"onboarding_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UploadService runs one form submission end to end: precondition checks,
// the ordered document uploads, the completion-flag flip and the best-effort
// webhook.
type UploadService interface {
	// Submit processes a submission. On a required-upload failure the
	// returned response is still populated with the descriptors stored so
	// far and the session state rolled back to awaiting_submission,
	// alongside the error.
	Submit(ctx context.Context, db *gorm.DB, req *dto.SubmitRequest) (*dto.SubmitResponse, error)
}

// UploadConfig bounds a submission.
type UploadConfig struct {
	MaxFileSize     int64
	AdditionalSlots int
	FormVariant     dto.FormVariant
	StorageProvider string
}

func GetDefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize:     10 * 1024 * 1024,
		AdditionalSlots: 5,
		FormVariant:     dto.VariantNone,
		StorageProvider: "local",
	}
}

type uploadService struct {
	applicantRepo repositories.ApplicantRepository
	documentRepo  repositories.DocumentRepository
	storage       storage.Storage
	notifier      NotifierService
	validator     *validator.Validator
	config        *UploadConfig
}

func NewUploadService(
	applicantRepo repositories.ApplicantRepository,
	documentRepo repositories.DocumentRepository,
	storageInstance storage.Storage,
	notifier NotifierService,
	config *UploadConfig,
) UploadService {
	if config == nil {
		config = GetDefaultUploadConfig()
	}

	return &uploadService{
		applicantRepo: applicantRepo,
		documentRepo:  documentRepo,
		storage:       storageInstance,
		notifier:      notifier,
		validator:     validator.New(),
		config:        config,
	}
}

// DerivePath builds the deterministic storage path for a slot. The extension
// is whatever follows the last dot of the original filename; a name without
// a dot yields an empty extension and the path keeps its trailing dot.
// Deterministic paths plus overwrite-allowed saves make re-submission
// idempotent per slot.
func DerivePath(token string, slot models.DocumentSlot, filename string) string {
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = filename[idx+1:]
	}
	return fmt.Sprintf("%s/%s.%s", token, slot, ext)
}

func (s *uploadService) Submit(ctx context.Context, db *gorm.DB, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	ctx = logger.WithUploadToken(ctx, req.Token)

	applicant, err := s.applicantRepo.FindByUploadToken(db, req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicantNotFound) {
			return nil, apperrors.NewInvalidTokenError(MsgInvalidToken)
		}
		return nil, apperrors.InternalError(err)
	}
	if applicant.DocumentsUploaded {
		return nil, apperrors.NewAlreadyCompletedError(MsgAlreadyCompleted)
	}

	session := models.NewUploadSession(req.Token)
	_ = session.Transition(models.SessionAwaitingSubmission)
	session.ApplicantName = applicant.DisplayName(req.Name)

	// Preconditions, metadata first, then files. No storage I/O happens
	// until everything is present.
	if err := s.validateMetadata(req.Metadata); err != nil {
		return nil, err
	}
	if err := s.validateFiles(req.Files); err != nil {
		return nil, err
	}

	_ = session.Transition(models.SessionUploading)

	uploaded := make([]dto.DocumentDescriptor, 0, len(models.RequiredSlots))

	// Required documents, strictly sequential and in fixed order so a
	// failure is attributable to exactly one labelled slot.
	for _, required := range models.RequiredSlots {
		file := req.Files[required.Slot]

		descriptor, err := s.uploadSlot(ctx, db, applicant.ID, req.Token, required.Slot, file)
		if err != nil {
			// Abort the submission. Earlier slots stay in storage (no
			// rollback); a retry re-uploads all three onto the same paths.
			_ = session.Transition(models.SessionAwaitingSubmission)
			return &dto.SubmitResponse{
					State:         session.State,
					ApplicantName: session.ApplicantName,
					Files:         uploaded,
				}, apperrors.NewUploadFailedError(err,
					fmt.Sprintf("Failed to upload %s: %v", required.Label, err))
		}
		uploaded = append(uploaded, *descriptor)
	}

	// Optional documents: same mechanics, but failures are swallowed and
	// never abort the submission.
	for n := 1; n <= s.config.AdditionalSlots; n++ {
		slot := models.AdditionalSlot(n)
		file, ok := req.Files[slot]
		if !ok || file == nil {
			continue
		}

		descriptor, err := s.uploadSlot(ctx, db, applicant.ID, req.Token, slot, file)
		if err != nil {
			logger.CtxWarn(ctx, "optional document upload failed, skipping",
				"slot", slot, "error", err.Error())
			continue
		}
		uploaded = append(uploaded, *descriptor)
	}

	if err := s.applicantRepo.MarkDocumentsUploaded(db, applicant.ID); err != nil {
		_ = session.Transition(models.SessionAwaitingSubmission)
		return &dto.SubmitResponse{
			State:         session.State,
			ApplicantName: session.ApplicantName,
			Files:         uploaded,
		}, apperrors.InternalError(err)
	}

	_ = session.Transition(models.SessionComplete)

	// Fire-and-forget: the notifier logs its own failures and the outcome
	// never changes the session state.
	if err := s.notifier.NotifyCompletion(ctx, req.Token, uploaded, req.Metadata); err != nil {
		logger.CtxWarn(ctx, "completion notification failed", "error", err.Error())
	}

	return &dto.SubmitResponse{
		State:         session.State,
		ApplicantName: session.ApplicantName,
		Files:         uploaded,
	}, nil
}

// uploadSlot stores one file under its deterministic path, resolves the
// public URL and records the document row.
func (s *uploadService) uploadSlot(ctx context.Context, db *gorm.DB, applicantID, token string, slot models.DocumentSlot, file *dto.FileInput) (*dto.DocumentDescriptor, error) {
	path := DerivePath(token, slot, file.Filename)

	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.Save(ctx, path, reader, contentType); err != nil {
		return nil, err
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		ApplicantID:     applicantID,
		Slot:            string(slot),
		Path:            path,
		URL:             url,
		OriginalName:    file.Filename,
		MimeType:        contentType,
		Size:            file.Size,
		StorageProvider: s.config.StorageProvider,
	}
	if err := s.documentRepo.Save(db, doc); err != nil {
		// The object is durably stored; a missing audit row must not fail
		// the applicant's submission.
		logger.CtxWarn(ctx, "failed to record document row", "slot", slot, "error", err.Error())
	}

	return &dto.DocumentDescriptor{
		Type:     string(slot),
		URL:      url,
		Filename: file.Filename,
		Path:     path,
	}, nil
}

// validateMetadata enforces the active form variant: all of its fields are
// mandatory and checked before the documents.
func (s *uploadService) validateMetadata(metadata *dto.FormMetadata) error {
	switch s.config.FormVariant {
	case dto.VariantNone, "":
		return nil
	case dto.VariantEmploymentHistory:
		if metadata == nil || len(metadata.Employment) != dto.EmploymentEntryCount {
			return apperrors.ValidationError(map[string]string{
				"employment": fmt.Sprintf("all %d employment entries are required", dto.EmploymentEntryCount),
			})
		}
	case dto.VariantReferences:
		if metadata == nil || len(metadata.References) != dto.ReferenceCount {
			return apperrors.ValidationError(map[string]string{
				"references": fmt.Sprintf("all %d references are required", dto.ReferenceCount),
			})
		}
	default:
		return apperrors.InternalError(fmt.Errorf("unknown form variant: %s", s.config.FormVariant))
	}

	if err := s.validator.Validate(metadata); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			return apperrors.ValidationError(vErr.Errors)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// validateFiles checks that every required slot is filled and every supplied
// file is within the size limit.
func (s *uploadService) validateFiles(files map[models.DocumentSlot]*dto.FileInput) error {
	missing := make(map[string]string)
	for _, required := range models.RequiredSlots {
		if file, ok := files[required.Slot]; !ok || file == nil {
			missing[string(required.Slot)] = fmt.Sprintf("%s is required", required.Label)
		}
	}
	if len(missing) > 0 {
		return apperrors.ValidationError(missing)
	}

	for slot, file := range files {
		if file == nil {
			continue
		}
		if s.config.MaxFileSize > 0 && file.Size > s.config.MaxFileSize {
			return apperrors.ValidationError(map[string]string{
				string(slot): fmt.Sprintf("file exceeds the %d byte limit", s.config.MaxFileSize),
			})
		}
	}
	return nil
}
