package dto

import (
	"io"

	"onboarding_backend/internal/models"
)

// FileInput is one selected file. Open is a factory so the orchestrator can
// re-read on retry and tests can substitute in-memory content for multipart
// uploads.
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// SubmitRequest is one full form submission.
type SubmitRequest struct {
	Token string
	Name  string // display fallback from the URL

	// Files keyed by slot; required slots must all be present.
	Files map[models.DocumentSlot]*FileInput

	Metadata *FormMetadata
}
