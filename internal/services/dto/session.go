package dto

import (
	"onboarding_backend/internal/models"
)

// SessionQuery is what the upload link carries: the token plus an optional
// display-name fallback.
type SessionQuery struct {
	Token string `form:"token" json:"token"`
	Name  string `form:"name" json:"name"`
}

// SessionResponse is the gated view state returned to the form.
type SessionResponse struct {
	State         models.SessionState `json:"state"`
	ApplicantName string              `json:"applicant_name,omitempty"`
	Message       string              `json:"message,omitempty"`
}

// DocumentDescriptor describes one stored file. The json keys are the wire
// shape of the completion webhook and must not change.
type DocumentDescriptor struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// SubmitResponse is the outcome of a submission.
type SubmitResponse struct {
	State         models.SessionState  `json:"state"`
	ApplicantName string               `json:"applicant_name,omitempty"`
	Files         []DocumentDescriptor `json:"files"`
}
