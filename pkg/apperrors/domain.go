package apperrors

import "net/http"

// Session-domain error factories. The upload form distinguishes an unknown
// or expired token from a token whose documents are already in, so the two
// get separate codes and statuses.

func NewInvalidTokenError(message string) *AppError {
	return New(CodeInvalidToken, "session", message, http.StatusNotFound)
}

func NewAlreadyCompletedError(message string) *AppError {
	return New(CodeAlreadyCompleted, "session", message, http.StatusConflict)
}

// NewUploadFailedError wraps a storage failure for a required document.
// The message carries the human label of the failing slot.
func NewUploadFailedError(err error, message string) *AppError {
	return Wrap(err, CodeUploadFailed, "upload", message, http.StatusBadGateway)
}
