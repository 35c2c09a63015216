package apperrors

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	// System level
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business logic
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Upload session
	CodeInvalidToken     ErrorCode = "INVALID_TOKEN"
	CodeAlreadyCompleted ErrorCode = "ALREADY_COMPLETED"
	CodeUploadFailed     ErrorCode = "UPLOAD_FAILED"
)
