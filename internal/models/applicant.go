package models

// Applicant is one job applicant invited to upload documents. The row is
// created by the intake automation before the upload link is sent out; this
// service only reads it and flips DocumentsUploaded after a successful
// submission.
type Applicant struct {
	BaseModel
	FirstName string `gorm:"column:first_name" json:"first_name"`
	Phone     string `gorm:"column:phone" json:"phone,omitempty"`

	// UploadToken is the single-use opaque token embedded in the upload link.
	UploadToken string `gorm:"column:document_upload_token;uniqueIndex;not null" json:"-"`

	// DocumentsUploaded marks the application as complete; a session hitting
	// a completed record gets the already-done screen, never the form.
	DocumentsUploaded bool `gorm:"column:documents_uploaded;default:false" json:"documents_uploaded"`
}

// DisplayName picks the name shown on the form: the record's first name wins
// over the fallback supplied in the URL, and "there" covers both being empty.
func (a *Applicant) DisplayName(fallback string) string {
	if a.FirstName != "" {
		return a.FirstName
	}
	if fallback != "" {
		return fallback
	}
	return "there"
}
