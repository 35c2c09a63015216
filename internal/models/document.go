package models

import "fmt"

// DocumentSlot is a named document role with a deterministic storage path
// under the applicant's token prefix.
type DocumentSlot string

const (
	SlotPassport  DocumentSlot = "passport"
	SlotCSCSFront DocumentSlot = "cscs_front"
	SlotCSCSBack  DocumentSlot = "cscs_back"
)

// RequiredSlot pairs a slot with the label shown to the applicant. Upload
// errors quote the label, so the order and wording here are user-facing.
type RequiredSlot struct {
	Slot  DocumentSlot
	Label string
}

// RequiredSlots is the fixed upload order of the mandatory documents.
var RequiredSlots = []RequiredSlot{
	{SlotPassport, "Passport or ID"},
	{SlotCSCSFront, "CSCS Card (Front)"},
	{SlotCSCSBack, "CSCS Card (Back)"},
}

// AdditionalSlot names the nth optional document slot (1-based).
func AdditionalSlot(n int) DocumentSlot {
	return DocumentSlot(fmt.Sprintf("additional_%d", n))
}

// Document records one successfully stored file of an applicant.
type Document struct {
	BaseModel
	ApplicantID  string `gorm:"column:applicant_id;not null;index" json:"applicant_id"`
	Slot         string `gorm:"column:slot;not null" json:"slot"`
	Path         string `gorm:"column:path;not null" json:"path"`
	URL          string `gorm:"column:url" json:"url"`
	OriginalName string `gorm:"column:original_name" json:"original_name"`
	MimeType     string `gorm:"column:mime_type" json:"mime_type"`
	Size         int64  `gorm:"column:size" json:"size"`

	StorageProvider string `gorm:"column:storage_provider;default:'local'" json:"-"`
}
