package dto

import "fmt"

// FormVariant selects which metadata fields the form collects alongside the
// documents. The page variants found in the wild only differ in this set, so
// they collapse into one configurable code path.
type FormVariant string

const (
	VariantNone              FormVariant = "none"
	VariantEmploymentHistory FormVariant = "employment_history"
	VariantReferences        FormVariant = "references"
)

const (
	EmploymentEntryCount = 3
	ReferenceCount       = 2
)

// EmploymentEntry is one previous-employment record.
type EmploymentEntry struct {
	Company string `json:"company" validate:"notblank"`
	EndDate string `json:"end_date" validate:"notblank"`
}

// Reference is one contactable referee.
type Reference struct {
	Name    string `json:"name" validate:"notblank"`
	Phone   string `json:"phone" validate:"notblank"`
	Company string `json:"company" validate:"notblank"`
}

// FormMetadata holds the variant-dependent field set of a submission.
type FormMetadata struct {
	Variant    FormVariant       `json:"variant" validate:"oneof=none employment_history references"`
	Employment []EmploymentEntry `json:"employment,omitempty" validate:"omitempty,dive"`
	References []Reference       `json:"references,omitempty" validate:"omitempty,dive"`
}

// WebhookFields flattens the metadata into the fixed key names the downstream
// workflow matches on.
func (m *FormMetadata) WebhookFields() map[string]string {
	fields := make(map[string]string)
	if m == nil {
		return fields
	}

	switch m.Variant {
	case VariantEmploymentHistory:
		for i, e := range m.Employment {
			fields[fmt.Sprintf("company_%d", i+1)] = e.Company
			fields[fmt.Sprintf("end_date_%d", i+1)] = e.EndDate
		}
	case VariantReferences:
		for i, r := range m.References {
			fields[fmt.Sprintf("reference_%d_name", i+1)] = r.Name
			fields[fmt.Sprintf("reference_%d_phone", i+1)] = r.Phone
			fields[fmt.Sprintf("reference_%d_company", i+1)] = r.Company
		}
	}

	return fields
}
