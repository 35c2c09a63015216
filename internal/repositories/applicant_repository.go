package repositories

import (
	"errors"

	"onboarding_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicantNotFound = errors.New("applicant not found")
)

type ApplicantRepository interface {
	// FindByUploadToken resolves the single applicant owning the token.
	FindByUploadToken(db *gorm.DB, token string) (*models.Applicant, error)

	// MarkDocumentsUploaded flips the completion flag.
	MarkDocumentsUploaded(db *gorm.DB, applicantID string) error
}

type ApplicantRepositoryImpl struct{}

func NewApplicantRepository() ApplicantRepository {
	return &ApplicantRepositoryImpl{}
}

func (r *ApplicantRepositoryImpl) FindByUploadToken(db *gorm.DB, token string) (*models.Applicant, error) {
	var applicant models.Applicant
	err := db.Where("document_upload_token = ?", token).First(&applicant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return &applicant, nil
}

func (r *ApplicantRepositoryImpl) MarkDocumentsUploaded(db *gorm.DB, applicantID string) error {
	result := db.Model(&models.Applicant{}).
		Where("id = ?", applicantID).
		Update("documents_uploaded", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicantNotFound
	}
	return nil
}
