package repositories

import (
	"errors"

	"onboarding_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
)

type DocumentRepository interface {
	// Save upserts the document for its applicant+slot. Re-submissions reuse
	// the same storage path, so one row per slot is the invariant.
	Save(db *gorm.DB, doc *models.Document) error

	FindByApplicant(db *gorm.DB, applicantID string) ([]models.Document, error)
	FindByPath(db *gorm.DB, path string) (*models.Document, error)
}

type DocumentRepositoryImpl struct{}

func NewDocumentRepository() DocumentRepository {
	return &DocumentRepositoryImpl{}
}

func (r *DocumentRepositoryImpl) Save(db *gorm.DB, doc *models.Document) error {
	var existing models.Document
	err := db.Where("applicant_id = ? AND slot = ?", doc.ApplicantID, doc.Slot).
		First(&existing).Error
	if err == nil {
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
		return db.Save(doc).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(doc).Error
}

func (r *DocumentRepositoryImpl) FindByApplicant(db *gorm.DB, applicantID string) ([]models.Document, error) {
	var docs []models.Document
	err := db.Where("applicant_id = ?", applicantID).
		Order("created_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepositoryImpl) FindByPath(db *gorm.DB, path string) (*models.Document, error) {
	var doc models.Document
	err := db.Where("path = ?", path).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}
