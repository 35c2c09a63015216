package repositories

import (
	"testing"
	"time"

	"onboarding_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *models.Document {
	return &models.Document{
		ApplicantID:     "app-1",
		Slot:            "passport",
		Path:            "abc123/passport.jpg",
		URL:             "https://cdn.test/abc123/passport.jpg",
		OriginalName:    "photo.jpg",
		MimeType:        "image/jpeg",
		Size:            2048,
		StorageProvider: "s3",
	}
}

func TestDocumentSaveInsertsNewSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository()

	mock.ExpectQuery(`SELECT (.+) FROM "documents" WHERE applicant_id = \$1 AND slot = \$2`).
		WithArgs("app-1", "passport", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery(`INSERT INTO "documents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("doc-1"))

	err := repo.Save(db, testDocument())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentSaveReplacesExistingSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository()

	created := time.Now().Add(-time.Hour)
	mock.ExpectQuery(`SELECT (.+) FROM "documents" WHERE applicant_id = \$1 AND slot = \$2`).
		WithArgs("app-1", "passport", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "applicant_id", "slot"}).
			AddRow("doc-1", created, "app-1", "passport"))

	mock.ExpectExec(`UPDATE "documents" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	doc := testDocument()
	err := repo.Save(db, doc)
	require.NoError(t, err)

	// The replacement keeps the original row identity.
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, created, doc.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentFindByApplicant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository()

	mock.ExpectQuery(`SELECT (.+) FROM "documents" WHERE applicant_id = \$1 ORDER BY created_at ASC`).
		WithArgs("app-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slot", "path"}).
			AddRow("doc-1", "passport", "abc123/passport.jpg").
			AddRow("doc-2", "cscs_front", "abc123/cscs_front.png"))

	docs, err := repo.FindByApplicant(db, "app-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "passport", docs[0].Slot)
	assert.Equal(t, "cscs_front", docs[1].Slot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentFindByPathNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository()

	mock.ExpectQuery(`SELECT (.+) FROM "documents" WHERE path = \$1`).
		WithArgs("abc123/missing.jpg", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	doc, err := repo.FindByPath(db, "abc123/missing.jpg")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
