package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"onboarding_backend/internal/models"
	"onboarding_backend/internal/repositories"
	"onboarding_backend/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDocumentRepo struct {
	docs map[string]*models.Document
}

func (f *fakeDocumentRepo) Save(db *gorm.DB, doc *models.Document) error { return nil }

func (f *fakeDocumentRepo) FindByApplicant(db *gorm.DB, applicantID string) ([]models.Document, error) {
	return nil, nil
}

func (f *fakeDocumentRepo) FindByPath(db *gorm.DB, path string) (*models.Document, error) {
	if doc, ok := f.docs[path]; ok {
		return doc, nil
	}
	return nil, repositories.ErrDocumentNotFound
}

type fakeStorage struct {
	objects map[string]string
}

func (f *fakeStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	return nil
}

func (f *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	content, ok := f.objects[path]
	if !ok {
		return nil, repositories.ErrDocumentNotFound
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error { return nil }

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := f.objects[path]
	return ok, nil
}

func (f *fakeStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "/files/" + path, nil
}

func (f *fakeStorage) GetSize(ctx context.Context, path string) (int64, error) {
	return int64(len(f.objects[path])), nil
}

func fileFixture() (*fakeDocumentRepo, *fakeStorage) {
	doc := &models.Document{
		ApplicantID:  "app-1",
		Slot:         "passport",
		Path:         "abc123/passport.jpg",
		OriginalName: "photo.jpg",
		MimeType:     "image/jpeg",
		Size:         int64(len("passport bytes")),
	}
	doc.ID = "doc-1"

	repo := &fakeDocumentRepo{docs: map[string]*models.Document{doc.Path: doc}}
	store := &fakeStorage{objects: map[string]string{doc.Path: "passport bytes"}}
	return repo, store
}

func TestServeFile(t *testing.T) {
	repo, store := fileFixture()
	handler := NewFileHandler(NewBaseHandler(validator.New()), store, repo)
	router := setupTestRouter(handler.RegisterRoutes)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/files/abc123/passport.jpg", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "passport bytes", w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "inline", w.Header().Get("Content-Disposition"))
}

func TestServeFileAsDownload(t *testing.T) {
	repo, store := fileFixture()
	handler := NewFileHandler(NewBaseHandler(validator.New()), store, repo)
	router := setupTestRouter(handler.RegisterRoutes)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/files/abc123/passport.jpg?download=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="photo.jpg"`, w.Header().Get("Content-Disposition"))
}

func TestServeFileUnknownPath(t *testing.T) {
	repo, store := fileFixture()
	handler := NewFileHandler(NewBaseHandler(validator.New()), store, repo)
	router := setupTestRouter(handler.RegisterRoutes)

	// The object exists in storage but has no document row; it must not be
	// reachable.
	store.objects["abc123/secret.jpg"] = "secret"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/files/abc123/secret.jpg", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckFileExists(t *testing.T) {
	repo, store := fileFixture()
	handler := NewFileHandler(NewBaseHandler(validator.New()), store, repo)
	router := setupTestRouter(handler.RegisterRoutes)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/api/v1/files/abc123/passport.jpg", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/api/v1/files/abc123/missing.pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
