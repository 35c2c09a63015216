package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"onboarding_backend/internal/models"
	"onboarding_backend/internal/services"
	"onboarding_backend/internal/services/dto"
	"onboarding_backend/internal/validator"
	"onboarding_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestRouter builds a gin engine with the db key pre-set, mirroring what
// DBMiddleware does in production.
func setupTestRouter(register func(*gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), &gorm.DB{})
		c.Next()
	})

	api := r.Group("/api/v1")
	register(api)
	return r
}

type fakeSessionService struct {
	resp      *dto.SessionResponse
	lastQuery *dto.SessionQuery
}

func (f *fakeSessionService) Validate(ctx context.Context, db *gorm.DB, query *dto.SessionQuery) *dto.SessionResponse {
	f.lastQuery = query
	return f.resp
}

var _ services.SessionService = (*fakeSessionService)(nil)

func TestGetSessionAwaitingSubmission(t *testing.T) {
	svc := &fakeSessionService{resp: &dto.SessionResponse{
		State:         models.SessionAwaitingSubmission,
		ApplicantName: "Samuel",
	}}
	handler := NewSessionHandler(NewBaseHandler(validator.New()), svc, nil)
	router := setupTestRouter(handler.RegisterRoutes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session?token=abc123&name=Sam", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.lastQuery)
	assert.Equal(t, "abc123", svc.lastQuery.Token)
	assert.Equal(t, "Sam", svc.lastQuery.Name)

	var body dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.SessionAwaitingSubmission, body.State)
	assert.Equal(t, "Samuel", body.ApplicantName)
}

func TestGetSessionInvalidTokenStillOK(t *testing.T) {
	svc := &fakeSessionService{resp: &dto.SessionResponse{
		State:   models.SessionInvalid,
		Message: services.MsgInvalidToken,
	}}
	handler := NewSessionHandler(NewBaseHandler(validator.New()), svc, nil)
	router := setupTestRouter(handler.RegisterRoutes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session?token=expired", nil)
	router.ServeHTTP(w, req)

	// Invalid is a view state, not a transport error.
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.SessionInvalid, body.State)
	assert.Equal(t, services.MsgInvalidToken, body.Message)
}

func TestGetSessionMissingTokenParam(t *testing.T) {
	svc := &fakeSessionService{resp: &dto.SessionResponse{
		State:   models.SessionInvalid,
		Message: services.MsgMissingToken,
	}}
	handler := NewSessionHandler(NewBaseHandler(validator.New()), svc, nil)
	router := setupTestRouter(handler.RegisterRoutes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastQuery)
	assert.Empty(t, svc.lastQuery.Token)
}
