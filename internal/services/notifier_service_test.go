package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onboarding_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionFiles() []dto.DocumentDescriptor {
	return []dto.DocumentDescriptor{
		{Type: "passport", URL: "https://cdn.test/abc123/passport.jpg", Filename: "photo.jpg", Path: "abc123/passport.jpg"},
		{Type: "cscs_front", URL: "https://cdn.test/abc123/cscs_front.png", Filename: "front.png", Path: "abc123/cscs_front.png"},
		{Type: "cscs_back", URL: "https://cdn.test/abc123/cscs_back.pdf", Filename: "back.pdf", Path: "abc123/cscs_back.pdf"},
	}
}

func TestNotifyCompletionPayload(t *testing.T) {
	var received map[string]interface{}
	var contentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewNotifierService(server.URL, 5*time.Second, nil)

	err := svc.NotifyCompletion(context.Background(), "abc123", completionFiles(), nil)
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "abc123", received["token"])
	assert.Equal(t, "success", received["status"])

	files, ok := received["files"].([]interface{})
	require.True(t, ok)
	require.Len(t, files, 3)

	first, ok := files[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "passport", first["type"])
	assert.Equal(t, "https://cdn.test/abc123/passport.jpg", first["url"])
	assert.Equal(t, "photo.jpg", first["filename"])
	assert.Equal(t, "abc123/passport.jpg", first["path"])
}

func TestNotifyCompletionFlattensMetadata(t *testing.T) {
	var received map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewNotifierService(server.URL, 5*time.Second, nil)

	metadata := &dto.FormMetadata{
		Variant: dto.VariantReferences,
		References: []dto.Reference{
			{Name: "Jo Smith", Phone: "07000000001", Company: "Acme"},
			{Name: "Alex Doe", Phone: "07000000002", Company: "Beta"},
		},
	}

	err := svc.NotifyCompletion(context.Background(), "abc123", completionFiles(), metadata)
	require.NoError(t, err)

	// The downstream workflow matches on flat top-level keys, not a nested
	// metadata object.
	assert.Equal(t, "Jo Smith", received["reference_1_name"])
	assert.Equal(t, "07000000001", received["reference_1_phone"])
	assert.Equal(t, "Acme", received["reference_1_company"])
	assert.Equal(t, "Alex Doe", received["reference_2_name"])
	assert.NotContains(t, received, "references")
}

func TestNotifyCompletionNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var statuses []string
	svc := NewNotifierService(server.URL, 5*time.Second, func(status string) {
		statuses = append(statuses, status)
	})

	err := svc.NotifyCompletion(context.Background(), "abc123", completionFiles(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, []string{"failed"}, statuses)
}

func TestNotifyCompletionNoURLConfigured(t *testing.T) {
	var statuses []string
	svc := NewNotifierService("", 5*time.Second, func(status string) {
		statuses = append(statuses, status)
	})

	err := svc.NotifyCompletion(context.Background(), "abc123", completionFiles(), nil)
	assert.NoError(t, err)
	assert.Empty(t, statuses, "a skipped delivery is not an attempt")
}

func TestNotifyCompletionRecordsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var statuses []string
	svc := NewNotifierService(server.URL, 5*time.Second, func(status string) {
		statuses = append(statuses, status)
	})

	err := svc.NotifyCompletion(context.Background(), "abc123", completionFiles(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, statuses)
}
