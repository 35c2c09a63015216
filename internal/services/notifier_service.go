package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"onboarding_backend/internal/logger"
	"onboarding_backend/internal/services/dto"

	"github.com/sony/gobreaker/v2"
)

// NotifierService delivers the completion webhook. Delivery is at-most-once
// and best-effort: the returned error exists for logging and tests, callers
// must not let it change the session outcome.
type NotifierService interface {
	NotifyCompletion(ctx context.Context, token string, files []dto.DocumentDescriptor, metadata *dto.FormMetadata) error
}

type notifierService struct {
	webhookURL string
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker[struct{}]

	// recordDelivery reports "ok" or "failed" to the metrics layer.
	recordDelivery func(status string)
}

func NewNotifierService(webhookURL string, timeout time.Duration, recordDelivery func(status string)) NotifierService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// The breaker keeps a dead endpoint from adding full-timeout latency to
	// every submission; a short-circuited send is just one more lost
	// notification, which the contract already tolerates.
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "completion-webhook",
		Timeout: 60 * time.Second,
	})

	if recordDelivery == nil {
		recordDelivery = func(string) {}
	}

	return &notifierService{
		webhookURL:     webhookURL,
		client:         &http.Client{Timeout: timeout},
		breaker:        breaker,
		recordDelivery: recordDelivery,
	}
}

func (s *notifierService) NotifyCompletion(ctx context.Context, token string, files []dto.DocumentDescriptor, metadata *dto.FormMetadata) error {
	if s.webhookURL == "" {
		logger.CtxWarn(ctx, "webhook URL not configured, skipping completion notification")
		return nil
	}

	payload := map[string]interface{}{
		"token":  token,
		"status": "success",
		"files":  files,
	}
	for key, value := range metadata.WebhookFields() {
		payload[key] = value
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.CtxWithError(ctx, "failed to encode webhook payload", err)
		return err
	}

	_, err = s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.post(ctx, body)
	})
	if err != nil {
		s.recordDelivery("failed")
		logger.CtxWarn(ctx, "completion webhook delivery failed", "error", err.Error())
		return err
	}

	s.recordDelivery("ok")
	logger.CtxInfo(ctx, "completion webhook delivered", "files", len(files))
	return nil
}

func (s *notifierService) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
