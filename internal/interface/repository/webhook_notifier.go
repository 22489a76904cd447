package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// WebhookNotifier delivers alert payloads to the notification service over
// HTTP. Delivery failures come back as errors; retrying is the notifier
// service's concern, not ours.
type WebhookNotifier struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(baseURL string, logger logger.Logger) repository.NotifierRepository {
	if baseURL == "" {
		baseURL = os.Getenv("NOTIFIER_ENDPOINT")
	}

	return &WebhookNotifier{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: os.Getenv("NOTIFIER_TOKEN"),
	}
}

// SendAlert posts an alert payload and returns the delivery task ID
func (r *WebhookNotifier) SendAlert(ctx context.Context, payload *entity.AlertPayload) (string, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	r.logger.Info("Sending alert payload",
		"type", payload.Type,
		"destination", payload.Destination,
		"flights", len(payload.Flights))

	url := fmt.Sprintf("%s/api/v1/alerts", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("notifier returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID string `json:"taskId"`
			Status string `json:"status"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return "", fmt.Errorf("notifier rejected alert: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("Alert delivered",
		"taskId", response.Data.TaskID,
		"type", payload.Type)

	return response.Data.TaskID, nil
}
