package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// NotifierRepository delivers alert payloads to the notification service.
// Returns the delivery task id on success; the caller does not retry.
type NotifierRepository interface {
	SendAlert(ctx context.Context, payload *entity.AlertPayload) (string, error)
}
