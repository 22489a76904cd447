package usecase

import (
	"context"
	"fmt"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
	"flightwatch-service/pkg/schedule"
	"flightwatch-service/templates"

	"github.com/google/uuid"
)

// StatusProcessor recomputes every active flight's alert status on a fixed
// cadence and notifies about the ones that are urgent right now. Statuses
// are derived fresh from the snapshot and the clock on every run; nothing
// here is authoritative state.
type StatusProcessor struct {
	snapshotRepo repository.SnapshotRepository
	notifier     repository.NotifierRepository
	clock        repository.Clock
	metrics      *metrics.Metrics
	logger       logger.Logger
	alertCap     int
	destination  string
}

// NewStatusProcessor creates a new status processor
func NewStatusProcessor(
	snapshotRepo repository.SnapshotRepository,
	notifier repository.NotifierRepository,
	clock repository.Clock,
	m *metrics.Metrics,
	logger logger.Logger,
	alertCap int,
	destination string,
) *StatusProcessor {
	return &StatusProcessor{
		snapshotRepo: snapshotRepo,
		notifier:     notifier,
		clock:        clock,
		metrics:      m,
		logger:       logger,
		alertCap:     alertCap,
		destination:  destination,
	}
}

// Recompute evaluates today's and tomorrow's active snapshots (tomorrow
// matters for departures just past midnight whose urgent window opens the
// evening before) and sends one urgent alert payload when anything
// qualifies.
func (sp *StatusProcessor) Recompute(ctx context.Context) error {
	now := sp.clock.Now()
	today := schedule.Midnight(now)

	days := []string{
		today.Format(schedule.DayLayout),
		today.AddDate(0, 0, 1).Format(schedule.DayLayout),
	}

	var evaluated []schedule.Evaluated
	errorCount := 0

	for _, day := range days {
		snapshot, err := sp.snapshotRepo.Get(ctx, day)
		if err != nil {
			return fmt.Errorf("failed to load snapshot for %s: %w", day, err)
		}
		if snapshot == nil {
			continue
		}

		dayStatuses := make([]string, 0, len(snapshot.Records))
		for _, rec := range snapshot.Records {
			status := schedule.EvaluateStatus(rec.FlightDate, rec.STD, rec.Updated, now)
			if status.Kind == schedule.StatusError {
				errorCount++
				sp.metrics.ErrorsCount.WithLabelValues("status").Inc()
				sp.logger.Warn("Status evaluation error",
					"code", rec.Code,
					"flightDate", rec.FlightDate,
					"std", rec.STD,
					"reason", status.Reason)
			}
			dayStatuses = append(dayStatuses, status.String())
			evaluated = append(evaluated, schedule.Evaluated{Record: rec, Status: status})
		}

		// Display values only; a write failure must not block alerting.
		if err := sp.snapshotRepo.UpdateStatuses(ctx, day, dayStatuses, now); err != nil {
			sp.logger.Warn("Failed to write display statuses", "day", day, "error", err)
		}
	}

	if len(evaluated) == 0 {
		sp.logger.Debug("No active snapshots to evaluate", "days", days)
		return nil
	}

	urgent, truncated := schedule.SelectUrgent(evaluated, sp.alertCap)
	sp.logger.Info("Status recompute completed",
		"evaluated", len(evaluated),
		"urgent", len(urgent),
		"truncated", truncated,
		"statusErrors", errorCount)

	if len(urgent) == 0 {
		return nil
	}
	if truncated {
		sp.logger.Warn("Urgent flights exceed alert cap, alerting first only",
			"cap", sp.alertCap)
	}

	return sp.sendUrgentAlert(ctx, urgent, truncated)
}

func (sp *StatusProcessor) sendUrgentAlert(ctx context.Context, urgent []schedule.Evaluated, truncated bool) error {
	text, flights := templates.UrgentAlertMessage(urgent, truncated)

	payload := &entity.AlertPayload{
		ID:          uuid.NewString(),
		Type:        entity.UrgentFlightAlert,
		Destination: sp.destination,
		Text:        text,
		Flights:     flights,
		Truncated:   truncated,
		CreatedAt:   sp.clock.Now(),
	}

	taskID, err := sp.notifier.SendAlert(ctx, payload)
	if err != nil {
		sp.metrics.ErrorsCount.WithLabelValues("notify").Inc()
		return fmt.Errorf("failed to send urgent alert: %w", err)
	}

	sp.metrics.AlertsSent.Inc()
	sp.logger.Info("Urgent alert sent", "taskId", taskID, "flights", len(flights))
	return nil
}
