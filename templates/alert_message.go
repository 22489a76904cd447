package templates

import (
	"fmt"
	"strings"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/schedule"
)

// UrgentAlertMessage formats the urgent-flight alert: one heading, one line
// per flight and a trailing note when the cap cut the list short. Returns
// the message text and the structured flight list for the payload.
func UrgentAlertMessage(urgent []schedule.Evaluated, truncated bool) (string, []entity.AlertFlight) {
	flights := make([]entity.AlertFlight, 0, len(urgent))
	lines := make([]string, 0, len(urgent)+2)
	lines = append(lines, "Flights needing an update NOW:")

	for _, e := range urgent {
		flights = append(flights, entity.AlertFlight{
			Code:      e.Record.Code,
			Reg:       e.Record.VehicleReg,
			Route:     e.Record.DepString + "-" + e.Record.ArrString,
			STD:       e.Record.STD,
			StatusStr: e.Status.String(),
		})
		lines = append(lines, fmt.Sprintf("%s %s %s-%s STD %s",
			e.Record.Code, e.Record.VehicleReg, e.Record.DepString, e.Record.ArrString, e.Record.STD))
	}
	if truncated {
		lines = append(lines, "...more urgent flights exist beyond the alert cap")
	}

	return strings.Join(lines, "\n"), flights
}

// ChangeSummaryMessage formats the one-line revision summary sent after an
// import that changed anything.
func ChangeSummaryMessage(day string, diff schedule.DiffResult) string {
	return fmt.Sprintf("Schedule %s revised: %d new, %d modified, %d unchanged, %d removed",
		day, diff.New, diff.Modified, diff.Unchanged, diff.Removed)
}
