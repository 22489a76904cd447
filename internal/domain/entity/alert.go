package entity

import (
	"time"
)

// AlertType defines the type of the alert payload
type AlertType string

const (
	UrgentFlightAlert AlertType = "urgent_flight"
	ChangeSummary     AlertType = "change_summary"
)

// AlertFlight is one flight line inside an alert payload.
type AlertFlight struct {
	Code      string `json:"code"`
	Reg       string `json:"reg,omitempty"`
	Route     string `json:"route,omitempty"`
	STD       string `json:"std"`
	StatusStr string `json:"status"`
}

// AlertPayload is the structured notification handed to the notifier.
// Delivery success or failure comes back as a return value; the core never
// retries (retry policy belongs to the notifier).
type AlertPayload struct {
	ID          string        `json:"id,omitempty"`
	Type        AlertType     `json:"type"`
	Destination string        `json:"destination"`
	Text        string        `json:"text"`
	Flights     []AlertFlight `json:"flights,omitempty"`
	Truncated   bool          `json:"truncated,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}
