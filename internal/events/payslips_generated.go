package events

import "time"

const (
	PayslipsGeneratedTopic = "timeclock.payroll.payslips.generated.v1"
	PayslipsGeneratedType  = "payroll.payslips_generated"
)

// PayslipsGeneratedEvent announces that a week's payslips were written; the
// consumer locks that week's time entries in response.
type PayslipsGeneratedEvent struct {
	EventType  string    `json:"event_type"`
	WeekStart  string    `json:"week_start"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}
