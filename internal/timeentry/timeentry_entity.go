package timeentry

import (
	"time"

	"github.com/google/uuid"
)

type TimeEntry struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	// WeekStart anchors the entry to its payroll week (Monday of the clock-in
	// date).
	WeekStart         time.Time  `gorm:"column:week_start;type:date;not null;index"`
	EntryDate         time.Time  `gorm:"column:entry_date;type:date;not null;index"`
	ClockIn           time.Time  `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut          *time.Time `gorm:"column:clock_out;type:timestamptz"`
	OvertimeRequested bool       `gorm:"column:overtime_requested;not null;default:false"`
	OvertimeApproved  bool       `gorm:"column:overtime_approved;not null;default:false"`
	OvertimeNote      *string    `gorm:"column:overtime_note;type:text"`
	ApprovedBy        *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	// Locked is set once the entry has fed a generated payslip; locked
	// entries reject any further mutation.
	Locked    bool `gorm:"column:locked;not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	User      *UserRef `gorm:"foreignKey:UserID;references:ID"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

type UserRef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username   string    `gorm:"column:username"`
	Department string    `gorm:"column:department"`
}

func (UserRef) TableName() string {
	return "users"
}

// WeekStartOf returns the Monday of t's week, truncated to a date.
func WeekStartOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
