package timeentry

type ClockOutRequest struct {
	OvertimeNote *string `json:"overtime_note"`
}

type ApproveOvertimeRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

type TimeEntryResponse struct {
	ID                string  `json:"id"`
	UserID            string  `json:"user_id"`
	Username          string  `json:"username,omitempty"`
	Department        string  `json:"department,omitempty"`
	WeekStart         string  `json:"week_start"`
	EntryDate         string  `json:"entry_date"`
	ClockIn           string  `json:"clock_in"`
	ClockOut          *string `json:"clock_out,omitempty"`
	OvertimeRequested bool    `json:"overtime_requested"`
	OvertimeApproved  bool    `json:"overtime_approved"`
	OvertimeNote      *string `json:"overtime_note,omitempty"`
	Locked            bool    `json:"locked"`
}
