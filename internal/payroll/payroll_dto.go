package payroll

import "github.com/shopspring/decimal"

type GeneratePayslipsRequest struct {
	WeekStart string `json:"week_start" binding:"required"`
}

type BreakdownResponse struct {
	TotalHours          decimal.Decimal `json:"total_hours"`
	OvertimeHours       decimal.Decimal `json:"overtime_hours"`
	UndertimeHours      decimal.Decimal `json:"undertime_hours"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	OvertimePay         decimal.Decimal `json:"overtime_pay"`
	UndertimeDeduction  decimal.Decimal `json:"undertime_deduction"`
	StaffHouseDeduction decimal.Decimal `json:"staff_house_deduction"`
	TotalSalary         decimal.Decimal `json:"total_salary"`
	ClockInTime         *string         `json:"clock_in_time,omitempty"`
	ClockOutTime        *string         `json:"clock_out_time,omitempty"`
}

type PayslipResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Department string `json:"department"`
	WeekStart  string `json:"week_start"`
	WeekEnd    string `json:"week_end"`
	BreakdownResponse
}
