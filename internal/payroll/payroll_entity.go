package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payslip is the persisted snapshot of one user's weekly breakdown. Rows are
// never updated in place; regenerating a week appends new rows.
type Payslip struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_user_week"`
	WeekStart time.Time `gorm:"type:date;not null;index:idx_payslip_user_week"`
	WeekEnd   time.Time `gorm:"type:date;not null"`

	TotalHours     decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	OvertimeHours  decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	UndertimeHours decimal.Decimal `gorm:"type:numeric(10,4);not null"`

	BaseSalary          decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	OvertimePay         decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	UndertimeDeduction  decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	StaffHouseDeduction decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	TotalSalary         decimal.Decimal `gorm:"type:numeric(12,4);not null"`

	FirstClockIn *time.Time `gorm:"type:timestamptz"`
	LastClockOut *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}

// PayrollUser is the slice of the users table payroll needs.
type PayrollUser struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username   string    `gorm:"column:username"`
	Department string    `gorm:"column:department"`
	StaffHouse bool      `gorm:"column:staff_house"`
}

func (PayrollUser) TableName() string {
	return "users"
}

// PayslipView is one report row: a payslip joined with user identity.
type PayslipView struct {
	Payslip
	Username   string `gorm:"column:username"`
	Department string `gorm:"column:department"`
}
