package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindUser(ctx context.Context, userID string) (*PayrollUser, error)
	FindUsersWithEntries(ctx context.Context, weekStart time.Time) ([]PayrollUser, error)
	FindWeekSessions(ctx context.Context, userID string, weekStart time.Time) ([]WorkSession, error)
	CreatePayslip(ctx context.Context, p *Payslip) error
	FindPayslipsByWeek(ctx context.Context, weekStart time.Time) ([]PayslipView, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindUser(ctx context.Context, userID string) (*PayrollUser, error) {
	var u PayrollUser
	err := r.db.WithContext(ctx).First(&u, "id = ?", userID).Error
	return &u, err
}

// FindUsersWithEntries resolves the generation population: every user with at
// least one completed entry in the week.
func (r *repository) FindUsersWithEntries(ctx context.Context, weekStart time.Time) ([]PayrollUser, error) {
	var users []PayrollUser
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("DISTINCT u.id, u.username, u.department, u.staff_house").
		Joins("JOIN time_entries te ON te.user_id = u.id").
		Where("te.week_start = ?", weekStart.Format("2006-01-02")).
		Where("te.clock_out IS NOT NULL").
		Scan(&users).Error
	return users, err
}

func (r *repository) FindWeekSessions(ctx context.Context, userID string, weekStart time.Time) ([]WorkSession, error) {
	type row struct {
		ClockIn           time.Time  `gorm:"column:clock_in"`
		ClockOut          *time.Time `gorm:"column:clock_out"`
		OvertimeRequested bool       `gorm:"column:overtime_requested"`
		OvertimeApproved  bool       `gorm:"column:overtime_approved"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("time_entries").
		Select("clock_in, clock_out, overtime_requested, overtime_approved").
		Where("user_id = ?", userID).
		Where("week_start = ?", weekStart.Format("2006-01-02")).
		Where("clock_out IS NOT NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]WorkSession, 0, len(rows))
	for _, e := range rows {
		if e.ClockOut == nil {
			continue
		}
		sessions = append(sessions, WorkSession{
			ClockIn:           e.ClockIn,
			ClockOut:          *e.ClockOut,
			OvertimeRequested: e.OvertimeRequested,
			OvertimeApproved:  e.OvertimeApproved,
		})
	}
	return sessions, nil
}

func (r *repository) CreatePayslip(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPayslipsByWeek(ctx context.Context, weekStart time.Time) ([]PayslipView, error) {
	var views []PayslipView
	err := r.db.WithContext(ctx).
		Table("payslips p").
		Select("p.*, u.username, u.department").
		Joins("JOIN users u ON u.id = p.user_id").
		Where("p.week_start = ?", weekStart.Format("2006-01-02")).
		Order("u.department ASC, u.username ASC").
		Scan(&views).Error
	return views, err
}
