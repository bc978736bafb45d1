package timeentry

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *TimeEntry) error
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*TimeEntry, error)
	FindByID(ctx context.Context, id string) (*TimeEntry, error)
	FindPendingOvertime(ctx context.Context) ([]TimeEntry, error)
	Update(ctx context.Context, e *TimeEntry) error
	LockWeek(ctx context.Context, weekStart time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("entry_date = ?", date.Format("2006-01-02")).
		First(&e).Error
	return &e, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindPendingOvertime(ctx context.Context) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("overtime_requested = ?", true).
		Where("approved_by IS NULL").
		Where("clock_out IS NOT NULL").
		Order("clock_in ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// LockWeek marks every completed entry of the week immutable. Running it
// twice is a no-op for rows already locked.
func (r *repository) LockWeek(ctx context.Context, weekStart time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&TimeEntry{}).
		Where("week_start = ?", weekStart.Format("2006-01-02")).
		Where("clock_out IS NOT NULL").
		Where("locked = ?", false).
		Update("locked", true)
	return res.RowsAffected, res.Error
}
