package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	entryerrors "timeclock/internal/timeentry/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, userID string) (TimeEntryResponse, error)
	ClockOut(ctx context.Context, userID string, req ClockOutRequest) (TimeEntryResponse, error)
	Today(ctx context.Context, userID string) (TimeEntryResponse, error)
	ListOvertimeRequests(ctx context.Context) ([]TimeEntryResponse, error)
	ApproveOvertime(ctx context.Context, id, approverID string, approved bool) (TimeEntryResponse, error)
	LockWeek(ctx context.Context, weekStart time.Time) (int64, error)
}

type service struct {
	db   *sql.DB
	repo Repository
	now  func() time.Time
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, now: time.Now}
}

// NewServiceWithClock pins the clock, so tests can run on a fixed day.
func NewServiceWithClock(db *sql.DB, repo Repository, now func() time.Time) Service {
	return &service{db: db, repo: repo, now: now}
}

func (s *service) ClockIn(ctx context.Context, userID string) (TimeEntryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := dateOf(now)

	_, err = qtx.FindByUserAndDate(ctx, userID, today)
	if err == nil {
		return TimeEntryResponse{}, entryerrors.ErrAlreadyClockedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimeEntryResponse{}, err
	}

	e := &TimeEntry{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(userID),
		WeekStart: WeekStartOf(now),
		EntryDate: today,
		ClockIn:   now,
	}

	if err := qtx.Create(ctx, e); err != nil {
		return TimeEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) ClockOut(ctx context.Context, userID string, req ClockOutRequest) (TimeEntryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()

	e, err := qtx.FindByUserAndDate(ctx, userID, dateOf(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, entryerrors.ErrNoOpenEntry
		}
		return TimeEntryResponse{}, err
	}
	if e.Locked {
		return TimeEntryResponse{}, entryerrors.ErrEntryLocked
	}
	if e.ClockOut != nil {
		return TimeEntryResponse{}, entryerrors.ErrAlreadyClockedOut
	}

	e.ClockOut = &now
	if req.OvertimeNote != nil && *req.OvertimeNote != "" {
		e.OvertimeRequested = true
		e.OvertimeNote = req.OvertimeNote
	}

	if err := qtx.Update(ctx, e); err != nil {
		return TimeEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Today(ctx context.Context, userID string) (TimeEntryResponse, error) {
	e, err := s.repo.FindByUserAndDate(ctx, userID, dateOf(s.now().UTC()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, entryerrors.ErrNoOpenEntry
		}
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) ListOvertimeRequests(ctx context.Context) ([]TimeEntryResponse, error) {
	rows, err := s.repo.FindPendingOvertime(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TimeEntryResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) ApproveOvertime(ctx context.Context, id, approverID string, approved bool) (TimeEntryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return TimeEntryResponse{}, entryerrors.ErrInvalidEntryID
	}

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, entryerrors.ErrEntryNotFound
		}
		return TimeEntryResponse{}, err
	}
	if e.Locked {
		return TimeEntryResponse{}, entryerrors.ErrEntryLocked
	}
	if !e.OvertimeRequested {
		return TimeEntryResponse{}, entryerrors.ErrNotOvertimeRequest
	}

	approver := uuid.MustParse(approverID)
	e.OvertimeApproved = approved
	e.ApprovedBy = &approver

	if err := qtx.Update(ctx, e); err != nil {
		return TimeEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) LockWeek(ctx context.Context, weekStart time.Time) (int64, error) {
	return s.repo.LockWeek(ctx, weekStart)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func mapToResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:                e.ID.String(),
		UserID:            e.UserID.String(),
		WeekStart:         e.WeekStart.Format("2006-01-02"),
		EntryDate:         e.EntryDate.Format("2006-01-02"),
		ClockIn:           e.ClockIn.Format(time.RFC3339),
		OvertimeRequested: e.OvertimeRequested,
		OvertimeApproved:  e.OvertimeApproved,
		OvertimeNote:      e.OvertimeNote,
		Locked:            e.Locked,
	}
	if e.ClockOut != nil {
		v := e.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	if e.User != nil {
		resp.Username = e.User.Username
		resp.Department = e.User.Department
	}
	return resp
}
