package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"timeclock/internal/events"
	"timeclock/internal/messaging/kafka"
	payrollerrors "timeclock/internal/payroll/errors"
	"timeclock/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const reportCachePrefix = "payroll:report:"

func reportCacheKey(weekStart time.Time) string {
	return reportCachePrefix + weekStart.Format("2006-01-02")
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CalculateWeekly(ctx context.Context, userID string, weekStart time.Time) (BreakdownResponse, error)
	GeneratePayslips(ctx context.Context, weekStart time.Time) ([]PayslipResponse, error)
	Report(ctx context.Context, weekStart time.Time) ([]PayslipResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	policy Policy
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
}

func NewService(db *sql.DB, repo Repository, policy Policy) Service {
	return &service{db: db, repo: repo, policy: policy, sf: &singleflight.Group{}}
}

// NewServiceWithInfra wires the outbox (payslip-generated events) and Redis
// (report cache) on top of the base service.
func NewServiceWithInfra(
	db *sql.DB,
	repo Repository,
	policy Policy,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
) Service {
	return &service{db: db, repo: repo, policy: policy, outbox: outbox, rdb: rdb, sf: &singleflight.Group{}}
}

func (s *service) CalculateWeekly(
	ctx context.Context,
	userID string,
	weekStart time.Time,
) (BreakdownResponse, error) {
	u, err := s.repo.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BreakdownResponse{}, payrollerrors.ErrUserNotFound
		}
		return BreakdownResponse{}, err
	}

	sessions, err := s.repo.FindWeekSessions(ctx, userID, weekStart)
	if err != nil {
		return BreakdownResponse{}, err
	}

	return mapBreakdown(s.policy.Compute(sessions, u.StaffHouse)), nil
}

func (s *service) GeneratePayslips(
	ctx context.Context,
	weekStart time.Time,
) ([]PayslipResponse, error) {
	log := contextutil.GetLogger(ctx, zap.L()).Named("payroll.generate")

	users, err := s.repo.FindUsersWithEntries(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	weekEnd := weekStart.AddDate(0, 0, 6)
	resp := make([]PayslipResponse, 0, len(users))

	// Inserts run per user on purpose: one bad user or one failed insert
	// drops that user from the run without aborting the rest.
	for _, u := range users {
		sessions, err := s.repo.FindWeekSessions(ctx, u.ID.String(), weekStart)
		if err != nil {
			log.Error("fetch week sessions failed",
				zap.String("user_id", u.ID.String()),
				zap.Error(err),
			)
			continue
		}

		bd := s.policy.Compute(sessions, u.StaffHouse)

		slip := &Payslip{
			ID:                  uuid.New(),
			UserID:              u.ID,
			WeekStart:           weekStart,
			WeekEnd:             weekEnd,
			TotalHours:          bd.TotalHours,
			OvertimeHours:       bd.OvertimeHours,
			UndertimeHours:      bd.UndertimeHours,
			BaseSalary:          bd.BaseSalary,
			OvertimePay:         bd.OvertimePay,
			UndertimeDeduction:  bd.UndertimeDeduction,
			StaffHouseDeduction: bd.StaffHouseDeduction,
			TotalSalary:         bd.TotalSalary,
			FirstClockIn:        bd.FirstClockIn,
			LastClockOut:        bd.LastClockOut,
		}

		if err := s.repo.CreatePayslip(ctx, slip); err != nil {
			log.Error("insert payslip failed",
				zap.String("user_id", u.ID.String()),
				zap.String("week_start", weekStart.Format("2006-01-02")),
				zap.Error(err),
			)
			continue
		}

		resp = append(resp, mapPayslip(*slip, u.Username, u.Department))
	}

	if err := s.recordGeneratedEvent(ctx, weekStart, len(resp)); err != nil {
		log.Error("record payslips generated event failed", zap.Error(err))
	}

	if s.rdb != nil {
		s.rdb.Del(ctx, reportCacheKey(weekStart))
	}

	log.Info("payslips generated",
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.Int("count", len(resp)),
	)

	return resp, nil
}

func (s *service) Report(ctx context.Context, weekStart time.Time) ([]PayslipResponse, error) {
	cacheKey := reportCacheKey(weekStart)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []PayslipResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent report queries for the same week.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		views, err := s.repo.FindPayslipsByWeek(ctx, weekStart)
		if err != nil {
			return nil, err
		}

		resp := make([]PayslipResponse, 0, len(views))
		for _, view := range views {
			resp = append(resp, mapPayslip(view.Payslip, view.Username, view.Department))
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 10*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]PayslipResponse), nil
}

// recordGeneratedEvent writes the outbox row the producer worker later ships
// to Kafka; the consumer locks the week's time entries off the back of it.
func (s *service) recordGeneratedEvent(ctx context.Context, weekStart time.Time, count int) error {
	if s.outbox == nil {
		return nil
	}

	event := events.PayslipsGeneratedEvent{
		EventType:  events.PayslipsGeneratedType,
		WeekStart:  weekStart.Format("2006-01-02"),
		Count:      count,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_week",
		AggregateID:   event.WeekStart,
		EventType:     events.PayslipsGeneratedType,
		Topic:         events.PayslipsGeneratedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return err
	}

	return tx.Commit()
}

func mapBreakdown(bd Breakdown) BreakdownResponse {
	resp := BreakdownResponse{
		TotalHours:          bd.TotalHours,
		OvertimeHours:       bd.OvertimeHours,
		UndertimeHours:      bd.UndertimeHours,
		BaseSalary:          bd.BaseSalary,
		OvertimePay:         bd.OvertimePay,
		UndertimeDeduction:  bd.UndertimeDeduction,
		StaffHouseDeduction: bd.StaffHouseDeduction,
		TotalSalary:         bd.TotalSalary,
	}
	if bd.FirstClockIn != nil {
		v := bd.FirstClockIn.Format(time.RFC3339)
		resp.ClockInTime = &v
	}
	if bd.LastClockOut != nil {
		v := bd.LastClockOut.Format(time.RFC3339)
		resp.ClockOutTime = &v
	}
	return resp
}

func mapPayslip(p Payslip, username, department string) PayslipResponse {
	resp := PayslipResponse{
		ID:         p.ID.String(),
		UserID:     p.UserID.String(),
		Username:   username,
		Department: department,
		WeekStart:  p.WeekStart.Format("2006-01-02"),
		WeekEnd:    p.WeekEnd.Format("2006-01-02"),
		BreakdownResponse: BreakdownResponse{
			TotalHours:          p.TotalHours,
			OvertimeHours:       p.OvertimeHours,
			UndertimeHours:      p.UndertimeHours,
			BaseSalary:          p.BaseSalary,
			OvertimePay:         p.OvertimePay,
			UndertimeDeduction:  p.UndertimeDeduction,
			StaffHouseDeduction: p.StaffHouseDeduction,
			TotalSalary:         p.TotalSalary,
		},
	}
	if p.FirstClockIn != nil {
		v := p.FirstClockIn.Format(time.RFC3339)
		resp.ClockInTime = &v
	}
	if p.LastClockOut != nil {
		v := p.LastClockOut.Format(time.RFC3339)
		resp.ClockOutTime = &v
	}
	return resp
}
