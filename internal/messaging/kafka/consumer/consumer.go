package consumer

import (
	"context"
	"encoding/json"
	"time"

	"timeclock/internal/events"
	"timeclock/internal/timeentry"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayslipLifecycle locks each generated week's time entries so they
// can no longer change after feeding a payslip. Locking is idempotent, so a
// replayed message is harmless.
func ConsumePayslipLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	entryService timeentry.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_lifecycle")
	log.Info("payslip lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip lifecycle consumer stopped")
				return
			}
			log.Error("fetch payslip lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.PayslipsGeneratedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payslips_generated event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		weekStart, err := time.Parse("2006-01-02", event.WeekStart)
		if err != nil {
			log.Error("invalid week_start in payslips_generated event",
				zap.String("week_start", event.WeekStart),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		locked, err := entryService.LockWeek(ctx, weekStart)
		if err != nil {
			log.Error("lock week entries failed",
				zap.String("week_start", event.WeekStart),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payslip lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("week entries locked from payslips_generated event",
			zap.String("week_start", event.WeekStart),
			zap.Int64("locked", locked),
		)
	}
}
