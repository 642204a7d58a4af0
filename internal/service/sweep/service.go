package sweep

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	"github.com/hotelworks/hotel-api/internal/service/housekeeping"
	"github.com/hotelworks/hotel-api/pkg/messaging"
	"github.com/hotelworks/hotel-api/pkg/metrics"
)

const (
	eventShiftExpired   = "shift.expired"
	eventTaskUnfinished = "task.marked_unfinished"
)

// Service runs the end-of-day expiry pass: assignments whose status is
// flagged change_after_expiry flip to Expired, and every non-terminal
// task under a swept assignment is forced to Unfinished. One
// transaction per assignment; a failing assignment is logged and
// skipped so the rest of the day still gets swept.
type Service struct {
	shifts  repository.ShiftRepository
	tasks   repository.HousekeepingRepository
	hkSvc   *housekeeping.Service
	broker  messaging.Broker
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewService(shifts repository.ShiftRepository, tasks repository.HousekeepingRepository,
	hkSvc *housekeeping.Service, broker messaging.Broker, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		shifts:  shifts,
		tasks:   tasks,
		hkSvc:   hkSvc,
		broker:  broker,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Run sweeps every assignment dated today. Returns the number of
// assignments expired and tasks marked unfinished.
func (s *Service) Run(ctx context.Context) (expired int, unfinished int, err error) {
	start := s.now()
	if s.metrics != nil {
		s.metrics.SweepRuns.Inc()
		defer func() {
			s.metrics.SweepDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				s.metrics.SweepFailures.Inc()
			}
		}()
	}

	today := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	assignments, err := s.shifts.ListAssignmentsForDate(ctx, today)
	if err != nil {
		return 0, 0, err
	}

	expiredStatus, err := s.shifts.GetStatusByName(ctx, model.ShiftStatusExpired)
	if err != nil {
		return 0, 0, err
	}

	for _, assignment := range assignments {
		e, u, sweepErr := s.sweepAssignment(ctx, assignment, expiredStatus.ID)
		if sweepErr != nil {
			s.logger.Error().Err(sweepErr).
				Str("assignment_id", assignment.ID.String()).
				Msg("sweep failed for assignment")
			continue
		}
		expired += e
		unfinished += u
	}

	s.logger.Info().
		Int("assignments", len(assignments)).
		Int("expired", expired).
		Int("unfinished", unfinished).
		Msg("expiry sweep complete")

	return expired, unfinished, nil
}

func (s *Service) sweepAssignment(ctx context.Context, assignment *model.ShiftAssignment, expiredStatusID uuid.UUID) (int, int, error) {
	tasks, err := s.tasks.ListTasksForAssignment(ctx, assignment.ID)
	if err != nil {
		return 0, 0, err
	}

	expireIt := assignment.Status.ChangeAfterExpiry
	var pending []*model.HousekeepingTask
	for _, task := range tasks {
		if !model.TerminalTaskStatuses[task.CurrentStatus] {
			pending = append(pending, task)
		}
	}

	if !expireIt && len(pending) == 0 {
		return 0, 0, nil
	}

	err = s.shifts.WithTx(ctx, func(tx *sqlx.Tx) error {
		if expireIt {
			if err := s.shifts.SetAssignmentStatus(ctx, tx, assignment.ID, expiredStatusID); err != nil {
				return err
			}
		}
		for _, task := range pending {
			if err := s.hkSvc.MarkUnfinished(ctx, tx, task.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	expired := 0
	if expireIt {
		expired = 1
		if s.metrics != nil {
			s.metrics.ShiftsExpired.Inc()
		}
		s.publish(ctx, eventShiftExpired, assignment)
	}
	if s.metrics != nil {
		s.metrics.TasksMarkedUnfinished.Add(float64(len(pending)))
	}
	for _, task := range pending {
		s.publish(ctx, eventTaskUnfinished, task)
	}

	return expired, len(pending), nil
}

// publish emits a sweep event after the assignment's transaction has
// committed. A nil broker disables eventing.
func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{Type: eventType, Payload: payload}
	if err := s.broker.Publish(ctx, eventType, msg); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}
