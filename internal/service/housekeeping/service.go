package housekeeping

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
	"github.com/hotelworks/hotel-api/pkg/messaging"
	"github.com/hotelworks/hotel-api/pkg/metrics"
)

const eventTaskStatusChanged = "task.status_changed"

// Targets a non-supervisor may request on their own task.
var staffAllowedTargets = map[string]bool{
	model.TaskStatusOngoing:     true,
	model.TaskStatusEnded:       true,
	model.TaskStatusRequestHelp: true,
}

// Targets a supervisor may apply to a task that has never been started.
var supervisorUnstartedTargets = map[string]bool{
	model.TaskStatusReassigned: true,
	model.TaskStatusCancelled:  true,
}

type Service struct {
	repo     repository.HousekeepingRepository
	shifts   repository.ShiftRepository
	profiles repository.ProfileRepository
	rooms    repository.RoomRepository
	broker   messaging.Broker
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(repo repository.HousekeepingRepository, shifts repository.ShiftRepository,
	profiles repository.ProfileRepository, rooms repository.RoomRepository,
	broker messaging.Broker, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		shifts:   shifts,
		profiles: profiles,
		rooms:    rooms,
		broker:   broker,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateTask creates a housekeeping task under an existing shift
// assignment. Only Housekeeping supervisors may create tasks, and the
// assignee must already hold a shift assignment matching the task's
// date and shift. The task row and its initial Pending history record
// are written in one transaction.
func (s *Service) CreateTask(ctx context.Context, req *model.CreateTaskRequest, creatorProfileID uuid.UUID) (*model.HousekeepingTask, error) {
	today := dateOnly(s.now())
	reqDate := dateOnly(req.AssignmentDate)
	if reqDate.Before(today) {
		return nil, apperrors.PastDate("cannot create a task for a past date")
	}

	creator, err := s.profiles.Get(ctx, creatorProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator profile: %w", err)
	}
	if !creator.MemberOf(model.DepartmentHousekeeping) {
		return nil, apperrors.CrossDepartment("only housekeeping staff can create housekeeping tasks")
	}
	if !creator.HasRole(model.RoleSupervisor) {
		return nil, apperrors.InsufficientRole("only supervisors can create housekeeping tasks")
	}

	room, err := s.rooms.GetByNumber(ctx, req.RoomNumber)
	if err != nil {
		return nil, err
	}
	shift, err := s.shifts.GetShiftByName(ctx, req.ShiftName)
	if err != nil {
		return nil, err
	}
	priority, err := s.repo.GetPriorityByName(ctx, req.PriorityName)
	if err != nil {
		return nil, err
	}

	if _, err := s.shifts.FindAssignment(ctx, req.AssignedToID, reqDate, shift.Name); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NoShiftOnDate("assignee has no shift assignment for that date and shift")
		}
		return nil, err
	}

	// The task is tracked under the creator's own assignment window.
	memberShift, err := s.shifts.FindAssignment(ctx, creatorProfileID, reqDate, shift.Name)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NoShiftOnDate("creator has no shift assignment for that date and shift")
		}
		return nil, err
	}

	var supported *model.HousekeepingTask
	if req.TaskSupported != nil {
		supported, err = s.repo.GetTask(ctx, *req.TaskSupported)
		if err != nil {
			return nil, err
		}
	}

	task := &model.HousekeepingTask{
		RoomID:          room.ID,
		ShiftID:         shift.ID,
		AssignmentDate:  reqDate,
		AssignedToID:    req.AssignedToID,
		MemberShiftID:   memberShift.ID,
		PriorityID:      priority.ID,
		Title:           req.Title,
		Description:     req.Description,
		TaskSupportedID: req.TaskSupported,
		CurrentStatus:   model.TaskStatusPending,
		CreatedBy:       &creatorProfileID,
	}

	err = s.repo.CreateTaskTx(ctx, func(tx *sqlx.Tx) error {
		if supported != nil {
			rec := &model.TaskStatusRecord{
				TaskID:    supported.ID,
				Status:    model.TaskStatusSupportAssigned,
				CreatedBy: &creatorProfileID,
			}
			if err := s.repo.AppendStatusRecord(ctx, tx, rec); err != nil {
				return err
			}
			if err := s.repo.SetCurrentStatus(ctx, tx, supported.ID, model.TaskStatusSupportAssigned, &creatorProfileID); err != nil {
				return err
			}
		}

		if err := s.repo.CreateTask(ctx, tx, task); err != nil {
			return err
		}
		rec := &model.TaskStatusRecord{
			TaskID:    task.ID,
			Status:    model.TaskStatusPending,
			CreatedBy: &creatorProfileID,
		}
		return s.repo.AppendStatusRecord(ctx, tx, rec)
	})
	if err != nil {
		return nil, err
	}

	task.MemberShift = memberShift
	return task, nil
}

// ChangeStatus moves a task through its workflow. The checks run in a
// fixed order; each later check assumes the earlier ones passed.
func (s *Service) ChangeStatus(ctx context.Context, taskID uuid.UUID, statusName string, actorProfileID uuid.UUID) (*model.HousekeepingTask, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	state, err := s.repo.GetStateByName(ctx, statusName)
	if err != nil {
		return nil, err
	}
	target := model.CanonicalTaskStatus(state.Name)

	actor, err := s.profiles.Get(ctx, actorProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor profile: %w", err)
	}
	supervisor := actor.HasRole(model.RoleSupervisor)

	memberShift, err := s.shifts.GetAssignment(ctx, task.MemberShiftID)
	if err != nil {
		return nil, err
	}

	if err := s.checkTransition(ctx, task, memberShift, target, actor, supervisor); err != nil {
		s.countRejection(err)
		return nil, err
	}

	err = s.repo.CreateTaskTx(ctx, func(tx *sqlx.Tx) error {
		rec := &model.TaskStatusRecord{
			TaskID:    task.ID,
			Status:    target,
			CreatedBy: &actorProfileID,
		}
		if err := s.repo.AppendStatusRecord(ctx, tx, rec); err != nil {
			return err
		}
		return s.repo.SetCurrentStatus(ctx, tx, task.ID, target, &actorProfileID)
	})
	if err != nil {
		return nil, err
	}

	task.CurrentStatus = target
	task.LastModifiedBy = &actorProfileID

	if s.metrics != nil {
		s.metrics.TaskTransitions.WithLabelValues(target).Inc()
	}
	s.publish(ctx, task)

	return task, nil
}

func (s *Service) checkTransition(ctx context.Context, task *model.HousekeepingTask,
	memberShift *model.ShiftAssignment, target string, actor *model.Profile, supervisor bool) error {

	if task.AssignedToID != actor.ID {
		return apperrors.UnauthorizedActor("you are not authorized to update this task")
	}

	if strings.EqualFold(task.CurrentStatus, target) {
		return apperrors.NoOpTransition("task already holds this status")
	}

	if memberShift.WindowClosed(s.now()) {
		return apperrors.ShiftWindowClosed("the shift period has expired or the shift is ended")
	}

	if !memberShift.Started() {
		if !(supervisor && supervisorUnstartedTargets[target]) {
			return apperrors.ShiftNotStarted("the shift has not started yet")
		}
	}

	if !supervisor && !staffAllowedTargets[target] {
		return apperrors.RoleNotPermitted("only Ongoing, Ended or Request Help is allowed")
	}

	if task.CurrentStatus == model.TaskStatusEnded &&
		(target == model.TaskStatusRequestHelp || target == model.TaskStatusOngoing) {
		return apperrors.TaskAlreadyEnded("this task has already ended")
	}

	started, err := s.repo.HasStatusRecord(ctx, task.ID, model.TaskStatusOngoing)
	if err != nil {
		return err
	}
	if !started && target != model.TaskStatusOngoing {
		if !supervisor {
			return apperrors.TaskNotStarted("this task has not been started yet")
		}
		if !supervisorUnstartedTargets[target] {
			return apperrors.TaskNotStarted("this task has not been started yet")
		}
	}

	return nil
}

// MarkUnfinished force-transitions a task without consulting the actor
// chain. The history record carries no author, marking a system
// override. Used by the expiry sweep only.
func (s *Service) MarkUnfinished(ctx context.Context, tx *sqlx.Tx, taskID uuid.UUID) error {
	rec := &model.TaskStatusRecord{
		TaskID: taskID,
		Status: model.TaskStatusUnfinished,
	}
	if err := s.repo.AppendStatusRecord(ctx, tx, rec); err != nil {
		return err
	}
	return s.repo.SetCurrentStatus(ctx, tx, taskID, model.TaskStatusUnfinished, nil)
}

func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (*model.HousekeepingTask, error) {
	return s.repo.GetTask(ctx, id)
}

func (s *Service) UpdateTask(ctx context.Context, task *model.HousekeepingTask, actorProfileID uuid.UUID) error {
	task.LastModifiedBy = &actorProfileID
	return s.repo.UpdateTask(ctx, task)
}

func (s *Service) ListTasks(ctx context.Context, filters *model.TaskFilters) ([]*model.HousekeepingTask, error) {
	return s.repo.ListTasks(ctx, filters)
}

func (s *Service) ListTasksForAssignment(ctx context.Context, memberShiftID uuid.UUID) ([]*model.HousekeepingTask, error) {
	return s.repo.ListTasksForAssignment(ctx, memberShiftID)
}

func (s *Service) ListAssignedStaff(ctx context.Context, roomID uuid.UUID, date time.Time, shiftID *uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListAssignedStaff(ctx, roomID, dateOnly(date), shiftID)
}

func (s *Service) ListStatusHistory(ctx context.Context, taskID uuid.UUID) ([]*model.TaskStatusRecord, error) {
	return s.repo.ListStatusHistory(ctx, taskID)
}

func (s *Service) ListStates(ctx context.Context) ([]*model.HousekeepingState, error) {
	return s.repo.ListStates(ctx)
}

func (s *Service) ListPriorities(ctx context.Context) ([]*model.Priority, error) {
	return s.repo.ListPriorities(ctx)
}

func (s *Service) publish(ctx context.Context, task *model.HousekeepingTask) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{Type: eventTaskStatusChanged, Payload: task}
	if err := s.broker.Publish(ctx, eventTaskStatusChanged, msg); err != nil {
		s.logger.Warn().Err(err).Str("task_id", task.ID.String()).Msg("event publish failed")
	}
}

func (s *Service) countRejection(err error) {
	if s.metrics == nil {
		return
	}
	var reason string
	switch apperrors.CodeOf(err) {
	case apperrors.ErrUnauthorizedActor:
		reason = "unauthorized_actor"
	case apperrors.ErrNoOpTransition:
		reason = "no_op"
	case apperrors.ErrShiftWindowClosed:
		reason = "shift_window_closed"
	case apperrors.ErrShiftNotStarted:
		reason = "shift_not_started"
	case apperrors.ErrRoleNotPermitted:
		reason = "role_not_permitted"
	case apperrors.ErrTaskAlreadyEnded:
		reason = "task_already_ended"
	case apperrors.ErrTaskNotStarted:
		reason = "task_not_started"
	default:
		reason = "other"
	}
	s.metrics.TaskTransitionRejected.WithLabelValues(reason).Inc()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
