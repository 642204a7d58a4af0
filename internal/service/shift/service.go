package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hotelworks/hotel-api/internal/email"
	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
	"github.com/hotelworks/hotel-api/pkg/messaging"
)

const (
	eventShiftAssigned      = "shift.assigned"
	eventShiftStatusChanged = "shift.status_changed"
)

type Service struct {
	repo     repository.ShiftRepository
	profiles repository.ProfileRepository
	broker   messaging.Broker
	emailSvc email.Service
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(repo repository.ShiftRepository, profiles repository.ProfileRepository,
	broker messaging.Broker, emailSvc email.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		broker:   broker,
		emailSvc: emailSvc,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) CreateShift(ctx context.Context, req *model.CreateShiftRequest, createdBy *uuid.UUID) (*model.Shift, error) {
	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, apperrors.BadRequest("invalid start_time, expected HH:MM", err)
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, apperrors.BadRequest("invalid end_time, expected HH:MM", err)
	}

	shift := &model.Shift{
		Name:      req.Name,
		StartTime: start,
		EndTime:   end,
		CreatedBy: createdBy,
	}
	if err := s.repo.CreateShift(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *Service) ListShifts(ctx context.Context) ([]*model.Shift, error) {
	return s.repo.ListShifts(ctx)
}

// CreateAssignment binds a staff member to a shift on a calendar date.
// The author must share the assignee's department and hold an active
// role above the base one. At most one assignment may exist per
// (profile, shift, date).
func (s *Service) CreateAssignment(ctx context.Context, req *model.CreateShiftAssignmentRequest, authorProfileID uuid.UUID) (*model.ShiftAssignment, error) {
	today := dateOnly(s.now())
	reqDate := dateOnly(req.Date)
	if reqDate.Before(today) {
		return nil, apperrors.PastDate("cannot assign a shift on a past date")
	}

	author, err := s.profiles.Get(ctx, authorProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author profile: %w", err)
	}
	assignee, err := s.profiles.Get(ctx, req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignee profile: %w", err)
	}

	if !author.SameDepartment(assignee) {
		return nil, apperrors.CrossDepartment("cannot assign shifts outside your department")
	}
	if !author.HasRoleOtherThan(model.RoleStaff) {
		return nil, apperrors.InsufficientRole("only staff holding a supervisory role can assign shifts")
	}

	exists, err := s.repo.AssignmentExists(ctx, req.ProfileID, req.ShiftID, reqDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.DuplicateAssignment("this staff member already holds that shift on that date")
	}

	shift, err := s.repo.GetShift(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.GetStatusByName(ctx, model.ShiftStatusPending)
	if err != nil {
		return nil, err
	}

	assignment := &model.ShiftAssignment{
		DepartmentID:   assignee.DepartmentID,
		ProfileID:      req.ProfileID,
		ShiftID:        req.ShiftID,
		Date:           reqDate,
		StatusID:       pending.ID,
		Status:         *pending,
		ShiftStartTime: combine(reqDate, shift.StartTime),
		ShiftEndTime:   combine(reqDate, shift.EndTime),
		CreatedBy:      &authorProfileID,
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	s.publish(ctx, eventShiftAssigned, assignment)
	if assignee.Email != "" {
		if err := s.emailSvc.SendShiftAssigned(assignee.Email, shift.Name, reqDate.Format(model.DateOnly)); err != nil {
			s.logger.Warn().Err(err).Str("profile_id", assignee.ID.String()).Msg("shift assignment email failed")
		}
	}

	return assignment, nil
}

// UpdateAssignmentStatus moves an assignment through its lifecycle.
// Only the assignee may work their own shift; holders of a role above
// the base one may also cancel or end another's assignment in their
// department.
func (s *Service) UpdateAssignmentStatus(ctx context.Context, assignmentID uuid.UUID, statusName string, actorProfileID uuid.UUID) (*model.ShiftAssignment, error) {
	assignment, err := s.repo.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	actor, err := s.profiles.Get(ctx, actorProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor profile: %w", err)
	}

	status, err := s.repo.GetStatusByName(ctx, statusName)
	if err != nil {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown shift status %q", statusName), err)
	}

	if assignment.ProfileID != actorProfileID && !s.supervisorOverride(actor, assignment, status.Name) {
		return nil, apperrors.UnauthorizedActor("only the assignee can update this shift")
	}
	if assignment.Status.Name == status.Name {
		return nil, apperrors.NoOpTransition("assignment already holds this status")
	}

	now := s.now()
	if status.Name == model.ShiftStatusStarted && assignment.WindowClosed(now) {
		return nil, apperrors.ShiftWindowClosed("cannot start a shift whose window has closed")
	}

	assignment.StatusID = status.ID
	assignment.Status = *status
	assignment.LastModifiedBy = &actorProfileID
	switch status.Name {
	case model.ShiftStatusStarted:
		assignment.TimeStarted = &now
	case model.ShiftStatusEnded:
		assignment.TimeEnded = &now
	}

	if err := s.repo.UpdateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	s.publish(ctx, eventShiftStatusChanged, assignment)
	return assignment, nil
}

// supervisorOverride reports whether an actor may update someone else's
// assignment. The actor needs a role above the base one, the assignment
// must sit in the actor's department, and only Ended and Cancelled are
// allowed as targets.
func (s *Service) supervisorOverride(actor *model.Profile, assignment *model.ShiftAssignment, targetStatus string) bool {
	if !actor.HasRoleOtherThan(model.RoleStaff) {
		return false
	}
	if actor.DepartmentID == nil || assignment.DepartmentID == nil ||
		*actor.DepartmentID != *assignment.DepartmentID {
		return false
	}
	return targetStatus == model.ShiftStatusEnded || targetStatus == model.ShiftStatusCancelled
}

func (s *Service) GetAssignment(ctx context.Context, id uuid.UUID) (*model.ShiftAssignment, error) {
	return s.repo.GetAssignment(ctx, id)
}

func (s *Service) ListAssignments(ctx context.Context, filters *model.ShiftAssignmentFilters) ([]*model.ShiftAssignment, error) {
	return s.repo.ListAssignments(ctx, filters)
}

func (s *Service) ListAssignmentsForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.ShiftAssignment, error) {
	return s.repo.ListAssignmentsForProfile(ctx, profileID)
}

// ClearAssignments deletes every assignment for one shift on one date.
// Restricted to holders of a role above the base one.
func (s *Service) ClearAssignments(ctx context.Context, date time.Time, shiftID uuid.UUID, actorProfileID uuid.UUID) (int64, error) {
	actor, err := s.profiles.Get(ctx, actorProfileID)
	if err != nil {
		return 0, fmt.Errorf("failed to load actor profile: %w", err)
	}
	if !actor.HasRoleOtherThan(model.RoleStaff) {
		return 0, apperrors.InsufficientRole("only staff holding a supervisory role can clear assignments")
	}
	return s.repo.ClearAssignments(ctx, dateOnly(date), shiftID)
}

// CreateNote attaches a note to the actor's own assignment.
func (s *Service) CreateNote(ctx context.Context, req *model.CreateShiftNoteRequest, actorProfileID uuid.UUID) (*model.ShiftNote, error) {
	assignment, err := s.repo.GetAssignment(ctx, req.AssignedShiftID)
	if err != nil {
		return nil, err
	}
	if assignment.ProfileID != actorProfileID {
		return nil, apperrors.UnauthorizedActor("notes can only be added to your own shift")
	}

	note := &model.ShiftNote{
		AssignedShiftID: req.AssignedShiftID,
		Note:            req.Note,
		NoteDate:        req.NoteDate,
		CreatedBy:       &actorProfileID,
	}
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, assignedShiftID uuid.UUID) ([]*model.ShiftNote, error) {
	return s.repo.ListNotes(ctx, assignedShiftID)
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{Type: eventType, Payload: payload}
	if err := s.broker.Publish(ctx, eventType, msg); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

// dateOnly truncates a timestamp to its calendar date in local time.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// combine merges a calendar date with a time-of-day template.
func combine(date, tod time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, date.Location())
}
