package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	"github.com/hotelworks/hotel-api/internal/service/housekeeping"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
	"github.com/hotelworks/hotel-api/pkg/messaging"
)

type fakeShiftRepo struct {
	repository.ShiftRepository

	assignments []*model.ShiftAssignment
	statusSets  map[uuid.UUID]uuid.UUID
	failTxFor   map[uuid.UUID]bool

	inTx *model.ShiftAssignment
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{
		statusSets: map[uuid.UUID]uuid.UUID{},
		failTxFor:  map[uuid.UUID]bool{},
	}
}

func (r *fakeShiftRepo) ListAssignmentsForDate(_ context.Context, _ time.Time) ([]*model.ShiftAssignment, error) {
	return r.assignments, nil
}

func (r *fakeShiftRepo) GetStatusByName(_ context.Context, name string) (*model.ShiftStatus, error) {
	if name != model.ShiftStatusExpired {
		return nil, apperrors.NotFound("shift status", nil)
	}
	return &model.ShiftStatus{Base: model.Base{ID: expiredStatusID}, Name: name}, nil
}

func (r *fakeShiftRepo) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func (r *fakeShiftRepo) SetAssignmentStatus(_ context.Context, _ *sqlx.Tx, assignmentID, statusID uuid.UUID) error {
	if r.failTxFor[assignmentID] {
		return errors.New("write conflict")
	}
	r.statusSets[assignmentID] = statusID
	return nil
}

type fakeTaskRepo struct {
	repository.HousekeepingRepository

	byAssignment map[uuid.UUID][]*model.HousekeepingTask

	history []*model.TaskStatusRecord
	current map[uuid.UUID]string
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		byAssignment: map[uuid.UUID][]*model.HousekeepingTask{},
		current:      map[uuid.UUID]string{},
	}
}

func (r *fakeTaskRepo) ListTasksForAssignment(_ context.Context, memberShiftID uuid.UUID) ([]*model.HousekeepingTask, error) {
	return r.byAssignment[memberShiftID], nil
}

func (r *fakeTaskRepo) AppendStatusRecord(_ context.Context, _ *sqlx.Tx, rec *model.TaskStatusRecord) error {
	r.history = append(r.history, rec)
	return nil
}

func (r *fakeTaskRepo) SetCurrentStatus(_ context.Context, _ *sqlx.Tx, taskID uuid.UUID, status string, _ *uuid.UUID) error {
	r.current[taskID] = status
	return nil
}

var expiredStatusID = uuid.New()

type testEnv struct {
	svc    *Service
	shifts *fakeShiftRepo
	tasks  *fakeTaskRepo
}

func newTestEnv() *testEnv {
	shifts := newFakeShiftRepo()
	tasks := newFakeTaskRepo()
	hkSvc := housekeeping.NewService(tasks, shifts, nil, nil, nil, nil, zerolog.Nop())
	svc := NewService(shifts, tasks, hkSvc, nil, nil, zerolog.Nop())
	return &testEnv{svc: svc, shifts: shifts, tasks: tasks}
}

func (e *testEnv) addAssignment(expirable bool) *model.ShiftAssignment {
	a := &model.ShiftAssignment{
		Base:   model.Base{ID: uuid.New()},
		Status: model.ShiftStatus{Name: model.ShiftStatusStarted, ChangeAfterExpiry: expirable},
	}
	e.shifts.assignments = append(e.shifts.assignments, a)
	return a
}

func (e *testEnv) addTask(assignmentID uuid.UUID, status string) *model.HousekeepingTask {
	t := &model.HousekeepingTask{
		Base:          model.Base{ID: uuid.New()},
		MemberShiftID: assignmentID,
		CurrentStatus: status,
	}
	e.tasks.byAssignment[assignmentID] = append(e.tasks.byAssignment[assignmentID], t)
	return t
}

func TestRunExpiresFlaggedAssignments(t *testing.T) {
	env := newTestEnv()
	expirable := env.addAssignment(true)
	settled := env.addAssignment(false)

	expired, unfinished, err := env.svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, expired)
	assert.Equal(t, 0, unfinished)
	assert.Equal(t, expiredStatusID, env.shifts.statusSets[expirable.ID])
	assert.NotContains(t, env.shifts.statusSets, settled.ID)
}

func TestRunMarksNonTerminalTasksUnfinished(t *testing.T) {
	env := newTestEnv()
	assignment := env.addAssignment(true)

	pending := env.addTask(assignment.ID, model.TaskStatusPending)
	ongoing := env.addTask(assignment.ID, model.TaskStatusOngoing)
	helping := env.addTask(assignment.ID, model.TaskStatusRequestHelp)
	done := env.addTask(assignment.ID, model.TaskStatusCompleted)
	ended := env.addTask(assignment.ID, model.TaskStatusEnded)
	cancelled := env.addTask(assignment.ID, model.TaskStatusCancelled)

	expired, unfinished, err := env.svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, expired)
	assert.Equal(t, 3, unfinished)

	for _, task := range []*model.HousekeepingTask{pending, ongoing, helping} {
		assert.Equal(t, model.TaskStatusUnfinished, env.tasks.current[task.ID])
	}
	for _, task := range []*model.HousekeepingTask{done, ended, cancelled} {
		assert.NotContains(t, env.tasks.current, task.ID)
	}

	// Forced transitions carry no author.
	require.Len(t, env.tasks.history, 3)
	for _, rec := range env.tasks.history {
		assert.Equal(t, model.TaskStatusUnfinished, rec.Status)
		assert.Nil(t, rec.CreatedBy)
	}
}

func TestRunSkipsFailingAssignments(t *testing.T) {
	env := newTestEnv()
	broken := env.addAssignment(true)
	healthy := env.addAssignment(true)
	env.shifts.failTxFor[broken.ID] = true
	env.addTask(healthy.ID, model.TaskStatusOngoing)

	expired, unfinished, err := env.svc.Run(context.Background())
	require.NoError(t, err, "one failing assignment must not fail the run")

	assert.Equal(t, 1, expired)
	assert.Equal(t, 1, unfinished)
	assert.Equal(t, expiredStatusID, env.shifts.statusSets[healthy.ID])
}

type fakeBroker struct {
	published []messaging.Message
}

func (b *fakeBroker) Publish(_ context.Context, _ string, message interface{}) error {
	b.published = append(b.published, message.(messaging.Message))
	return nil
}

func (b *fakeBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return nil, nil
}

func (b *fakeBroker) Close() error { return nil }

func TestRunPublishesSweepEvents(t *testing.T) {
	env := newTestEnv()
	broker := &fakeBroker{}
	env.svc.broker = broker

	assignment := env.addAssignment(true)
	env.addTask(assignment.ID, model.TaskStatusOngoing)
	env.addTask(assignment.ID, model.TaskStatusPending)
	env.addTask(assignment.ID, model.TaskStatusCompleted)

	_, _, err := env.svc.Run(context.Background())
	require.NoError(t, err)

	var types []string
	for _, msg := range broker.published {
		types = append(types, msg.Type)
	}
	assert.Equal(t, []string{"shift.expired", "task.marked_unfinished", "task.marked_unfinished"}, types)
}

func TestRunLeavesSettledAssignmentsAlone(t *testing.T) {
	env := newTestEnv()
	assignment := env.addAssignment(false)
	env.addTask(assignment.ID, model.TaskStatusCompleted)

	expired, unfinished, err := env.svc.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, expired)
	assert.Zero(t, unfinished)
	assert.Empty(t, env.shifts.statusSets)
	assert.Empty(t, env.tasks.history)
}
