package housekeeping

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type fakeTaskRepo struct {
	repository.HousekeepingRepository

	tasks      map[uuid.UUID]*model.HousekeepingTask
	states     map[string]*model.HousekeepingState
	priorities map[string]*model.Priority
	records    map[uuid.UUID]map[string]bool

	created  []*model.HousekeepingTask
	history  []*model.TaskStatusRecord
	current  map[uuid.UUID]string
	modifier map[uuid.UUID]*uuid.UUID
}

func newFakeTaskRepo() *fakeTaskRepo {
	r := &fakeTaskRepo{
		tasks:      map[uuid.UUID]*model.HousekeepingTask{},
		states:     map[string]*model.HousekeepingState{},
		priorities: map[string]*model.Priority{},
		records:    map[uuid.UUID]map[string]bool{},
		current:    map[uuid.UUID]string{},
		modifier:   map[uuid.UUID]*uuid.UUID{},
	}
	for _, name := range model.TaskStatusNames {
		r.states[strings.ToLower(name)] = &model.HousekeepingState{
			Base: model.Base{ID: uuid.New()},
			Name: name,
		}
	}
	return r
}

func (r *fakeTaskRepo) addTask(task *model.HousekeepingTask) {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	r.tasks[task.ID] = task
}

func (r *fakeTaskRepo) seedRecord(taskID uuid.UUID, status string) {
	if r.records[taskID] == nil {
		r.records[taskID] = map[string]bool{}
	}
	r.records[taskID][strings.ToLower(status)] = true
}

func (r *fakeTaskRepo) GetTask(_ context.Context, id uuid.UUID) (*model.HousekeepingTask, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, apperrors.NotFound("task", nil)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) GetStateByName(_ context.Context, name string) (*model.HousekeepingState, error) {
	s, ok := r.states[strings.ToLower(name)]
	if !ok {
		return nil, apperrors.NotFound("housekeeping state", nil)
	}
	return s, nil
}

func (r *fakeTaskRepo) GetPriorityByName(_ context.Context, name string) (*model.Priority, error) {
	p, ok := r.priorities[strings.ToLower(name)]
	if !ok {
		return nil, apperrors.NotFound("priority", nil)
	}
	return p, nil
}

func (r *fakeTaskRepo) CreateTaskTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func (r *fakeTaskRepo) CreateTask(_ context.Context, _ *sqlx.Tx, task *model.HousekeepingTask) error {
	task.ID = uuid.New()
	r.tasks[task.ID] = task
	r.created = append(r.created, task)
	return nil
}

func (r *fakeTaskRepo) AppendStatusRecord(_ context.Context, _ *sqlx.Tx, rec *model.TaskStatusRecord) error {
	rec.ID = uuid.New()
	r.history = append(r.history, rec)
	r.seedRecord(rec.TaskID, rec.Status)
	return nil
}

func (r *fakeTaskRepo) SetCurrentStatus(_ context.Context, _ *sqlx.Tx, taskID uuid.UUID, status string, modifiedBy *uuid.UUID) error {
	r.current[taskID] = status
	r.modifier[taskID] = modifiedBy
	if t, ok := r.tasks[taskID]; ok {
		t.CurrentStatus = status
	}
	return nil
}

func (r *fakeTaskRepo) HasStatusRecord(_ context.Context, taskID uuid.UUID, status string) (bool, error) {
	return r.records[taskID][strings.ToLower(status)], nil
}

type fakeShiftRepo struct {
	repository.ShiftRepository

	shiftsByName map[string]*model.Shift
	assignments  map[uuid.UUID]*model.ShiftAssignment
	byProfile    map[uuid.UUID]*model.ShiftAssignment
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{
		shiftsByName: map[string]*model.Shift{},
		assignments:  map[uuid.UUID]*model.ShiftAssignment{},
		byProfile:    map[uuid.UUID]*model.ShiftAssignment{},
	}
}

func (r *fakeShiftRepo) GetShiftByName(_ context.Context, name string) (*model.Shift, error) {
	s, ok := r.shiftsByName[strings.ToLower(name)]
	if !ok {
		return nil, apperrors.NotFound("shift", nil)
	}
	return s, nil
}

func (r *fakeShiftRepo) GetAssignment(_ context.Context, id uuid.UUID) (*model.ShiftAssignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, apperrors.NotFound("shift assignment", nil)
	}
	return a, nil
}

func (r *fakeShiftRepo) FindAssignment(_ context.Context, profileID uuid.UUID, _ time.Time, _ string) (*model.ShiftAssignment, error) {
	a, ok := r.byProfile[profileID]
	if !ok {
		return nil, apperrors.NotFound("shift assignment", nil)
	}
	return a, nil
}

type fakeProfileRepo struct {
	repository.ProfileRepository

	profiles map[uuid.UUID]*model.Profile
}

func (r *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.NotFound("profile", nil)
	}
	return p, nil
}

type fakeRoomRepo struct {
	repository.RoomRepository

	byNumber map[string]*model.Room
}

func (r *fakeRoomRepo) GetByNumber(_ context.Context, roomNumber string) (*model.Room, error) {
	rm, ok := r.byNumber[roomNumber]
	if !ok {
		return nil, apperrors.NotFound("room", nil)
	}
	return rm, nil
}

func newProfile(department string, roles ...string) *model.Profile {
	deptID := uuid.New()
	p := &model.Profile{
		Base:         model.Base{ID: uuid.New()},
		FullName:     "Test Staff",
		DepartmentID: &deptID,
		Department:   &model.Department{Base: model.Base{ID: deptID}, Name: department},
	}
	for _, role := range roles {
		p.Roles = append(p.Roles, model.ProfileRole{RoleName: role, IsActive: true})
	}
	return p
}

type testEnv struct {
	svc      *Service
	tasks    *fakeTaskRepo
	shifts   *fakeShiftRepo
	profiles *fakeProfileRepo
	rooms    *fakeRoomRepo
}

func newTestEnv() *testEnv {
	tasks := newFakeTaskRepo()
	shifts := newFakeShiftRepo()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*model.Profile{}}
	rooms := &fakeRoomRepo{byNumber: map[string]*model.Room{}}

	svc := NewService(tasks, shifts, profiles, rooms, nil, nil, zerolog.Nop())
	svc.now = func() time.Time { return testNow }

	return &testEnv{svc: svc, tasks: tasks, shifts: shifts, profiles: profiles, rooms: rooms}
}

func (e *testEnv) addAssignment(profileID uuid.UUID, statusName string, endOffset time.Duration) *model.ShiftAssignment {
	a := &model.ShiftAssignment{
		Base:           model.Base{ID: uuid.New()},
		ProfileID:      profileID,
		Date:           testNow.Truncate(24 * time.Hour),
		Status:         model.ShiftStatus{Name: statusName},
		ShiftStartTime: testNow.Add(-4 * time.Hour),
		ShiftEndTime:   testNow.Add(endOffset),
	}
	e.shifts.assignments[a.ID] = a
	e.shifts.byProfile[profileID] = a
	return a
}

func TestChangeStatusRejections(t *testing.T) {
	tests := []struct {
		name             string
		taskStatus       string
		target           string
		assignmentStatus string
		endOffset        time.Duration
		actorIsAssignee  bool
		supervisor       bool
		ongoingSeen      bool
		wantCode         apperrors.ErrorCode
	}{
		{
			name:             "actor is not the assignee",
			taskStatus:       model.TaskStatusPending,
			target:           model.TaskStatusOngoing,
			assignmentStatus: model.ShiftStatusStarted,
			endOffset:        4 * time.Hour,
			actorIsAssignee:  false,
			supervisor:       true,
			wantCode:         apperrors.ErrUnauthorizedActor,
		},
		{
			name:             "same status is a no-op",
			taskStatus:       model.TaskStatusOngoing,
			target:           model.TaskStatusOngoing,
			assignmentStatus: model.ShiftStatusStarted,
			endOffset:        4 * time.Hour,
			actorIsAssignee:  true,
			ongoingSeen:      true,
			wantCode:         apperrors.ErrNoOpTransition,
		},
		{
			name:             "shift window elapsed",
			taskStatus:       model.TaskStatusOngoing,
			target:           model.TaskStatusEnded,
			assignmentStatus: model.ShiftStatusStarted,
			endOffset:        -time.Hour,
			actorIsAssignee:  true,
			ongoingSeen:      true,
			wantCode:         apperrors.ErrShiftWindowClosed,
		},
		{
			name:             "shift already ended",
			taskStatus:       model.TaskStatusOngoing,
			target:           model.TaskStatusEnded,
			assignmentStatus: model.ShiftStatusEnded,
			endOffset:        4 * time.Hour,
			actorIsAssignee:  true,
			ongoingSeen:      true,
			wantCode:         apperrors.ErrShiftWindowClosed,
		},
		{
			name:             "shift not started",
			taskStatus:       model.TaskStatusPending,
			target:           model.TaskStatusOngoing,
			assignmentStatus: model.ShiftStatusPending,
			endOffset:        4 * time.Hour,
			actorIsAssignee:  true,
			wantCode:         apperrors.ErrShiftNotStarted,
		},
		{
			name:             "staff cannot reassign",
			taskStatus:       model.TaskStatusPending,
			target:           model.TaskStatusReassigned,
			assignmentStatus: model.ShiftStatusStarted,
			endOffset:        4 * time.Hour,
			actorIsAssignee:  true,
			wantCode:         apperrors.ErrRoleNotPermitted,
		},
		{
			name:             "cannot reopen an ended task",
			taskStatus:       model.TaskStatusEnded,
			target:           model.TaskStatusOngoing,
			assignmentStatus: model.ShiftStatusStarted,
			endOffset:        4 * time.Hour,
			actorIsAssignee:  true,
			ongoingSeen:      true,
			wantCode:         apperrors.ErrTaskAlreadyEnded,
		},
		{
			name:             "cannot end a task never started",
			taskStatus:       model.TaskStatusPending,
			target:           model.TaskStatusEnded,
			assignmentStatus: model.ShiftStatusStarted,
			endOffset:        4 * time.Hour,
			actorIsAssignee:  true,
			wantCode:         apperrors.ErrTaskNotStarted,
		},
		{
			name:             "supervisor limited on an unstarted task",
			taskStatus:       model.TaskStatusPending,
			target:           model.TaskStatusCompleted,
			assignmentStatus: model.ShiftStatusStarted,
			endOffset:        4 * time.Hour,
			actorIsAssignee:  true,
			supervisor:       true,
			wantCode:         apperrors.ErrTaskNotStarted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()

			roles := []string{model.RoleStaff}
			if tt.supervisor {
				roles = append(roles, model.RoleSupervisor)
			}
			actor := newProfile(model.DepartmentHousekeeping, roles...)
			env.profiles.profiles[actor.ID] = actor

			assigneeID := actor.ID
			if !tt.actorIsAssignee {
				assigneeID = uuid.New()
			}

			assignment := env.addAssignment(assigneeID, tt.assignmentStatus, tt.endOffset)
			task := &model.HousekeepingTask{
				AssignedToID:  assigneeID,
				MemberShiftID: assignment.ID,
				CurrentStatus: tt.taskStatus,
			}
			env.tasks.addTask(task)
			if tt.ongoingSeen {
				env.tasks.seedRecord(task.ID, model.TaskStatusOngoing)
			}

			_, err := env.svc.ChangeStatus(context.Background(), task.ID, tt.target, actor.ID)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
			assert.Empty(t, env.tasks.history, "rejected transition must not write history")
		})
	}
}

func TestChangeStatusSuccess(t *testing.T) {
	tests := []struct {
		name             string
		taskStatus       string
		target           string
		assignmentStatus string
		supervisor       bool
		ongoingSeen      bool
	}{
		{
			name:             "staff starts their task",
			taskStatus:       model.TaskStatusPending,
			target:           model.TaskStatusOngoing,
			assignmentStatus: model.ShiftStatusStarted,
		},
		{
			name:             "staff requests help mid-task",
			taskStatus:       model.TaskStatusOngoing,
			target:           model.TaskStatusRequestHelp,
			assignmentStatus: model.ShiftStatusStarted,
			ongoingSeen:      true,
		},
		{
			name:             "staff ends their task",
			taskStatus:       model.TaskStatusOngoing,
			target:           model.TaskStatusEnded,
			assignmentStatus: model.ShiftStatusStarted,
			ongoingSeen:      true,
		},
		{
			name:             "supervisor cancels before the shift starts",
			taskStatus:       model.TaskStatusPending,
			target:           model.TaskStatusCancelled,
			assignmentStatus: model.ShiftStatusPending,
			supervisor:       true,
		},
		{
			name:             "supervisor reassigns an unstarted task",
			taskStatus:       model.TaskStatusPending,
			target:           model.TaskStatusReassigned,
			assignmentStatus: model.ShiftStatusStarted,
			supervisor:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()

			roles := []string{model.RoleStaff}
			if tt.supervisor {
				roles = append(roles, model.RoleSupervisor)
			}
			actor := newProfile(model.DepartmentHousekeeping, roles...)
			env.profiles.profiles[actor.ID] = actor

			assignment := env.addAssignment(actor.ID, tt.assignmentStatus, 4*time.Hour)
			task := &model.HousekeepingTask{
				AssignedToID:  actor.ID,
				MemberShiftID: assignment.ID,
				CurrentStatus: tt.taskStatus,
			}
			env.tasks.addTask(task)
			if tt.ongoingSeen {
				env.tasks.seedRecord(task.ID, model.TaskStatusOngoing)
			}

			updated, err := env.svc.ChangeStatus(context.Background(), task.ID, tt.target, actor.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.target, updated.CurrentStatus)
			require.NotNil(t, updated.LastModifiedBy)
			assert.Equal(t, actor.ID, *updated.LastModifiedBy)

			require.Len(t, env.tasks.history, 1)
			rec := env.tasks.history[0]
			assert.Equal(t, task.ID, rec.TaskID)
			assert.Equal(t, tt.target, rec.Status)
			require.NotNil(t, rec.CreatedBy)
			assert.Equal(t, actor.ID, *rec.CreatedBy)

			assert.Equal(t, tt.target, env.tasks.current[task.ID])
		})
	}
}

func TestChangeStatusCanonicalizesCatalogCasing(t *testing.T) {
	env := newTestEnv()

	// A catalog row renamed to lower case still resolves, so gating must
	// treat it as the canonical status.
	env.tasks.states[strings.ToLower(model.TaskStatusOngoing)] = &model.HousekeepingState{
		Base: model.Base{ID: uuid.New()},
		Name: "ongoing",
	}

	actor := newProfile(model.DepartmentHousekeeping, model.RoleStaff)
	env.profiles.profiles[actor.ID] = actor

	assignment := env.addAssignment(actor.ID, model.ShiftStatusStarted, 4*time.Hour)
	task := &model.HousekeepingTask{
		AssignedToID:  actor.ID,
		MemberShiftID: assignment.ID,
		CurrentStatus: model.TaskStatusPending,
	}
	env.tasks.addTask(task)

	updated, err := env.svc.ChangeStatus(context.Background(), task.ID, "ongoing", actor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusOngoing, updated.CurrentStatus)

	require.Len(t, env.tasks.history, 1)
	assert.Equal(t, model.TaskStatusOngoing, env.tasks.history[0].Status)
	assert.Equal(t, model.TaskStatusOngoing, env.tasks.current[task.ID])
}

func TestCreateTaskValidation(t *testing.T) {
	shiftName := "Morning"
	roomNumber := "204"

	setup := func(env *testEnv) (*model.Profile, *model.Profile) {
		env.shifts.shiftsByName[strings.ToLower(shiftName)] = &model.Shift{
			Base: model.Base{ID: uuid.New()},
			Name: shiftName,
		}
		env.rooms.byNumber[roomNumber] = &model.Room{
			Base:       model.Base{ID: uuid.New()},
			RoomNumber: roomNumber,
		}
		env.tasks.priorities["high"] = &model.Priority{
			Base: model.Base{ID: uuid.New()},
			Name: "High",
		}

		creator := newProfile(model.DepartmentHousekeeping, model.RoleSupervisor)
		assignee := newProfile(model.DepartmentHousekeeping, model.RoleStaff)
		env.profiles.profiles[creator.ID] = creator
		env.profiles.profiles[assignee.ID] = assignee
		return creator, assignee
	}

	validReq := func(assigneeID uuid.UUID) *model.CreateTaskRequest {
		return &model.CreateTaskRequest{
			RoomNumber:     roomNumber,
			ShiftName:      shiftName,
			AssignmentDate: testNow,
			AssignedToID:   assigneeID,
			PriorityName:   "High",
			Title:          "Deep clean",
		}
	}

	t.Run("rejects a past date", func(t *testing.T) {
		env := newTestEnv()
		creator, assignee := setup(env)

		req := validReq(assignee.ID)
		req.AssignmentDate = testNow.AddDate(0, 0, -1)
		_, err := env.svc.CreateTask(context.Background(), req, creator.ID)
		assert.Equal(t, apperrors.ErrPastDate, apperrors.CodeOf(err))
	})

	t.Run("rejects a creator outside housekeeping", func(t *testing.T) {
		env := newTestEnv()
		_, assignee := setup(env)
		creator := newProfile(model.DepartmentFrontDesk, model.RoleSupervisor)
		env.profiles.profiles[creator.ID] = creator

		_, err := env.svc.CreateTask(context.Background(), validReq(assignee.ID), creator.ID)
		assert.Equal(t, apperrors.ErrCrossDepartment, apperrors.CodeOf(err))
	})

	t.Run("rejects a non-supervisor creator", func(t *testing.T) {
		env := newTestEnv()
		_, assignee := setup(env)
		creator := newProfile(model.DepartmentHousekeeping, model.RoleStaff)
		env.profiles.profiles[creator.ID] = creator

		_, err := env.svc.CreateTask(context.Background(), validReq(assignee.ID), creator.ID)
		assert.Equal(t, apperrors.ErrInsufficientRole, apperrors.CodeOf(err))
	})

	t.Run("rejects an assignee without a shift on that date", func(t *testing.T) {
		env := newTestEnv()
		creator, assignee := setup(env)
		env.addAssignment(creator.ID, model.ShiftStatusPending, 4*time.Hour)

		_, err := env.svc.CreateTask(context.Background(), validReq(assignee.ID), creator.ID)
		assert.Equal(t, apperrors.ErrNoShiftOnDate, apperrors.CodeOf(err))
	})

	t.Run("creates the task under the creator's assignment", func(t *testing.T) {
		env := newTestEnv()
		creator, assignee := setup(env)
		env.addAssignment(assignee.ID, model.ShiftStatusPending, 4*time.Hour)
		creatorAssignment := env.addAssignment(creator.ID, model.ShiftStatusPending, 4*time.Hour)

		task, err := env.svc.CreateTask(context.Background(), validReq(assignee.ID), creator.ID)
		require.NoError(t, err)

		assert.Equal(t, model.TaskStatusPending, task.CurrentStatus)
		assert.Equal(t, creatorAssignment.ID, task.MemberShiftID)
		assert.Equal(t, assignee.ID, task.AssignedToID)
		require.NotNil(t, task.CreatedBy)
		assert.Equal(t, creator.ID, *task.CreatedBy)

		require.Len(t, env.tasks.history, 1)
		assert.Equal(t, model.TaskStatusPending, env.tasks.history[0].Status)
	})

	t.Run("supporting a task flips the prior task", func(t *testing.T) {
		env := newTestEnv()
		creator, assignee := setup(env)
		env.addAssignment(assignee.ID, model.ShiftStatusPending, 4*time.Hour)
		env.addAssignment(creator.ID, model.ShiftStatusPending, 4*time.Hour)

		prior := &model.HousekeepingTask{CurrentStatus: model.TaskStatusRequestHelp}
		env.tasks.addTask(prior)

		req := validReq(assignee.ID)
		req.TaskSupported = &prior.ID
		_, err := env.svc.CreateTask(context.Background(), req, creator.ID)
		require.NoError(t, err)

		assert.Equal(t, model.TaskStatusSupportAssigned, env.tasks.current[prior.ID])

		var statuses []string
		for _, rec := range env.tasks.history {
			statuses = append(statuses, rec.Status)
		}
		assert.Contains(t, statuses, model.TaskStatusSupportAssigned)
		assert.Contains(t, statuses, model.TaskStatusPending)
	})
}

func TestMarkUnfinishedIsSystemAuthored(t *testing.T) {
	env := newTestEnv()
	task := &model.HousekeepingTask{CurrentStatus: model.TaskStatusOngoing}
	env.tasks.addTask(task)

	err := env.svc.MarkUnfinished(context.Background(), nil, task.ID)
	require.NoError(t, err)

	require.Len(t, env.tasks.history, 1)
	assert.Equal(t, model.TaskStatusUnfinished, env.tasks.history[0].Status)
	assert.Nil(t, env.tasks.history[0].CreatedBy, "system override carries no author")

	assert.Equal(t, model.TaskStatusUnfinished, env.tasks.current[task.ID])
	assert.Nil(t, env.tasks.modifier[task.ID])
}
