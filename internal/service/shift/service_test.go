package shift

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
)

var testNow = time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)

type fakeShiftRepo struct {
	repository.ShiftRepository

	shifts      map[uuid.UUID]*model.Shift
	statuses    map[string]*model.ShiftStatus
	assignments map[uuid.UUID]*model.ShiftAssignment
	existing    map[uuid.UUID]bool

	created []*model.ShiftAssignment
	updated []*model.ShiftAssignment
	notes   []*model.ShiftNote
	cleared int64
}

func newFakeShiftRepo() *fakeShiftRepo {
	r := &fakeShiftRepo{
		shifts:      map[uuid.UUID]*model.Shift{},
		statuses:    map[string]*model.ShiftStatus{},
		assignments: map[uuid.UUID]*model.ShiftAssignment{},
		existing:    map[uuid.UUID]bool{},
	}
	for _, name := range []string{
		model.ShiftStatusPending,
		model.ShiftStatusStarted,
		model.ShiftStatusEnded,
		model.ShiftStatusExpired,
		model.ShiftStatusCancelled,
	} {
		r.statuses[name] = &model.ShiftStatus{Base: model.Base{ID: uuid.New()}, Name: name}
	}
	return r
}

func (r *fakeShiftRepo) GetShift(_ context.Context, id uuid.UUID) (*model.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, apperrors.NotFound("shift", nil)
	}
	return s, nil
}

func (r *fakeShiftRepo) GetStatusByName(_ context.Context, name string) (*model.ShiftStatus, error) {
	s, ok := r.statuses[name]
	if !ok {
		return nil, apperrors.NotFound("shift status", nil)
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

func (r *fakeShiftRepo) AssignmentExists(_ context.Context, profileID uuid.UUID, _ uuid.UUID, _ time.Time) (bool, error) {
	return r.existing[profileID], nil
}

func (r *fakeShiftRepo) CreateAssignment(_ context.Context, a *model.ShiftAssignment) error {
	a.ID = uuid.New()
	r.assignments[a.ID] = a
	r.created = append(r.created, a)
	return nil
}

func (r *fakeShiftRepo) UpdateAssignment(_ context.Context, a *model.ShiftAssignment) error {
	r.updated = append(r.updated, a)
	return nil
}

func (r *fakeShiftRepo) ClearAssignments(_ context.Context, _ time.Time, _ uuid.UUID) (int64, error) {
	return r.cleared, nil
}

func (r *fakeShiftRepo) CreateNote(_ context.Context, note *model.ShiftNote) error {
	note.ID = uuid.New()
	r.notes = append(r.notes, note)
	return nil
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

type fakeEmail struct {
	sent []string
}

func (f *fakeEmail) SendPasswordReset(to, token string) error { return nil }

func (f *fakeEmail) SendBookingConfirmed(to, guestName, checkIn, checkOut string) error { return nil }

func (f *fakeEmail) SendShiftAssigned(to, shiftName, date string) error {
	f.sent = append(f.sent, to)
	return nil
}

func newProfile(deptID uuid.UUID, roles ...string) *model.Profile {
	p := &model.Profile{
		Base:         model.Base{ID: uuid.New()},
		FullName:     "Test Staff",
		DepartmentID: &deptID,
		Email:        "staff@example.com",
	}
	for _, role := range roles {
		p.Roles = append(p.Roles, model.ProfileRole{RoleName: role, IsActive: true})
	}
	return p
}

type testEnv struct {
	svc      *Service
	repo     *fakeShiftRepo
	profiles *fakeProfileRepo
	email    *fakeEmail
}

func newTestEnv() *testEnv {
	repo := newFakeShiftRepo()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*model.Profile{}}
	email := &fakeEmail{}

	svc := NewService(repo, profiles, nil, email, zerolog.Nop())
	svc.now = func() time.Time { return testNow }

	return &testEnv{svc: svc, repo: repo, profiles: profiles, email: email}
}

func TestCreateAssignment(t *testing.T) {
	deptID := uuid.New()
	otherDeptID := uuid.New()

	setup := func(env *testEnv) (author *model.Profile, assignee *model.Profile, shift *model.Shift) {
		author = newProfile(deptID, model.RoleStaff, model.RoleSupervisor)
		assignee = newProfile(deptID, model.RoleStaff)
		env.profiles.profiles[author.ID] = author
		env.profiles.profiles[assignee.ID] = assignee

		shift = &model.Shift{
			Base:      model.Base{ID: uuid.New()},
			Name:      "Morning",
			StartTime: time.Date(0, 1, 1, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(0, 1, 1, 16, 0, 0, 0, time.UTC),
		}
		env.repo.shifts[shift.ID] = shift
		return author, assignee, shift
	}

	t.Run("rejects a past date", func(t *testing.T) {
		env := newTestEnv()
		author, assignee, shift := setup(env)

		_, err := env.svc.CreateAssignment(context.Background(), &model.CreateShiftAssignmentRequest{
			ProfileID: assignee.ID,
			ShiftID:   shift.ID,
			Date:      testNow.AddDate(0, 0, -1),
		}, author.ID)
		assert.Equal(t, apperrors.ErrPastDate, apperrors.CodeOf(err))
	})

	t.Run("rejects an assignee in another department", func(t *testing.T) {
		env := newTestEnv()
		author, _, shift := setup(env)
		outsider := newProfile(otherDeptID, model.RoleStaff)
		env.profiles.profiles[outsider.ID] = outsider

		_, err := env.svc.CreateAssignment(context.Background(), &model.CreateShiftAssignmentRequest{
			ProfileID: outsider.ID,
			ShiftID:   shift.ID,
			Date:      testNow,
		}, author.ID)
		assert.Equal(t, apperrors.ErrCrossDepartment, apperrors.CodeOf(err))
	})

	t.Run("rejects an author with only the base role", func(t *testing.T) {
		env := newTestEnv()
		_, assignee, shift := setup(env)
		author := newProfile(deptID, model.RoleStaff)
		env.profiles.profiles[author.ID] = author

		_, err := env.svc.CreateAssignment(context.Background(), &model.CreateShiftAssignmentRequest{
			ProfileID: assignee.ID,
			ShiftID:   shift.ID,
			Date:      testNow,
		}, author.ID)
		assert.Equal(t, apperrors.ErrInsufficientRole, apperrors.CodeOf(err))
	})

	t.Run("rejects a duplicate assignment", func(t *testing.T) {
		env := newTestEnv()
		author, assignee, shift := setup(env)
		env.repo.existing[assignee.ID] = true

		_, err := env.svc.CreateAssignment(context.Background(), &model.CreateShiftAssignmentRequest{
			ProfileID: assignee.ID,
			ShiftID:   shift.ID,
			Date:      testNow,
		}, author.ID)
		assert.Equal(t, apperrors.ErrDuplicateAssignment, apperrors.CodeOf(err))
	})

	t.Run("materializes the shift window on the assignment date", func(t *testing.T) {
		env := newTestEnv()
		author, assignee, shift := setup(env)

		date := testNow.AddDate(0, 0, 2)
		assignment, err := env.svc.CreateAssignment(context.Background(), &model.CreateShiftAssignmentRequest{
			ProfileID: assignee.ID,
			ShiftID:   shift.ID,
			Date:      date,
		}, author.ID)
		require.NoError(t, err)

		assert.Equal(t, model.ShiftStatusPending, assignment.Status.Name)
		assert.Equal(t, assignee.DepartmentID, assignment.DepartmentID)

		wantStart := time.Date(date.Year(), date.Month(), date.Day(), 8, 0, 0, 0, date.Location())
		wantEnd := time.Date(date.Year(), date.Month(), date.Day(), 16, 0, 0, 0, date.Location())
		assert.Equal(t, wantStart, assignment.ShiftStartTime)
		assert.Equal(t, wantEnd, assignment.ShiftEndTime)

		require.NotNil(t, assignment.CreatedBy)
		assert.Equal(t, author.ID, *assignment.CreatedBy)

		assert.Equal(t, []string{"staff@example.com"}, env.email.sent)
	})
}

func TestUpdateAssignmentStatus(t *testing.T) {
	deptID := uuid.New()

	addAssignment := func(env *testEnv, profileID uuid.UUID, statusName string, endOffset time.Duration) *model.ShiftAssignment {
		a := &model.ShiftAssignment{
			Base:           model.Base{ID: uuid.New()},
			ProfileID:      profileID,
			Status:         model.ShiftStatus{Name: statusName},
			ShiftStartTime: testNow.Add(-2 * time.Hour),
			ShiftEndTime:   testNow.Add(endOffset),
		}
		env.repo.assignments[a.ID] = a
		return a
	}

	t.Run("only the assignee can work their shift", func(t *testing.T) {
		env := newTestEnv()
		actor := newProfile(deptID, model.RoleStaff)
		env.profiles.profiles[actor.ID] = actor
		a := addAssignment(env, uuid.New(), model.ShiftStatusPending, 4*time.Hour)

		_, err := env.svc.UpdateAssignmentStatus(context.Background(), a.ID, model.ShiftStatusStarted, actor.ID)
		assert.Equal(t, apperrors.ErrUnauthorizedActor, apperrors.CodeOf(err))
	})

	t.Run("rejects a no-op status change", func(t *testing.T) {
		env := newTestEnv()
		actor := newProfile(deptID, model.RoleStaff)
		env.profiles.profiles[actor.ID] = actor
		a := addAssignment(env, actor.ID, model.ShiftStatusStarted, 4*time.Hour)

		_, err := env.svc.UpdateAssignmentStatus(context.Background(), a.ID, model.ShiftStatusStarted, actor.ID)
		assert.Equal(t, apperrors.ErrNoOpTransition, apperrors.CodeOf(err))
	})

	t.Run("cannot start a shift whose window closed", func(t *testing.T) {
		env := newTestEnv()
		actor := newProfile(deptID, model.RoleStaff)
		env.profiles.profiles[actor.ID] = actor
		a := addAssignment(env, actor.ID, model.ShiftStatusPending, -time.Hour)

		_, err := env.svc.UpdateAssignmentStatus(context.Background(), a.ID, model.ShiftStatusStarted, actor.ID)
		assert.Equal(t, apperrors.ErrShiftWindowClosed, apperrors.CodeOf(err))
	})

	t.Run("starting stamps time_started", func(t *testing.T) {
		env := newTestEnv()
		actor := newProfile(deptID, model.RoleStaff)
		env.profiles.profiles[actor.ID] = actor
		a := addAssignment(env, actor.ID, model.ShiftStatusPending, 4*time.Hour)

		updated, err := env.svc.UpdateAssignmentStatus(context.Background(), a.ID, model.ShiftStatusStarted, actor.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ShiftStatusStarted, updated.Status.Name)
		require.NotNil(t, updated.TimeStarted)
		assert.Equal(t, testNow, *updated.TimeStarted)
		assert.Nil(t, updated.TimeEnded)
	})

	t.Run("supervisor cannot start another's shift", func(t *testing.T) {
		env := newTestEnv()
		supervisor := newProfile(deptID, model.RoleStaff, model.RoleSupervisor)
		env.profiles.profiles[supervisor.ID] = supervisor
		a := addAssignment(env, uuid.New(), model.ShiftStatusPending, 4*time.Hour)
		a.DepartmentID = supervisor.DepartmentID

		_, err := env.svc.UpdateAssignmentStatus(context.Background(), a.ID, model.ShiftStatusStarted, supervisor.ID)
		assert.Equal(t, apperrors.ErrUnauthorizedActor, apperrors.CodeOf(err))
	})

	t.Run("supervisor cannot touch another department's shift", func(t *testing.T) {
		env := newTestEnv()
		supervisor := newProfile(deptID, model.RoleStaff, model.RoleSupervisor)
		env.profiles.profiles[supervisor.ID] = supervisor
		otherDept := uuid.New()
		a := addAssignment(env, uuid.New(), model.ShiftStatusStarted, 4*time.Hour)
		a.DepartmentID = &otherDept

		_, err := env.svc.UpdateAssignmentStatus(context.Background(), a.ID, model.ShiftStatusCancelled, supervisor.ID)
		assert.Equal(t, apperrors.ErrUnauthorizedActor, apperrors.CodeOf(err))
	})

	t.Run("supervisor can cancel a shift in their department", func(t *testing.T) {
		env := newTestEnv()
		supervisor := newProfile(deptID, model.RoleStaff, model.RoleSupervisor)
		env.profiles.profiles[supervisor.ID] = supervisor
		a := addAssignment(env, uuid.New(), model.ShiftStatusPending, 4*time.Hour)
		a.DepartmentID = supervisor.DepartmentID

		updated, err := env.svc.UpdateAssignmentStatus(context.Background(), a.ID, model.ShiftStatusCancelled, supervisor.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ShiftStatusCancelled, updated.Status.Name)
		require.NotNil(t, updated.LastModifiedBy)
		assert.Equal(t, supervisor.ID, *updated.LastModifiedBy)
	})

	t.Run("ending stamps time_ended", func(t *testing.T) {
		env := newTestEnv()
		actor := newProfile(deptID, model.RoleStaff)
		env.profiles.profiles[actor.ID] = actor
		a := addAssignment(env, actor.ID, model.ShiftStatusStarted, 4*time.Hour)

		updated, err := env.svc.UpdateAssignmentStatus(context.Background(), a.ID, model.ShiftStatusEnded, actor.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.TimeEnded)
		assert.Equal(t, testNow, *updated.TimeEnded)
	})
}

func TestClearAssignments(t *testing.T) {
	env := newTestEnv()
	deptID := uuid.New()

	staff := newProfile(deptID, model.RoleStaff)
	supervisor := newProfile(deptID, model.RoleStaff, model.RoleSupervisor)
	env.profiles.profiles[staff.ID] = staff
	env.profiles.profiles[supervisor.ID] = supervisor
	env.repo.cleared = 3

	_, err := env.svc.ClearAssignments(context.Background(), testNow, uuid.New(), staff.ID)
	assert.Equal(t, apperrors.ErrInsufficientRole, apperrors.CodeOf(err))

	removed, err := env.svc.ClearAssignments(context.Background(), testNow, uuid.New(), supervisor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestCreateNoteRequiresOwnShift(t *testing.T) {
	env := newTestEnv()
	actorID := uuid.New()

	own := &model.ShiftAssignment{Base: model.Base{ID: uuid.New()}, ProfileID: actorID}
	other := &model.ShiftAssignment{Base: model.Base{ID: uuid.New()}, ProfileID: uuid.New()}
	env.repo.assignments[own.ID] = own
	env.repo.assignments[other.ID] = other

	_, err := env.svc.CreateNote(context.Background(), &model.CreateShiftNoteRequest{
		AssignedShiftID: other.ID,
		Note:            "lost key card",
		NoteDate:        testNow,
	}, actorID)
	assert.Equal(t, apperrors.ErrUnauthorizedActor, apperrors.CodeOf(err))

	note, err := env.svc.CreateNote(context.Background(), &model.CreateShiftNoteRequest{
		AssignedShiftID: own.ID,
		Note:            "lost key card",
		NoteDate:        testNow,
	}, actorID)
	require.NoError(t, err)
	require.NotNil(t, note.CreatedBy)
	assert.Equal(t, actorID, *note.CreatedBy)
}
