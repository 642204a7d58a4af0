package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
)

type fakeCatalogRepo struct {
	repository.CatalogRepository

	entries   map[string][]*model.CatalogEntry
	listCalls int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{entries: map[string][]*model.CatalogEntry{}}
}

func (r *fakeCatalogRepo) Create(_ context.Context, table string, entry *model.CatalogEntry) error {
	entry.ID = uuid.New()
	r.entries[table] = append(r.entries[table], entry)
	return nil
}

func (r *fakeCatalogRepo) List(_ context.Context, table string) ([]*model.CatalogEntry, error) {
	r.listCalls++
	return r.entries[table], nil
}

type fakeTaskRepo struct {
	repository.HousekeepingRepository

	states []*model.HousekeepingState
}

func (r *fakeTaskRepo) ListStates(_ context.Context) ([]*model.HousekeepingState, error) {
	return r.states, nil
}

type fakeShiftRepo struct {
	repository.ShiftRepository

	statuses []*model.ShiftStatus
}

func (r *fakeShiftRepo) ListStatuses(_ context.Context) ([]*model.ShiftStatus, error) {
	return r.statuses, nil
}

func fullCatalogs() (*fakeTaskRepo, *fakeShiftRepo) {
	tasks := &fakeTaskRepo{}
	for _, name := range model.TaskStatusNames {
		tasks.states = append(tasks.states, &model.HousekeepingState{Name: name})
	}
	shifts := &fakeShiftRepo{}
	for _, name := range []string{
		model.ShiftStatusPending,
		model.ShiftStatusStarted,
		model.ShiftStatusEnded,
		model.ShiftStatusExpired,
		model.ShiftStatusCancelled,
	} {
		shifts.statuses = append(shifts.statuses, &model.ShiftStatus{Name: name})
	}
	return tasks, shifts
}

func TestValidateStatusCatalogs(t *testing.T) {
	t.Run("accepts complete catalogs", func(t *testing.T) {
		tasks, shifts := fullCatalogs()
		svc := NewService(newFakeCatalogRepo(), tasks, shifts)
		assert.NoError(t, svc.ValidateStatusCatalogs(context.Background()))
	})

	t.Run("status names match case-insensitively", func(t *testing.T) {
		tasks, shifts := fullCatalogs()
		tasks.states[0].Name = "PENDING"
		shifts.statuses[0].Name = "pending"
		svc := NewService(newFakeCatalogRepo(), tasks, shifts)
		assert.NoError(t, svc.ValidateStatusCatalogs(context.Background()))
	})

	t.Run("rejects a missing task status", func(t *testing.T) {
		tasks, shifts := fullCatalogs()
		tasks.states = tasks.states[1:]
		svc := NewService(newFakeCatalogRepo(), tasks, shifts)
		err := svc.ValidateStatusCatalogs(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), model.TaskStatusPending)
	})

	t.Run("rejects a missing shift status", func(t *testing.T) {
		tasks, shifts := fullCatalogs()
		shifts.statuses = shifts.statuses[:len(shifts.statuses)-1]
		svc := NewService(newFakeCatalogRepo(), tasks, shifts)
		err := svc.ValidateStatusCatalogs(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), model.ShiftStatusCancelled)
	})
}

func TestListCachesUntilMutation(t *testing.T) {
	repo := newFakeCatalogRepo()
	tasks, shifts := fullCatalogs()
	svc := NewService(repo, tasks, shifts)
	ctx := context.Background()

	_, err := svc.Create(ctx, "floors", &model.CreateCatalogEntryRequest{Name: "Ground"}, nil)
	require.NoError(t, err)

	first, err := svc.List(ctx, "floors")
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = svc.List(ctx, "floors")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "second list should hit the cache")

	_, err = svc.Create(ctx, "floors", &model.CreateCatalogEntryRequest{Name: "Mezzanine"}, nil)
	require.NoError(t, err)

	second, err := svc.List(ctx, "floors")
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, 2, repo.listCalls, "mutation must invalidate the cached list")
}

func TestUnknownCatalogIsRejected(t *testing.T) {
	// The repository enforces the table whitelist; the service passes the
	// error through untouched.
	repo := &erroringCatalogRepo{}
	tasks, shifts := fullCatalogs()
	svc := NewService(repo, tasks, shifts)

	_, err := svc.List(context.Background(), "users")
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
}

type erroringCatalogRepo struct {
	repository.CatalogRepository
}

func (r *erroringCatalogRepo) List(_ context.Context, table string) ([]*model.CatalogEntry, error) {
	return nil, apperrors.BadRequest("unknown catalog table", nil)
}
