package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Service fronts the named catalogs with a read-through cache. Catalog
// rows change rarely, so a short TTL keeps lookups cheap without a
// separate invalidation path.
type Service struct {
	repo   repository.CatalogRepository
	hkRepo repository.HousekeepingRepository
	shifts repository.ShiftRepository
	cache  *cache.Cache
}

func NewService(repo repository.CatalogRepository, hkRepo repository.HousekeepingRepository, shifts repository.ShiftRepository) *Service {
	return &Service{
		repo:   repo,
		hkRepo: hkRepo,
		shifts: shifts,
		cache:  cache.New(cacheTTL, cacheCleanup),
	}
}

// ValidateStatusCatalogs checks that the task and shift status tables
// carry every name the workflow depends on. A renamed or missing row
// fails startup instead of breaking transitions at runtime.
func (s *Service) ValidateStatusCatalogs(ctx context.Context) error {
	states, err := s.hkRepo.ListStates(ctx)
	if err != nil {
		return fmt.Errorf("failed to load task status catalog: %w", err)
	}
	have := make(map[string]bool, len(states))
	for _, st := range states {
		have[strings.ToLower(st.Name)] = true
	}
	for _, name := range model.TaskStatusNames {
		if !have[strings.ToLower(name)] {
			return fmt.Errorf("task status catalog is missing %q", name)
		}
	}

	shiftStatuses, err := s.shifts.ListStatuses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load shift status catalog: %w", err)
	}
	haveShift := make(map[string]bool, len(shiftStatuses))
	for _, st := range shiftStatuses {
		haveShift[strings.ToLower(st.Name)] = true
	}
	for _, name := range []string{
		model.ShiftStatusPending,
		model.ShiftStatusStarted,
		model.ShiftStatusEnded,
		model.ShiftStatusExpired,
		model.ShiftStatusCancelled,
	} {
		if !haveShift[strings.ToLower(name)] {
			return fmt.Errorf("shift status catalog is missing %q", name)
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, table string, req *model.CreateCatalogEntryRequest, createdBy *uuid.UUID) (*model.CatalogEntry, error) {
	entry := &model.CatalogEntry{
		Name:      req.Name,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, table, entry); err != nil {
		return nil, err
	}
	s.cache.Delete(listKey(table))
	return entry, nil
}

func (s *Service) Get(ctx context.Context, table string, id uuid.UUID) (*model.CatalogEntry, error) {
	return s.repo.Get(ctx, table, id)
}

func (s *Service) Update(ctx context.Context, table string, entry *model.CatalogEntry) error {
	if err := s.repo.Update(ctx, table, entry); err != nil {
		return err
	}
	s.cache.Delete(listKey(table))
	return nil
}

func (s *Service) Delete(ctx context.Context, table string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, table, id); err != nil {
		return err
	}
	s.cache.Delete(listKey(table))
	return nil
}

func (s *Service) List(ctx context.Context, table string) ([]*model.CatalogEntry, error) {
	if cached, ok := s.cache.Get(listKey(table)); ok {
		return cached.([]*model.CatalogEntry), nil
	}

	entries, err := s.repo.List(ctx, table)
	if err != nil {
		return nil, err
	}
	s.cache.Set(listKey(table), entries, cache.DefaultExpiration)
	return entries, nil
}

func listKey(table string) string {
	return "catalog:" + table
}
