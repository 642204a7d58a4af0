package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hotelworks/hotel-api/internal/model"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
)

// catalogTables whitelists the tables the shared catalog repository may
// touch. Table names are interpolated into SQL, so anything outside this
// set is rejected.
var catalogTables = map[string]bool{
	"floors":          true,
	"views":           true,
	"amenities":       true,
	"bed_types":       true,
	"genders":         true,
	"priorities":      true,
	"name_titles":     true,
	"countries":       true,
	"room_categories": true,
}

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) checkTable(table string) error {
	if !catalogTables[table] {
		return apperrors.BadRequest(fmt.Sprintf("unknown catalog %q", table), nil)
	}
	return nil
}

func (r *catalogRepository) Create(ctx context.Context, table string, entry *model.CatalogEntry) error {
	if err := r.checkTable(table); err != nil {
		return err
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (id, name, created_by, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		table,
	)
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.Name,
		entry.CreatedBy,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create %s entry: %w", table, err)
	}
	return nil
}

func (r *catalogRepository) Get(ctx context.Context, table string, id uuid.UUID) (*model.CatalogEntry, error) {
	if err := r.checkTable(table); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		`SELECT id, name, created_by, created_at, updated_at FROM %s WHERE id = $1`,
		table,
	)
	var entry model.CatalogEntry
	err := r.db.GetContext(ctx, &entry, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("catalog entry", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s entry: %w", table, err)
	}
	return &entry, nil
}

func (r *catalogRepository) Update(ctx context.Context, table string, entry *model.CatalogEntry) error {
	if err := r.checkTable(table); err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET name = $1, updated_at = $2 WHERE id = $3`, table)
	entry.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, entry.Name, entry.UpdatedAt, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update %s entry: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("catalog entry", nil)
	}
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, table string, id uuid.UUID) error {
	if err := r.checkTable(table); err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s entry: %w", table, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("catalog entry", nil)
	}
	return nil
}

func (r *catalogRepository) List(ctx context.Context, table string) ([]*model.CatalogEntry, error) {
	if err := r.checkTable(table); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		`SELECT id, name, created_by, created_at, updated_at FROM %s ORDER BY name ASC`,
		table,
	)
	var entries []*model.CatalogEntry
	err := r.db.SelectContext(ctx, &entries, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s entries: %w", table, err)
	}
	return entries, nil
}
