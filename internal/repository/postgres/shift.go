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

type shiftRepository struct {
	BaseRepository
}

func NewShiftRepository(db *sqlx.DB) *shiftRepository {
	return &shiftRepository{BaseRepository: NewBaseRepository(db)}
}

// SetAssignmentStatus writes an assignment's status inside an existing
// transaction. Used by the expiry sweep so the assignment flip and its
// task updates commit together.
func (r *shiftRepository) SetAssignmentStatus(ctx context.Context, tx *sqlx.Tx, assignmentID, statusID uuid.UUID) error {
	query := `UPDATE shift_assignments SET status_id = $1, updated_at = $2 WHERE id = $3`
	result, err := tx.ExecContext(ctx, query, statusID, time.Now(), assignmentID)
	if err != nil {
		return fmt.Errorf("failed to set assignment status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("shift assignment", nil)
	}
	return nil
}

func (r *shiftRepository) CreateShift(ctx context.Context, shift *model.Shift) error {
	query := `
		INSERT INTO shifts (id, name, start_time, end_time, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	shift.ID = uuid.New()
	shift.CreatedAt = time.Now()
	shift.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		shift.ID,
		shift.Name,
		shift.StartTime,
		shift.EndTime,
		shift.CreatedBy,
		shift.CreatedAt,
		shift.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}
	return nil
}

func (r *shiftRepository) GetShift(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	query := `SELECT id, name, start_time, end_time, created_by, created_at, updated_at FROM shifts WHERE id = $1`
	var shift model.Shift
	err := r.db.GetContext(ctx, &shift, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("shift", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return &shift, nil
}

func (r *shiftRepository) GetShiftByName(ctx context.Context, name string) (*model.Shift, error) {
	query := `SELECT id, name, start_time, end_time, created_by, created_at, updated_at FROM shifts WHERE LOWER(name) = LOWER($1)`
	var shift model.Shift
	err := r.db.GetContext(ctx, &shift, query, name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("shift", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift by name: %w", err)
	}
	return &shift, nil
}

func (r *shiftRepository) ListShifts(ctx context.Context) ([]*model.Shift, error) {
	query := `SELECT id, name, start_time, end_time, created_by, created_at, updated_at FROM shifts ORDER BY start_time ASC`
	var shifts []*model.Shift
	err := r.db.SelectContext(ctx, &shifts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

func (r *shiftRepository) ListStatuses(ctx context.Context) ([]*model.ShiftStatus, error) {
	query := `SELECT id, name, change_after_expiry, created_at, updated_at FROM shift_statuses ORDER BY name ASC`
	var statuses []*model.ShiftStatus
	err := r.db.SelectContext(ctx, &statuses, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift statuses: %w", err)
	}
	return statuses, nil
}

func (r *shiftRepository) GetStatusByName(ctx context.Context, name string) (*model.ShiftStatus, error) {
	query := `SELECT id, name, change_after_expiry, created_at, updated_at FROM shift_statuses WHERE LOWER(name) = LOWER($1)`
	var status model.ShiftStatus
	err := r.db.GetContext(ctx, &status, query, name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("shift status", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift status: %w", err)
	}
	return &status, nil
}

const assignmentColumns = `
	a.id, a.department_id, a.profile_id, a.shift_id, a.date, a.status_id,
	a.shift_start_time, a.shift_end_time, a.time_started, a.time_ended,
	a.created_by, a.last_modified_by, a.created_at, a.updated_at,
	p.full_name AS employee_name, s.name AS shift_name
`

func (r *shiftRepository) CreateAssignment(ctx context.Context, a *model.ShiftAssignment) error {
	query := `
		INSERT INTO shift_assignments (
			id, department_id, profile_id, shift_id, date, status_id,
			shift_start_time, shift_end_time, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.DepartmentID,
		a.ProfileID,
		a.ShiftID,
		a.Date,
		a.StatusID,
		a.ShiftStartTime,
		a.ShiftEndTime,
		a.CreatedBy,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shift assignment: %w", err)
	}
	return nil
}

func (r *shiftRepository) GetAssignment(ctx context.Context, id uuid.UUID) (*model.ShiftAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		JOIN profiles p ON p.id = a.profile_id
		JOIN shifts s ON s.id = a.shift_id
		WHERE a.id = $1
	`
	var a model.ShiftAssignment
	err := r.db.GetContext(ctx, &a, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("shift assignment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	if err := r.loadStatus(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *shiftRepository) loadStatus(ctx context.Context, a *model.ShiftAssignment) error {
	query := `SELECT id, name, change_after_expiry, created_at, updated_at FROM shift_statuses WHERE id = $1`
	var status model.ShiftStatus
	if err := r.db.GetContext(ctx, &status, query, a.StatusID); err != nil {
		return fmt.Errorf("failed to load assignment status: %w", err)
	}
	a.Status = status
	return nil
}

func (r *shiftRepository) UpdateAssignment(ctx context.Context, a *model.ShiftAssignment) error {
	query := `
		UPDATE shift_assignments
		SET status_id = $1, time_started = $2, time_ended = $3,
			last_modified_by = $4, updated_at = $5
		WHERE id = $6
	`
	a.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		a.StatusID,
		a.TimeStarted,
		a.TimeEnded,
		a.LastModifiedBy,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift assignment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("shift assignment", nil)
	}
	return nil
}

func (r *shiftRepository) AssignmentExists(ctx context.Context, profileID, shiftID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM shift_assignments
			WHERE profile_id = $1 AND shift_id = $2 AND date = $3
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, profileID, shiftID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment existence: %w", err)
	}
	return exists, nil
}

func (r *shiftRepository) FindAssignment(ctx context.Context, profileID uuid.UUID, date time.Time, shiftName string) (*model.ShiftAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		JOIN profiles p ON p.id = a.profile_id
		JOIN shifts s ON s.id = a.shift_id
		WHERE a.profile_id = $1 AND a.date = $2 AND LOWER(s.name) = LOWER($3)
	`
	var a model.ShiftAssignment
	err := r.db.GetContext(ctx, &a, query, profileID, date, shiftName)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("shift assignment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shift assignment: %w", err)
	}
	if err := r.loadStatus(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *shiftRepository) ListAssignments(ctx context.Context, filters *model.ShiftAssignmentFilters) ([]*model.ShiftAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		JOIN profiles p ON p.id = a.profile_id
		JOIN shifts s ON s.id = a.shift_id
		JOIN shift_statuses st ON st.id = a.status_id
		WHERE 1 = 1
	`
	args := []interface{}{}
	argCount := 1

	if filters.DepartmentID != nil {
		query += fmt.Sprintf(" AND a.department_id = $%d", argCount)
		args = append(args, *filters.DepartmentID)
		argCount++
	}

	if filters.Date != nil {
		query += fmt.Sprintf(" AND a.date = $%d", argCount)
		args = append(args, *filters.Date)
		argCount++
	}

	if filters.ShiftName != "" {
		query += fmt.Sprintf(" AND LOWER(s.name) = LOWER($%d)", argCount)
		args = append(args, filters.ShiftName)
		argCount++
	}

	if filters.ExcludeInactiveShifts {
		query += " AND st.name NOT IN ('Ended', 'Cancelled')"
	}

	query += " ORDER BY a.date ASC, a.shift_start_time ASC"

	var assignments []*model.ShiftAssignment
	err := r.db.SelectContext(ctx, &assignments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	return assignments, nil
}

func (r *shiftRepository) ListAssignmentsForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.ShiftAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		JOIN profiles p ON p.id = a.profile_id
		JOIN shifts s ON s.id = a.shift_id
		WHERE a.profile_id = $1
		ORDER BY a.date DESC
	`
	var assignments []*model.ShiftAssignment
	err := r.db.SelectContext(ctx, &assignments, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile shifts: %w", err)
	}
	return assignments, nil
}

func (r *shiftRepository) ListAssignmentsForDate(ctx context.Context, date time.Time) ([]*model.ShiftAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		JOIN profiles p ON p.id = a.profile_id
		JOIN shifts s ON s.id = a.shift_id
		WHERE a.date = $1
	`
	var assignments []*model.ShiftAssignment
	err := r.db.SelectContext(ctx, &assignments, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for date: %w", err)
	}
	for _, a := range assignments {
		if err := r.loadStatus(ctx, a); err != nil {
			return nil, err
		}
	}
	return assignments, nil
}

func (r *shiftRepository) ClearAssignments(ctx context.Context, date time.Time, shiftID uuid.UUID) (int64, error) {
	query := `DELETE FROM shift_assignments WHERE date = $1 AND shift_id = $2`
	result, err := r.db.ExecContext(ctx, query, date, shiftID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear shift assignments: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *shiftRepository) CreateNote(ctx context.Context, note *model.ShiftNote) error {
	query := `
		INSERT INTO shift_notes (
			id, assigned_shift_id, note, note_date, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	note.ID = uuid.New()
	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.AssignedShiftID,
		note.Note,
		note.NoteDate,
		note.CreatedBy,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shift note: %w", err)
	}
	return nil
}

func (r *shiftRepository) ListNotes(ctx context.Context, assignedShiftID uuid.UUID) ([]*model.ShiftNote, error) {
	query := `
		SELECT id, assigned_shift_id, note, note_date, created_by, last_modified_by, created_at, updated_at
		FROM shift_notes
		WHERE assigned_shift_id = $1
		ORDER BY note_date ASC
	`
	var notes []*model.ShiftNote
	err := r.db.SelectContext(ctx, &notes, query, assignedShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift notes: %w", err)
	}
	return notes, nil
}
