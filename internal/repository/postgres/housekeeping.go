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

type housekeepingRepository struct {
	BaseRepository
}

func NewHousekeepingRepository(db *sqlx.DB) *housekeepingRepository {
	return &housekeepingRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *housekeepingRepository) ListStates(ctx context.Context) ([]*model.HousekeepingState, error) {
	query := `
		SELECT id, name, allow_only_managers, allow_after_task_is_ended, created_at, updated_at
		FROM housekeeping_states
		ORDER BY name ASC
	`
	var states []*model.HousekeepingState
	err := r.db.SelectContext(ctx, &states, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list housekeeping states: %w", err)
	}
	return states, nil
}

func (r *housekeepingRepository) GetStateByName(ctx context.Context, name string) (*model.HousekeepingState, error) {
	query := `
		SELECT id, name, allow_only_managers, allow_after_task_is_ended, created_at, updated_at
		FROM housekeeping_states
		WHERE LOWER(name) = LOWER($1)
	`
	var state model.HousekeepingState
	err := r.db.GetContext(ctx, &state, query, name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("housekeeping state", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get housekeeping state: %w", err)
	}
	return &state, nil
}

func (r *housekeepingRepository) CreateTaskTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return r.WithTx(ctx, fn)
}

func (r *housekeepingRepository) CreateTask(ctx context.Context, tx *sqlx.Tx, task *model.HousekeepingTask) error {
	query := `
		INSERT INTO housekeeping_tasks (
			id, room_id, shift_id, assignment_date, assigned_to, member_shift_id,
			priority_id, title, description, task_supported, current_status,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	task.ID = uuid.New()
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()

	_, err := tx.ExecContext(ctx, query,
		task.ID,
		task.RoomID,
		task.ShiftID,
		task.AssignmentDate,
		task.AssignedToID,
		task.MemberShiftID,
		task.PriorityID,
		task.Title,
		task.Description,
		task.TaskSupportedID,
		task.CurrentStatus,
		task.CreatedBy,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create housekeeping task: %w", err)
	}
	return nil
}

const taskColumns = `
	t.id, t.room_id, t.shift_id, t.assignment_date, t.assigned_to, t.member_shift_id,
	t.priority_id, t.title, t.description, t.task_supported, t.current_status,
	t.created_by, t.last_modified_by, t.created_at, t.updated_at,
	rm.room_number AS room_number, s.name AS shift_name,
	p.full_name AS assignee_name, pr.name AS priority_name
`

const taskJoins = `
	FROM housekeeping_tasks t
	JOIN rooms rm ON rm.id = t.room_id
	JOIN shifts s ON s.id = t.shift_id
	JOIN profiles p ON p.id = t.assigned_to
	JOIN priorities pr ON pr.id = t.priority_id
`

func (r *housekeepingRepository) GetTask(ctx context.Context, id uuid.UUID) (*model.HousekeepingTask, error) {
	query := `SELECT ` + taskColumns + taskJoins + ` WHERE t.id = $1`
	var task model.HousekeepingTask
	err := r.db.GetContext(ctx, &task, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("housekeeping task", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get housekeeping task: %w", err)
	}
	return &task, nil
}

func (r *housekeepingRepository) UpdateTask(ctx context.Context, task *model.HousekeepingTask) error {
	query := `
		UPDATE housekeeping_tasks
		SET priority_id = $1, title = $2, description = $3,
			last_modified_by = $4, updated_at = $5
		WHERE id = $6
	`
	task.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		task.PriorityID,
		task.Title,
		task.Description,
		task.LastModifiedBy,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update housekeeping task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("housekeeping task", nil)
	}
	return nil
}

func (r *housekeepingRepository) ListTasks(ctx context.Context, filters *model.TaskFilters) ([]*model.HousekeepingTask, error) {
	query := `SELECT ` + taskColumns + taskJoins + ` WHERE 1 = 1`
	args := []interface{}{}
	argCount := 1

	if filters.MemberShiftID != nil {
		query += fmt.Sprintf(" AND t.member_shift_id = $%d", argCount)
		args = append(args, *filters.MemberShiftID)
		argCount++
	}

	if filters.AssignedToID != nil {
		query += fmt.Sprintf(" AND t.assigned_to = $%d", argCount)
		args = append(args, *filters.AssignedToID)
		argCount++
	}

	if filters.EmployeeName != "" {
		query += fmt.Sprintf(" AND p.full_name ILIKE $%d", argCount)
		args = append(args, "%"+filters.EmployeeName+"%")
		argCount++
	}

	if filters.ShiftName != "" {
		query += fmt.Sprintf(" AND LOWER(s.name) = LOWER($%d)", argCount)
		args = append(args, filters.ShiftName)
		argCount++
	}

	if filters.RoomNumber != "" {
		query += fmt.Sprintf(" AND rm.room_number = $%d", argCount)
		args = append(args, filters.RoomNumber)
		argCount++
	}

	if filters.CurrentStatus != "" {
		query += fmt.Sprintf(" AND LOWER(t.current_status) = LOWER($%d)", argCount)
		args = append(args, filters.CurrentStatus)
		argCount++
	}

	if filters.PriorityName != "" {
		query += fmt.Sprintf(" AND LOWER(pr.name) = LOWER($%d)", argCount)
		args = append(args, filters.PriorityName)
		argCount++
	}

	if filters.AssignmentDate != nil {
		query += fmt.Sprintf(" AND t.assignment_date = $%d", argCount)
		args = append(args, *filters.AssignmentDate)
		argCount++
	}

	query += " ORDER BY t.assignment_date DESC, t.created_at DESC"

	var tasks []*model.HousekeepingTask
	err := r.db.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list housekeeping tasks: %w", err)
	}
	return tasks, nil
}

func (r *housekeepingRepository) ListTasksForAssignment(ctx context.Context, memberShiftID uuid.UUID) ([]*model.HousekeepingTask, error) {
	query := `SELECT ` + taskColumns + taskJoins + ` WHERE t.member_shift_id = $1 ORDER BY t.created_at ASC`
	var tasks []*model.HousekeepingTask
	err := r.db.SelectContext(ctx, &tasks, query, memberShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for assignment: %w", err)
	}
	return tasks, nil
}

func (r *housekeepingRepository) ListAssignedStaff(ctx context.Context, roomID uuid.UUID, date time.Time, shiftID *uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT assigned_to
		FROM housekeeping_tasks
		WHERE room_id = $1 AND assignment_date = $2
	`
	args := []interface{}{roomID, date}
	if shiftID != nil {
		query += " AND shift_id = $3"
		args = append(args, *shiftID)
	}

	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned staff: %w", err)
	}
	return ids, nil
}

func (r *housekeepingRepository) AppendStatusRecord(ctx context.Context, tx *sqlx.Tx, rec *model.TaskStatusRecord) error {
	query := `
		INSERT INTO task_status_records (id, task_id, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()

	_, err := tx.ExecContext(ctx, query,
		rec.ID,
		rec.TaskID,
		rec.Status,
		rec.CreatedBy,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append status record: %w", err)
	}
	return nil
}

func (r *housekeepingRepository) SetCurrentStatus(ctx context.Context, tx *sqlx.Tx, taskID uuid.UUID, status string, modifiedBy *uuid.UUID) error {
	query := `
		UPDATE housekeeping_tasks
		SET current_status = $1, last_modified_by = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := tx.ExecContext(ctx, query, status, modifiedBy, time.Now(), taskID)
	if err != nil {
		return fmt.Errorf("failed to set current status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("housekeeping task", nil)
	}
	return nil
}

func (r *housekeepingRepository) ListStatusHistory(ctx context.Context, taskID uuid.UUID) ([]*model.TaskStatusRecord, error) {
	query := `
		SELECT id, task_id, status, created_by, created_at, updated_at
		FROM task_status_records
		WHERE task_id = $1
		ORDER BY created_at ASC
	`
	var records []*model.TaskStatusRecord
	err := r.db.SelectContext(ctx, &records, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}
	return records, nil
}

func (r *housekeepingRepository) HasStatusRecord(ctx context.Context, taskID uuid.UUID, status string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM task_status_records
			WHERE task_id = $1 AND LOWER(status) = LOWER($2)
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, taskID, status)
	if err != nil {
		return false, fmt.Errorf("failed to check status record: %w", err)
	}
	return exists, nil
}

func (r *housekeepingRepository) ListPriorities(ctx context.Context) ([]*model.Priority, error) {
	query := `SELECT id, name, created_at, updated_at FROM priorities ORDER BY name ASC`
	var priorities []*model.Priority
	err := r.db.SelectContext(ctx, &priorities, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list priorities: %w", err)
	}
	return priorities, nil
}

func (r *housekeepingRepository) GetPriorityByName(ctx context.Context, name string) (*model.Priority, error) {
	query := `SELECT id, name, created_at, updated_at FROM priorities WHERE LOWER(name) = LOWER($1)`
	var priority model.Priority
	err := r.db.GetContext(ctx, &priority, query, name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("priority", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get priority: %w", err)
	}
	return &priority, nil
}
