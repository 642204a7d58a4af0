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

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (
			id, full_name, user_id, department_id, birthdate, phone_number,
			email, residential_address, gender_id, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.FullName,
		profile.UserID,
		profile.DepartmentID,
		profile.Birthdate,
		profile.PhoneNumber,
		profile.Email,
		profile.Address,
		profile.GenderID,
		profile.CreatedBy,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT id, full_name, user_id, department_id, birthdate, phone_number,
			   email, residential_address, gender_id, created_by, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("profile", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if err := r.hydrate(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT id, full_name, user_id, department_id, birthdate, phone_number,
			   email, residential_address, gender_id, created_by, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("profile", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by user: %w", err)
	}
	if err := r.hydrate(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// hydrate loads the department and active role memberships so the
// authorization predicates can run without further queries.
func (r *profileRepository) hydrate(ctx context.Context, profile *model.Profile) error {
	if profile.DepartmentID != nil {
		dept, err := r.GetDepartment(ctx, *profile.DepartmentID)
		if err != nil {
			return err
		}
		profile.Department = dept
	}

	roles, err := r.ListRoles(ctx, profile.ID)
	if err != nil {
		return err
	}
	profile.Roles = make([]model.ProfileRole, 0, len(roles))
	for _, pr := range roles {
		profile.Roles = append(profile.Roles, *pr)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, department_id = $2, phone_number = $3,
			email = $4, residential_address = $5, updated_at = $6
		WHERE id = $7
	`
	profile.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		profile.FullName,
		profile.DepartmentID,
		profile.PhoneNumber,
		profile.Email,
		profile.Address,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("profile", nil)
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context, departmentID *uuid.UUID) ([]*model.Profile, error) {
	query := `
		SELECT id, full_name, user_id, department_id, birthdate, phone_number,
			   email, residential_address, gender_id, created_by, created_at, updated_at
		FROM profiles
	`
	args := []interface{}{}
	if departmentID != nil {
		query += " WHERE department_id = $1"
		args = append(args, *departmentID)
	}
	query += " ORDER BY full_name ASC"

	var profiles []*model.Profile
	err := r.db.SelectContext(ctx, &profiles, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) AssignRole(ctx context.Context, pr *model.ProfileRole) error {
	query := `
		INSERT INTO profile_roles (
			id, profile_id, role_id, is_active, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	pr.ID = uuid.New()
	pr.CreatedAt = time.Now()
	pr.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		pr.ID,
		pr.ProfileID,
		pr.RoleID,
		pr.IsActive,
		pr.CreatedBy,
		pr.CreatedAt,
		pr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

func (r *profileRepository) DeactivateRole(ctx context.Context, profileID, roleID uuid.UUID) error {
	query := `
		UPDATE profile_roles SET is_active = false, updated_at = $1
		WHERE profile_id = $2 AND role_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), profileID, roleID)
	if err != nil {
		return fmt.Errorf("failed to deactivate role: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("role membership", nil)
	}
	return nil
}

func (r *profileRepository) ListRoles(ctx context.Context, profileID uuid.UUID) ([]*model.ProfileRole, error) {
	query := `
		SELECT pr.id, pr.profile_id, pr.role_id, r.name AS role_name,
			   pr.is_active, pr.created_by, pr.created_at, pr.updated_at
		FROM profile_roles pr
		JOIN roles r ON r.id = pr.role_id
		WHERE pr.profile_id = $1
		ORDER BY pr.created_at ASC
	`
	var roles []*model.ProfileRole
	err := r.db.SelectContext(ctx, &roles, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile roles: %w", err)
	}
	return roles, nil
}

func (r *profileRepository) CreateDepartment(ctx context.Context, dept *model.Department) error {
	query := `INSERT INTO departments (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	dept.ID = uuid.New()
	dept.CreatedAt = time.Now()
	dept.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query, dept.ID, dept.Name, dept.CreatedAt, dept.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *profileRepository) GetDepartment(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	query := `SELECT id, name, created_at, updated_at FROM departments WHERE id = $1`
	var dept model.Department
	err := r.db.GetContext(ctx, &dept, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("department", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &dept, nil
}

func (r *profileRepository) GetDepartmentByName(ctx context.Context, name string) (*model.Department, error) {
	query := `SELECT id, name, created_at, updated_at FROM departments WHERE LOWER(name) = LOWER($1)`
	var dept model.Department
	err := r.db.GetContext(ctx, &dept, query, name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("department", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department by name: %w", err)
	}
	return &dept, nil
}

func (r *profileRepository) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	query := `SELECT id, name, created_at, updated_at FROM departments ORDER BY name ASC`
	var depts []*model.Department
	err := r.db.SelectContext(ctx, &depts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

func (r *profileRepository) CreateRole(ctx context.Context, role *model.Role) error {
	query := `INSERT INTO roles (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	role.ID = uuid.New()
	role.CreatedAt = time.Now()
	role.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query, role.ID, role.Name, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (r *profileRepository) ListRolesCatalog(ctx context.Context) ([]*model.Role, error) {
	query := `SELECT id, name, created_at, updated_at FROM roles ORDER BY name ASC`
	var roles []*model.Role
	err := r.db.SelectContext(ctx, &roles, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}
