package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Department is a hotel department (Housekeeping, Front Desk, Kitchen).
type Department struct {
	Base
	Name string `db:"name" json:"name"`
}

// Role is a named staff role (Staff, Supervisor, Department Exec, Admin).
type Role struct {
	Base
	Name string `db:"name" json:"name"`
}

// Well-known role and department names. Catalog rows are matched
// case-insensitively against these at startup.
const (
	RoleStaff      = "Staff"
	RoleSupervisor = "Supervisor"
	RoleDeptExec   = "Department Exec"
	RoleAdmin      = "Admin"

	DepartmentHousekeeping = "Housekeeping"
	DepartmentFrontDesk    = "Front Desk"
)

// Profile is a staff member's business identity, distinct from their
// login account. A profile belongs to at most one department at a time.
type Profile struct {
	Base
	FullName     string        `db:"full_name" json:"full_name"`
	UserID       uuid.UUID     `db:"user_id" json:"user_id"`
	DepartmentID *uuid.UUID    `db:"department_id" json:"department_id,omitempty"`
	Department   *Department   `db:"-" json:"department,omitempty"`
	Roles        []ProfileRole `db:"-" json:"roles,omitempty"`
	Birthdate    *time.Time    `db:"birthdate" json:"birthdate,omitempty"`
	PhoneNumber  string        `db:"phone_number" json:"phone_number,omitempty"`
	Email        string        `db:"email" json:"email,omitempty"`
	Address      string        `db:"residential_address" json:"residential_address,omitempty"`
	GenderID     *uuid.UUID    `db:"gender_id" json:"gender_id,omitempty"`
	CreatedBy    *uuid.UUID    `db:"created_by" json:"created_by,omitempty"`
}

// ProfileRole is a role membership. Profiles are never hard-deleted;
// memberships are deactivated instead.
type ProfileRole struct {
	Base
	ProfileID uuid.UUID  `db:"profile_id" json:"profile_id"`
	RoleID    uuid.UUID  `db:"role_id" json:"role_id"`
	RoleName  string     `db:"role_name" json:"role_name"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	CreatedBy *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

// HasRole reports whether the profile holds an active membership whose
// role name matches case-insensitively.
func (p *Profile) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r.IsActive && strings.EqualFold(r.RoleName, name) {
			return true
		}
	}
	return false
}

// HasRoleOtherThan reports whether the profile holds any active role
// besides the named one. Shift assignment is restricted to staff who
// hold at least one non-base role.
func (p *Profile) HasRoleOtherThan(name string) bool {
	for _, r := range p.Roles {
		if r.IsActive && !strings.EqualFold(r.RoleName, name) {
			return true
		}
	}
	return false
}

// MemberOf reports whether the profile belongs to the named department.
func (p *Profile) MemberOf(departmentName string) bool {
	return p.Department != nil && strings.EqualFold(p.Department.Name, departmentName)
}

// SameDepartment reports whether two profiles share a department.
func (p *Profile) SameDepartment(other *Profile) bool {
	if p.DepartmentID == nil || other == nil || other.DepartmentID == nil {
		return false
	}
	return *p.DepartmentID == *other.DepartmentID
}

type CreateProfileRequest struct {
	FullName     string     `json:"full_name" validate:"required,max=255"`
	UserID       uuid.UUID  `json:"user_id" validate:"required"`
	DepartmentID *uuid.UUID `json:"department_id"`
	PhoneNumber  string     `json:"phone_number" validate:"max=30"`
	Email        string     `json:"email" validate:"omitempty,email"`
	Address      string     `json:"residential_address" validate:"max=255"`
	GenderID     *uuid.UUID `json:"gender_id"`
}

type UpdateProfileRequest struct {
	FullName     *string    `json:"full_name"`
	DepartmentID *uuid.UUID `json:"department_id"`
	PhoneNumber  *string    `json:"phone_number"`
	Email        *string    `json:"email"`
	Address      *string    `json:"residential_address"`
}

type AssignRoleRequest struct {
	ProfileID uuid.UUID `json:"profile_id" validate:"required"`
	RoleID    uuid.UUID `json:"role_id" validate:"required"`
}
