package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift is a named working-window template. Start and end are
// time-of-day only; assignments materialize them into timestamps.
type Shift struct {
	Base
	Name      string     `db:"name" json:"name"`
	StartTime time.Time  `db:"start_time" json:"start_time"`
	EndTime   time.Time  `db:"end_time" json:"end_time"`
	CreatedBy *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

// ShiftStatus is a catalog row naming an assignment state. The
// ChangeAfterExpiry flag marks states the sweep may force to Expired.
type ShiftStatus struct {
	Base
	Name              string `db:"name" json:"name"`
	ChangeAfterExpiry bool   `db:"change_after_expiry" json:"change_after_expiry"`
}

// Assignment status names.
const (
	ShiftStatusPending   = "Pending"
	ShiftStatusStarted   = "Started"
	ShiftStatusEnded     = "Ended"
	ShiftStatusExpired   = "Expired"
	ShiftStatusCancelled = "Cancelled"
)

// ShiftAssignment binds one profile to one shift on one calendar date.
// ShiftStartTime/ShiftEndTime are the shift's times-of-day combined with
// the date at creation. At most one assignment exists per
// (profile, shift, date).
type ShiftAssignment struct {
	Base
	DepartmentID   *uuid.UUID  `db:"department_id" json:"department_id,omitempty"`
	ProfileID      uuid.UUID   `db:"profile_id" json:"profile_id"`
	ShiftID        uuid.UUID   `db:"shift_id" json:"shift_id"`
	Date           time.Time   `db:"date" json:"date"`
	StatusID       uuid.UUID   `db:"status_id" json:"status_id"`
	Status         ShiftStatus `db:"-" json:"status"`
	ShiftStartTime time.Time   `db:"shift_start_time" json:"shift_start_time"`
	ShiftEndTime   time.Time   `db:"shift_end_time" json:"shift_end_time"`
	TimeStarted    *time.Time  `db:"time_started" json:"time_started,omitempty"`
	TimeEnded      *time.Time  `db:"time_ended" json:"time_ended,omitempty"`
	EmployeeName   string      `db:"employee_name" json:"employee_name,omitempty"`
	ShiftName      string      `db:"shift_name" json:"shift_name,omitempty"`
	CreatedBy      *uuid.UUID  `db:"created_by" json:"created_by,omitempty"`
	LastModifiedBy *uuid.UUID  `db:"last_modified_by" json:"last_modified_by,omitempty"`
}

// WindowClosed reports whether the assignment's working window has
// elapsed or the assignee already ended it.
func (a *ShiftAssignment) WindowClosed(now time.Time) bool {
	if !a.ShiftEndTime.IsZero() && !a.ShiftEndTime.After(now) {
		return true
	}
	return a.Status.Name == ShiftStatusEnded
}

// Started reports whether the assignee has started working the shift.
func (a *ShiftAssignment) Started() bool {
	return a.Status.Name == ShiftStatusStarted
}

// ShiftNote is a free-form note an assignee attaches to their own shift.
type ShiftNote struct {
	Base
	AssignedShiftID uuid.UUID  `db:"assigned_shift_id" json:"assigned_shift_id"`
	Note            string     `db:"note" json:"note"`
	NoteDate        time.Time  `db:"note_date" json:"note_date"`
	CreatedBy       *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	LastModifiedBy  *uuid.UUID `db:"last_modified_by" json:"last_modified_by,omitempty"`
}

type CreateShiftRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type CreateShiftAssignmentRequest struct {
	ProfileID uuid.UUID `json:"profile" validate:"required"`
	ShiftID   uuid.UUID `json:"shift" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
}

type UpdateShiftAssignmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ShiftAssignmentFilters struct {
	Date                  *time.Time
	ShiftName             string
	DepartmentID          *uuid.UUID
	ExcludeInactiveShifts bool
}

type CreateShiftNoteRequest struct {
	AssignedShiftID uuid.UUID `json:"assigned_shift" validate:"required"`
	Note            string    `json:"note" validate:"required"`
	NoteDate        time.Time `json:"note_date" validate:"required"`
}
