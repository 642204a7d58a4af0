package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task status names. These form a closed set; the catalog table is
// validated against it at startup so a renamed row fails fast instead of
// silently breaking transitions.
const (
	TaskStatusPending         = "Pending"
	TaskStatusOngoing         = "Ongoing"
	TaskStatusEnded           = "Ended"
	TaskStatusCompleted       = "Completed"
	TaskStatusConfirmed       = "Confirmed"
	TaskStatusFaulty          = "Faulty"
	TaskStatusRequestHelp     = "Request Help"
	TaskStatusReassigned      = "Reassigned"
	TaskStatusCancelled       = "Cancelled"
	TaskStatusUnfinished      = "Unfinished"
	TaskStatusSupportAssigned = "Support Assigned"
)

// TaskStatusNames enumerates every status the catalog must carry.
var TaskStatusNames = []string{
	TaskStatusPending,
	TaskStatusOngoing,
	TaskStatusEnded,
	TaskStatusCompleted,
	TaskStatusConfirmed,
	TaskStatusFaulty,
	TaskStatusRequestHelp,
	TaskStatusReassigned,
	TaskStatusCancelled,
	TaskStatusUnfinished,
	TaskStatusSupportAssigned,
}

// CanonicalTaskStatus maps a status name to its canonical constant,
// ignoring case. Catalog rows are matched case-insensitively, so a row
// stored as "ongoing" must still gate transitions as Ongoing. Unknown
// names pass through unchanged.
func CanonicalTaskStatus(name string) string {
	for _, s := range TaskStatusNames {
		if strings.EqualFold(s, name) {
			return s
		}
	}
	return name
}

// TerminalTaskStatuses are the states the sweep leaves untouched.
var TerminalTaskStatuses = map[string]bool{
	TaskStatusEnded:      true,
	TaskStatusCompleted:  true,
	TaskStatusConfirmed:  true,
	TaskStatusFaulty:     true,
	TaskStatusCancelled:  true,
	TaskStatusUnfinished: true,
}

// HousekeepingState is a catalog row for a task status. The two flags
// are surfaced to clients but do not drive gating: transitions are
// checked against the fixed status sets in the housekeeping service, so
// editing a flag row cannot loosen the workflow.
type HousekeepingState struct {
	Base
	Name               string `db:"name" json:"name"`
	AllowOnlyManagers  bool   `db:"allow_only_managers" json:"allow_only_managers"`
	AllowAfterTaskEnds bool   `db:"allow_after_task_is_ended" json:"allow_after_task_is_ended"`
}

// Priority is a task priority catalog entry (Low, Medium, High).
type Priority struct {
	Base
	Name string `db:"name" json:"name"`
}

// HousekeepingTask is one unit of room-servicing work, executed under a
// shift assignment. CurrentStatus mirrors the newest status record; the
// history rows remain the source of truth for audits.
type HousekeepingTask struct {
	Base
	RoomID          uuid.UUID        `db:"room_id" json:"room_id"`
	RoomNumber      string           `db:"room_number" json:"room_number,omitempty"`
	ShiftID         uuid.UUID        `db:"shift_id" json:"shift_id"`
	ShiftName       string           `db:"shift_name" json:"shift_name,omitempty"`
	AssignmentDate  time.Time        `db:"assignment_date" json:"assignment_date"`
	AssignedToID    uuid.UUID        `db:"assigned_to" json:"assigned_to"`
	AssigneeName    string           `db:"assignee_name" json:"assignee_name,omitempty"`
	MemberShiftID   uuid.UUID        `db:"member_shift_id" json:"member_shift_id"`
	MemberShift     *ShiftAssignment `db:"-" json:"member_shift,omitempty"`
	PriorityID      uuid.UUID        `db:"priority_id" json:"priority_id"`
	PriorityName    string           `db:"priority_name" json:"priority_name,omitempty"`
	Title           string           `db:"title" json:"title"`
	Description     string           `db:"description" json:"description,omitempty"`
	TaskSupportedID *uuid.UUID       `db:"task_supported" json:"task_supported,omitempty"`
	CurrentStatus   string           `db:"current_status" json:"current_status"`
	CreatedBy       *uuid.UUID       `db:"created_by" json:"created_by,omitempty"`
	LastModifiedBy  *uuid.UUID       `db:"last_modified_by" json:"last_modified_by,omitempty"`
}

// TaskStatusRecord is one append-only entry in a task's status history.
// Records are never mutated or deleted. A nil CreatedBy marks a
// system-initiated override (the expiry sweep).
type TaskStatusRecord struct {
	Base
	TaskID    uuid.UUID  `db:"task_id" json:"task_id"`
	Status    string     `db:"status" json:"status"`
	CreatedBy *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

type CreateTaskRequest struct {
	RoomNumber     string     `json:"room" validate:"required"`
	ShiftName      string     `json:"shift" validate:"required"`
	AssignmentDate time.Time  `json:"assignment_date" validate:"required"`
	AssignedToID   uuid.UUID  `json:"assigned_to" validate:"required"`
	PriorityName   string     `json:"priority" validate:"required"`
	Title          string     `json:"title" validate:"required,max=255"`
	Description    string     `json:"description" validate:"max=1000"`
	TaskSupported  *uuid.UUID `json:"task_supported"`
}

type ChangeTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type TaskFilters struct {
	MemberShiftID  *uuid.UUID
	EmployeeName   string
	ShiftName      string
	RoomNumber     string
	CurrentStatus  string
	PriorityName   string
	AssignmentDate *time.Time
	AssignedToID   *uuid.UUID
}
