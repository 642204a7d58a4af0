package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hotelworks/hotel-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles login accounts
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		List(ctx context.Context) ([]*model.User, error)
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
		StoreResetToken(ctx context.Context, reset *model.PasswordReset) error
		GetResetToken(ctx context.Context, token string) (*model.PasswordReset, error)
		MarkResetTokenUsed(ctx context.Context, id uuid.UUID) error
	}

	// ProfileRepository handles staff identities and role memberships.
	// Get and GetByUserID hydrate the department and active roles so
	// authorization predicates work off a single load.
	ProfileRepository interface {
		Create(ctx context.Context, profile *model.Profile) error
		Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
		Update(ctx context.Context, profile *model.Profile) error
		List(ctx context.Context, departmentID *uuid.UUID) ([]*model.Profile, error)
		AssignRole(ctx context.Context, pr *model.ProfileRole) error
		DeactivateRole(ctx context.Context, profileID, roleID uuid.UUID) error
		ListRoles(ctx context.Context, profileID uuid.UUID) ([]*model.ProfileRole, error)

		CreateDepartment(ctx context.Context, dept *model.Department) error
		GetDepartment(ctx context.Context, id uuid.UUID) (*model.Department, error)
		GetDepartmentByName(ctx context.Context, name string) (*model.Department, error)
		ListDepartments(ctx context.Context) ([]*model.Department, error)

		CreateRole(ctx context.Context, role *model.Role) error
		ListRolesCatalog(ctx context.Context) ([]*model.Role, error)
	}

	// ShiftRepository handles the shift catalog and per-day assignments.
	ShiftRepository interface {
		CreateShift(ctx context.Context, shift *model.Shift) error
		GetShift(ctx context.Context, id uuid.UUID) (*model.Shift, error)
		GetShiftByName(ctx context.Context, name string) (*model.Shift, error)
		ListShifts(ctx context.Context) ([]*model.Shift, error)

		ListStatuses(ctx context.Context) ([]*model.ShiftStatus, error)
		GetStatusByName(ctx context.Context, name string) (*model.ShiftStatus, error)

		CreateAssignment(ctx context.Context, a *model.ShiftAssignment) error
		GetAssignment(ctx context.Context, id uuid.UUID) (*model.ShiftAssignment, error)
		UpdateAssignment(ctx context.Context, a *model.ShiftAssignment) error
		SetAssignmentStatus(ctx context.Context, tx *sqlx.Tx, assignmentID, statusID uuid.UUID) error
		WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
		AssignmentExists(ctx context.Context, profileID, shiftID uuid.UUID, date time.Time) (bool, error)
		FindAssignment(ctx context.Context, profileID uuid.UUID, date time.Time, shiftName string) (*model.ShiftAssignment, error)
		ListAssignments(ctx context.Context, filters *model.ShiftAssignmentFilters) ([]*model.ShiftAssignment, error)
		ListAssignmentsForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.ShiftAssignment, error)
		ListAssignmentsForDate(ctx context.Context, date time.Time) ([]*model.ShiftAssignment, error)
		ClearAssignments(ctx context.Context, date time.Time, shiftID uuid.UUID) (int64, error)

		CreateNote(ctx context.Context, note *model.ShiftNote) error
		ListNotes(ctx context.Context, assignedShiftID uuid.UUID) ([]*model.ShiftNote, error)
	}

	// HousekeepingRepository handles tasks, their append-only status
	// history, and the status catalog.
	HousekeepingRepository interface {
		ListStates(ctx context.Context) ([]*model.HousekeepingState, error)
		GetStateByName(ctx context.Context, name string) (*model.HousekeepingState, error)

		CreateTaskTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
		CreateTask(ctx context.Context, tx *sqlx.Tx, task *model.HousekeepingTask) error
		GetTask(ctx context.Context, id uuid.UUID) (*model.HousekeepingTask, error)
		UpdateTask(ctx context.Context, task *model.HousekeepingTask) error
		ListTasks(ctx context.Context, filters *model.TaskFilters) ([]*model.HousekeepingTask, error)
		ListTasksForAssignment(ctx context.Context, memberShiftID uuid.UUID) ([]*model.HousekeepingTask, error)
		ListAssignedStaff(ctx context.Context, roomID uuid.UUID, date time.Time, shiftID *uuid.UUID) ([]uuid.UUID, error)

		AppendStatusRecord(ctx context.Context, tx *sqlx.Tx, rec *model.TaskStatusRecord) error
		SetCurrentStatus(ctx context.Context, tx *sqlx.Tx, taskID uuid.UUID, status string, modifiedBy *uuid.UUID) error
		ListStatusHistory(ctx context.Context, taskID uuid.UUID) ([]*model.TaskStatusRecord, error)
		HasStatusRecord(ctx context.Context, taskID uuid.UUID, status string) (bool, error)

		ListPriorities(ctx context.Context) ([]*model.Priority, error)
		GetPriorityByName(ctx context.Context, name string) (*model.Priority, error)
	}

	// RoomRepository handles rooms and the room-side catalogs.
	RoomRepository interface {
		Create(ctx context.Context, room *model.Room) error
		Get(ctx context.Context, id uuid.UUID) (*model.Room, error)
		GetByNumber(ctx context.Context, roomNumber string) (*model.Room, error)
		Update(ctx context.Context, room *model.Room) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Room, error)
		SetOccupied(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, occupied bool) error

		CreateRoomType(ctx context.Context, rt *model.RoomType) error
		GetRoomType(ctx context.Context, id uuid.UUID) (*model.RoomType, error)
		UpdateRoomType(ctx context.Context, rt *model.RoomType) error
		DeleteRoomType(ctx context.Context, id uuid.UUID) error
		ListRoomTypes(ctx context.Context) ([]*model.RoomType, error)
		ListRoomAmenities(ctx context.Context, roomID uuid.UUID) ([]*model.CatalogEntry, error)
	}

	// CatalogRepository handles the simple named catalogs shared by the
	// admin surfaces (floors, views, amenities, bed types, genders,
	// priorities, name titles, countries, room categories).
	CatalogRepository interface {
		Create(ctx context.Context, table string, entry *model.CatalogEntry) error
		Get(ctx context.Context, table string, id uuid.UUID) (*model.CatalogEntry, error)
		Update(ctx context.Context, table string, entry *model.CatalogEntry) error
		Delete(ctx context.Context, table string, id uuid.UUID) error
		List(ctx context.Context, table string) ([]*model.CatalogEntry, error)
	}

	// BookingRepository handles guests, bookings, receipts and complaints.
	BookingRepository interface {
		CreateGuest(ctx context.Context, guest *model.Guest) error
		GetGuest(ctx context.Context, id uuid.UUID) (*model.Guest, error)
		GetGuestByGuestID(ctx context.Context, guestID string) (*model.Guest, error)
		ListGuests(ctx context.Context) ([]*model.Guest, error)
		UpdateGuest(ctx context.Context, guest *model.Guest) error

		CreateBooking(ctx context.Context, booking *model.Booking) error
		GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		UpdateBooking(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error
		ListBookings(ctx context.Context, activeOnly bool) ([]*model.Booking, error)

		GetReceipt(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
		UpdateReceiptBalance(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, balance float64) error

		CreateComplaint(ctx context.Context, complaint *model.Complaint) error
		GetComplaint(ctx context.Context, id uuid.UUID) (*model.Complaint, error)
		ListComplaints(ctx context.Context) ([]*model.Complaint, error)
		CreateComplaintAssignment(ctx context.Context, ca *model.ComplaintAssignment) error
		ListComplaintAssignments(ctx context.Context, complaintID uuid.UUID) ([]*model.ComplaintAssignment, error)

		WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	}
)
