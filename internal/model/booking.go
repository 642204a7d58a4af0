package model

import (
	"time"

	"github.com/google/uuid"
)

// Guest is a hotel guest record, keyed by a human-readable guest number
// in addition to the row ID.
type Guest struct {
	Base
	GuestID     string     `db:"guest_id" json:"guest_id"`
	FullName    string     `db:"full_name" json:"full_name"`
	Email       string     `db:"email" json:"email,omitempty"`
	PhoneNumber string     `db:"phone_number" json:"phone_number,omitempty"`
	CountryID   *uuid.UUID `db:"country_id" json:"country_id,omitempty"`
	NameTitleID *uuid.UUID `db:"name_title_id" json:"name_title_id,omitempty"`
	IdentityDoc string     `db:"identity_doc" json:"identity_doc,omitempty"`
	CreatedBy   *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

// Receipt tracks a booking's prepaid balance. Checkout decrements the
// balance by the outstanding amount; no concurrency control beyond the
// enclosing transaction.
type Receipt struct {
	Base
	ReceiptNumber string    `db:"receipt_number" json:"receipt_number"`
	GuestID       uuid.UUID `db:"guest_id" json:"guest_id"`
	Balance       float64   `db:"balance" json:"balance"`
	Status        string    `db:"status" json:"status"`
}

// Receipt statuses.
const (
	ReceiptStatusActivated   = "activated"
	ReceiptStatusDeactivated = "deactivated"
)

type Booking struct {
	Base
	CheckIn        time.Time  `db:"check_in" json:"check_in"`
	CheckOut       time.Time  `db:"check_out" json:"check_out"`
	GuestID        uuid.UUID  `db:"guest_id" json:"guest_id"`
	RoomCategoryID *uuid.UUID `db:"room_category_id" json:"room_category_id,omitempty"`
	RoomTypeID     *uuid.UUID `db:"room_type_id" json:"room_type_id,omitempty"`
	RoomID         *uuid.UUID `db:"room_id" json:"room_id,omitempty"`
	ReceiptID      *uuid.UUID `db:"receipt_id" json:"receipt_id,omitempty"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CheckedOutBy   *uuid.UUID `db:"checked_out_by" json:"checked_out_by,omitempty"`
	CreatedBy      *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

// Nights returns the booking length in nights.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

type CreateBookingRequest struct {
	CheckIn        time.Time  `json:"check_in" validate:"required"`
	CheckOut       time.Time  `json:"check_out" validate:"required,gtfield=CheckIn"`
	GuestID        uuid.UUID  `json:"guest_id" validate:"required"`
	RoomCategoryID *uuid.UUID `json:"room_category_id"`
	RoomTypeID     *uuid.UUID `json:"room_type_id"`
	RoomID         *uuid.UUID `json:"room_id"`
}

type ExtendBookingRequest struct {
	BookingID uuid.UUID `json:"booking_id" validate:"required"`
	NumDays   int       `json:"num_days" validate:"required,gt=0"`
}

type CheckoutBookingRequest struct {
	BookingID uuid.UUID `json:"booking_id" validate:"required"`
}

/// Complaint statuses mirror the assignment workflow: a complaint is
// transferred to a department or a staff member, then resolved.
const (
	ComplaintTransferDepartment = "department"
	ComplaintTransferStaff      = "staff"
	ComplaintResolved           = "resolved"
)

type Complaint struct {
	Base
	GuestID     *uuid.UUID `db:"guest_id" json:"guest_id,omitempty"`
	RoomID      *uuid.UUID `db:"room_id" json:"room_id,omitempty"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description,omitempty"`
	CreatedBy   *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

type ComplaintAssignment struct {
	Base
	ComplaintID  uuid.UUID  `db:"complaint_id" json:"complaint_id"`
	AssignedToID *uuid.UUID `db:"assigned_to" json:"assigned_to,omitempty"`
	DepartmentID *uuid.UUID `db:"department_id" json:"department_id,omitempty"`
	PriorityID   *uuid.UUID `db:"priority_id" json:"priority_id,omitempty"`
	Status       string     `db:"status" json:"status"`
	AssignedBy   *uuid.UUID `db:"assigned_by" json:"assigned_by,omitempty"`
}

type CreateComplaintRequest struct {
	GuestID     *uuid.UUID `json:"guest_id"`
	RoomID      *uuid.UUID `json:"room_id"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"max=2000"`
}

type AssignComplaintRequest struct {
	ComplaintID  uuid.UUID  `json:"complaint_id" validate:"required"`
	AssignedToID *uuid.UUID `json:"assigned_to"`
	DepartmentID *uuid.UUID `json:"department_id"`
	PriorityID   *uuid.UUID `json:"priority_id"`
	Status       string     `json:"status" validate:"required,oneof=department staff resolved"`
}

type CreateGuestRequest struct {
	FullName    string     `json:"full_name" validate:"required,max=255"`
	Email       string     `json:"email" validate:"omitempty,email"`
	PhoneNumber string     `json:"phone_number" validate:"max=30"`
	CountryID   *uuid.UUID `json:"country_id"`
	NameTitleID *uuid.UUID `json:"name_title_id"`
	IdentityDoc string     `json:"identity_doc" validate:"max=255"`
}
