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

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(db *sqlx.DB) *bookingRepository {
	return &bookingRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *bookingRepository) CreateGuest(ctx context.Context, guest *model.Guest) error {
	query := `
		INSERT INTO guests (
			id, guest_id, full_name, email, phone_number, country_id,
			name_title_id, identity_doc, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	guest.ID = uuid.New()
	guest.CreatedAt = time.Now()
	guest.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		guest.ID,
		guest.GuestID,
		guest.FullName,
		guest.Email,
		guest.PhoneNumber,
		guest.CountryID,
		guest.NameTitleID,
		guest.IdentityDoc,
		guest.CreatedBy,
		guest.CreatedAt,
		guest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create guest: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetGuest(ctx context.Context, id uuid.UUID) (*model.Guest, error) {
	query := `
		SELECT id, guest_id, full_name, email, phone_number, country_id,
			   name_title_id, identity_doc, created_by, created_at, updated_at
		FROM guests
		WHERE id = $1
	`
	var guest model.Guest
	err := r.db.GetContext(ctx, &guest, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("guest", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	return &guest, nil
}

func (r *bookingRepository) GetGuestByGuestID(ctx context.Context, guestID string) (*model.Guest, error) {
	query := `
		SELECT id, guest_id, full_name, email, phone_number, country_id,
			   name_title_id, identity_doc, created_by, created_at, updated_at
		FROM guests
		WHERE guest_id = $1
	`
	var guest model.Guest
	err := r.db.GetContext(ctx, &guest, query, guestID)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("guest", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest by guest id: %w", err)
	}
	return &guest, nil
}

func (r *bookingRepository) ListGuests(ctx context.Context) ([]*model.Guest, error) {
	query := `
		SELECT id, guest_id, full_name, email, phone_number, country_id,
			   name_title_id, identity_doc, created_by, created_at, updated_at
		FROM guests
		ORDER BY full_name ASC
	`
	var guests []*model.Guest
	err := r.db.SelectContext(ctx, &guests, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (r *bookingRepository) UpdateGuest(ctx context.Context, guest *model.Guest) error {
	query := `
		UPDATE guests
		SET full_name = $1, email = $2, phone_number = $3, country_id = $4,
			name_title_id = $5, identity_doc = $6, updated_at = $7
		WHERE id = $8
	`
	guest.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		guest.FullName,
		guest.Email,
		guest.PhoneNumber,
		guest.CountryID,
		guest.NameTitleID,
		guest.IdentityDoc,
		guest.UpdatedAt,
		guest.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("guest", nil)
	}
	return nil
}

func (r *bookingRepository) CreateBooking(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, check_in, check_out, guest_id, room_category_id, room_type_id,
			room_id, receipt_id, is_active, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.CheckIn,
		booking.CheckOut,
		booking.GuestID,
		booking.RoomCategoryID,
		booking.RoomTypeID,
		booking.RoomID,
		booking.ReceiptID,
		booking.IsActive,
		booking.CreatedBy,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, check_in, check_out, guest_id, room_category_id, room_type_id,
			   room_id, receipt_id, is_active, checked_out_by, created_by, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("booking", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateBooking(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET check_in = $1, check_out = $2, room_id = $3, receipt_id = $4,
			is_active = $5, checked_out_by = $6, updated_at = $7
		WHERE id = $8
	`
	booking.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, query,
		booking.CheckIn,
		booking.CheckOut,
		booking.RoomID,
		booking.ReceiptID,
		booking.IsActive,
		booking.CheckedOutBy,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("booking", nil)
	}
	return nil
}

func (r *bookingRepository) ListBookings(ctx context.Context, activeOnly bool) ([]*model.Booking, error) {
	query := `
		SELECT id, check_in, check_out, guest_id, room_category_id, room_type_id,
			   room_id, receipt_id, is_active, checked_out_by, created_by, created_at, updated_at
		FROM bookings
	`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY check_in DESC"

	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) GetReceipt(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	query := `
		SELECT id, receipt_number, guest_id, balance, status, created_at, updated_at
		FROM receipts
		WHERE id = $1
	`
	var receipt model.Receipt
	err := r.db.GetContext(ctx, &receipt, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("receipt", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return &receipt, nil
}

func (r *bookingRepository) UpdateReceiptBalance(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, balance float64) error {
	query := `UPDATE receipts SET balance = $1, updated_at = $2 WHERE id = $3`
	result, err := tx.ExecContext(ctx, query, balance, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update receipt balance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("receipt", nil)
	}
	return nil
}

func (r *bookingRepository) CreateComplaint(ctx context.Context, complaint *model.Complaint) error {
	query := `
		INSERT INTO complaints (
			id, guest_id, room_id, title, description, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	complaint.ID = uuid.New()
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		complaint.ID,
		complaint.GuestID,
		complaint.RoomID,
		complaint.Title,
		complaint.Description,
		complaint.CreatedBy,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetComplaint(ctx context.Context, id uuid.UUID) (*model.Complaint, error) {
	query := `
		SELECT id, guest_id, room_id, title, description, created_by, created_at, updated_at
		FROM complaints
		WHERE id = $1
	`
	var complaint model.Complaint
	err := r.db.GetContext(ctx, &complaint, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("complaint", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return &complaint, nil
}

func (r *bookingRepository) ListComplaints(ctx context.Context) ([]*model.Complaint, error) {
	query := `
		SELECT id, guest_id, room_id, title, description, created_by, created_at, updated_at
		FROM complaints
		ORDER BY created_at DESC
	`
	var complaints []*model.Complaint
	err := r.db.SelectContext(ctx, &complaints, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

func (r *bookingRepository) CreateComplaintAssignment(ctx context.Context, ca *model.ComplaintAssignment) error {
	query := `
		INSERT INTO complaint_assignments (
			id, complaint_id, assigned_to, department_id, priority_id,
			status, assigned_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	ca.ID = uuid.New()
	ca.CreatedAt = time.Now()
	ca.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		ca.ID,
		ca.ComplaintID,
		ca.AssignedToID,
		ca.DepartmentID,
		ca.PriorityID,
		ca.Status,
		ca.AssignedBy,
		ca.CreatedAt,
		ca.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint assignment: %w", err)
	}
	return nil
}

func (r *bookingRepository) ListComplaintAssignments(ctx context.Context, complaintID uuid.UUID) ([]*model.ComplaintAssignment, error) {
	query := `
		SELECT id, complaint_id, assigned_to, department_id, priority_id,
			   status, assigned_by, created_at, updated_at
		FROM complaint_assignments
		WHERE complaint_id = $1
		ORDER BY created_at ASC
	`
	var assignments []*model.ComplaintAssignment
	err := r.db.SelectContext(ctx, &assignments, query, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaint assignments: %w", err)
	}
	return assignments, nil
}
