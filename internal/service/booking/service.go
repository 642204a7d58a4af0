package booking

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/hotelworks/hotel-api/internal/email"
	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
	"github.com/hotelworks/hotel-api/pkg/security"
)

type Service struct {
	repo      repository.BookingRepository
	rooms     repository.RoomRepository
	encryptor security.Encryptor
	emailSvc  email.Service
	logger    zerolog.Logger
}

// NewService wires the front desk workflows. A nil encryptor stores
// guest identity documents in plain text; a nil email service skips
// booking confirmations.
func NewService(repo repository.BookingRepository, rooms repository.RoomRepository,
	encryptor security.Encryptor, emailSvc email.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		rooms:     rooms,
		encryptor: encryptor,
		emailSvc:  emailSvc,
		logger:    logger,
	}
}

func (s *Service) CreateGuest(ctx context.Context, req *model.CreateGuestRequest, createdBy *uuid.UUID) (*model.Guest, error) {
	identityDoc, err := s.sealIdentityDoc(req.IdentityDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt identity document: %w", err)
	}

	guest := &model.Guest{
		GuestID:     generateGuestNumber(),
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		CountryID:   req.CountryID,
		NameTitleID: req.NameTitleID,
		IdentityDoc: identityDoc,
		CreatedBy:   createdBy,
	}
	if err := s.repo.CreateGuest(ctx, guest); err != nil {
		return nil, err
	}
	guest.IdentityDoc = req.IdentityDoc
	return guest, nil
}

func (s *Service) GetGuest(ctx context.Context, id uuid.UUID) (*model.Guest, error) {
	guest, err := s.repo.GetGuest(ctx, id)
	if err != nil {
		return nil, err
	}
	s.openIdentityDoc(guest)
	return guest, nil
}

func (s *Service) ListGuests(ctx context.Context) ([]*model.Guest, error) {
	guests, err := s.repo.ListGuests(ctx)
	if err != nil {
		return nil, err
	}
	for _, guest := range guests {
		s.openIdentityDoc(guest)
	}
	return guests, nil
}

// sealIdentityDoc encrypts an identity document for storage. The
// ciphertext is base64 encoded so it fits the existing text column.
func (s *Service) sealIdentityDoc(doc string) (string, error) {
	if s.encryptor == nil || doc == "" {
		return doc, nil
	}
	sealed, err := s.encryptor.Encrypt([]byte(doc))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// openIdentityDoc decrypts a stored identity document in place. Rows
// written before encryption was enabled pass through untouched.
func (s *Service) openIdentityDoc(guest *model.Guest) {
	if s.encryptor == nil || guest.IdentityDoc == "" {
		return
	}
	sealed, err := base64.StdEncoding.DecodeString(guest.IdentityDoc)
	if err != nil {
		return
	}
	plain, err := s.encryptor.Decrypt(sealed)
	if err != nil {
		s.logger.Warn().Str("guest_id", guest.GuestID).Msg("failed to decrypt identity document")
		return
	}
	guest.IdentityDoc = string(plain)
}

func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest, createdBy *uuid.UUID) (*model.Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, apperrors.BadRequest("check_out must be after check_in", nil)
	}
	guest, err := s.repo.GetGuest(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		GuestID:        req.GuestID,
		RoomCategoryID: req.RoomCategoryID,
		RoomTypeID:     req.RoomTypeID,
		RoomID:         req.RoomID,
		IsActive:       true,
		CreatedBy:      createdBy,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	if booking.RoomID != nil {
		err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
			return s.rooms.SetOccupied(ctx, tx, *booking.RoomID, true)
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to mark room occupied")
		}
	}

	if s.emailSvc != nil && guest.Email != "" {
		err := s.emailSvc.SendBookingConfirmed(guest.Email, guest.FullName,
			booking.CheckIn.Format("2006-01-02"), booking.CheckOut.Format("2006-01-02"))
		if err != nil {
			s.logger.Warn().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to send booking confirmation")
		}
	}

	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context, activeOnly bool) ([]*model.Booking, error) {
	return s.repo.ListBookings(ctx, activeOnly)
}

// ExtendBooking pushes an active booking's checkout date forward.
func (s *Service) ExtendBooking(ctx context.Context, req *model.ExtendBookingRequest) (*model.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive {
		return nil, apperrors.BadRequest("cannot extend an inactive booking", nil)
	}

	booking.CheckOut = booking.CheckOut.AddDate(0, 0, req.NumDays)
	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.repo.UpdateBooking(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Checkout settles a booking against its receipt and frees the room.
// The stay cost is nights times the room's nightly rate; the receipt
// balance must cover it. Balance decrement, booking deactivation and
// room release commit together.
func (s *Service) Checkout(ctx context.Context, bookingID uuid.UUID, checkedOutBy uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive {
		return nil, apperrors.BadRequest("booking is already checked out", nil)
	}

	var cost float64
	if booking.RoomID != nil {
		room, err := s.rooms.Get(ctx, *booking.RoomID)
		if err != nil {
			return nil, err
		}
		cost = float64(booking.Nights()) * room.PricePerNight
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if booking.ReceiptID != nil && cost > 0 {
			receipt, err := s.repo.GetReceipt(ctx, *booking.ReceiptID)
			if err != nil {
				return err
			}
			remaining := receipt.Balance - cost
			if remaining < 0 {
				return apperrors.InsufficientBalance(
					fmt.Sprintf("receipt balance %.2f does not cover stay cost %.2f", receipt.Balance, cost))
			}
			if err := s.repo.UpdateReceiptBalance(ctx, tx, receipt.ID, remaining); err != nil {
				return err
			}
		}

		now := time.Now()
		booking.IsActive = false
		booking.CheckedOutBy = &checkedOutBy
		booking.UpdatedAt = now
		if err := s.repo.UpdateBooking(ctx, tx, booking); err != nil {
			return err
		}

		if booking.RoomID != nil {
			return s.rooms.SetOccupied(ctx, tx, *booking.RoomID, false)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *Service) CreateComplaint(ctx context.Context, req *model.CreateComplaintRequest, createdBy *uuid.UUID) (*model.Complaint, error) {
	complaint := &model.Complaint{
		GuestID:     req.GuestID,
		RoomID:      req.RoomID,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   createdBy,
	}
	if err := s.repo.CreateComplaint(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *Service) ListComplaints(ctx context.Context) ([]*model.Complaint, error) {
	return s.repo.ListComplaints(ctx)
}

// AssignComplaint routes a complaint to a department or staff member,
// or marks it resolved. Each routing step is a new assignment row so
// the hand-off trail survives.
func (s *Service) AssignComplaint(ctx context.Context, req *model.AssignComplaintRequest, assignedBy uuid.UUID) (*model.ComplaintAssignment, error) {
	if _, err := s.repo.GetComplaint(ctx, req.ComplaintID); err != nil {
		return nil, err
	}
	if req.Status == model.ComplaintTransferStaff && req.AssignedToID == nil {
		return nil, apperrors.BadRequest("assigned_to is required when transferring to staff", nil)
	}
	if req.Status == model.ComplaintTransferDepartment && req.DepartmentID == nil {
		return nil, apperrors.BadRequest("department_id is required when transferring to a department", nil)
	}

	ca := &model.ComplaintAssignment{
		ComplaintID:  req.ComplaintID,
		AssignedToID: req.AssignedToID,
		DepartmentID: req.DepartmentID,
		PriorityID:   req.PriorityID,
		Status:       req.Status,
		AssignedBy:   &assignedBy,
	}
	if err := s.repo.CreateComplaintAssignment(ctx, ca); err != nil {
		return nil, err
	}
	return ca, nil
}

func (s *Service) ListComplaintAssignments(ctx context.Context, complaintID uuid.UUID) ([]*model.ComplaintAssignment, error) {
	return s.repo.ListComplaintAssignments(ctx, complaintID)
}

// generateGuestNumber derives a short human-readable guest reference.
func generateGuestNumber() string {
	id := uuid.New().String()
	return "G-" + id[:8]
}
