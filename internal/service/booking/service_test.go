package booking

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
	"github.com/hotelworks/hotel-api/pkg/security"
)

type fakeBookingRepo struct {
	repository.BookingRepository

	bookings map[uuid.UUID]*model.Booking
	receipts map[uuid.UUID]*model.Receipt

	balances   map[uuid.UUID]float64
	updated    []*model.Booking
	storedDocs map[uuid.UUID]string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:   map[uuid.UUID]*model.Booking{},
		receipts:   map[uuid.UUID]*model.Receipt{},
		balances:   map[uuid.UUID]float64{},
		storedDocs: map[uuid.UUID]string{},
	}
}

func (r *fakeBookingRepo) CreateGuest(_ context.Context, g *model.Guest) error {
	g.ID = uuid.New()
	r.storedDocs[g.ID] = g.IdentityDoc
	return nil
}

func (r *fakeBookingRepo) GetGuest(_ context.Context, id uuid.UUID) (*model.Guest, error) {
	doc, ok := r.storedDocs[id]
	if !ok {
		return nil, apperrors.NotFound("guest", nil)
	}
	return &model.Guest{
		Base:        model.Base{ID: id},
		IdentityDoc: doc,
	}, nil
}

func (r *fakeBookingRepo) GetBooking(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, apperrors.NotFound("booking", nil)
	}
	return b, nil
}

func (r *fakeBookingRepo) UpdateBooking(_ context.Context, _ *sqlx.Tx, b *model.Booking) error {
	r.bookings[b.ID] = b
	r.updated = append(r.updated, b)
	return nil
}

func (r *fakeBookingRepo) GetReceipt(_ context.Context, id uuid.UUID) (*model.Receipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, apperrors.NotFound("receipt", nil)
	}
	return rec, nil
}

func (r *fakeBookingRepo) UpdateReceiptBalance(_ context.Context, _ *sqlx.Tx, id uuid.UUID, balance float64) error {
	r.balances[id] = balance
	return nil
}

func (r *fakeBookingRepo) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

type fakeRoomRepo struct {
	repository.RoomRepository

	rooms    map[uuid.UUID]*model.Room
	occupied map[uuid.UUID]bool
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		rooms:    map[uuid.UUID]*model.Room{},
		occupied: map[uuid.UUID]bool{},
	}
}

func (r *fakeRoomRepo) Get(_ context.Context, id uuid.UUID) (*model.Room, error) {
	rm, ok := r.rooms[id]
	if !ok {
		return nil, apperrors.NotFound("room", nil)
	}
	return rm, nil
}

func (r *fakeRoomRepo) SetOccupied(_ context.Context, _ *sqlx.Tx, id uuid.UUID, occupied bool) error {
	r.occupied[id] = occupied
	return nil
}

type testEnv struct {
	svc   *Service
	repo  *fakeBookingRepo
	rooms *fakeRoomRepo
}

func newTestEnv() *testEnv {
	repo := newFakeBookingRepo()
	rooms := newFakeRoomRepo()
	return &testEnv{
		svc:   NewService(repo, rooms, nil, nil, zerolog.Nop()),
		repo:  repo,
		rooms: rooms,
	}
}

// three nights at 100 per night
func (e *testEnv) addStay(balance float64) (*model.Booking, *model.Receipt, *model.Room) {
	room := &model.Room{
		Base:          model.Base{ID: uuid.New()},
		RoomNumber:    "204",
		PricePerNight: 100,
		IsOccupied:    true,
	}
	e.rooms.rooms[room.ID] = room
	e.rooms.occupied[room.ID] = true

	receipt := &model.Receipt{
		Base:    model.Base{ID: uuid.New()},
		Balance: balance,
		Status:  model.ReceiptStatusActivated,
	}
	e.repo.receipts[receipt.ID] = receipt

	checkIn := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	booking := &model.Booking{
		Base:      model.Base{ID: uuid.New()},
		CheckIn:   checkIn,
		CheckOut:  checkIn.AddDate(0, 0, 3),
		GuestID:   uuid.New(),
		RoomID:    &room.ID,
		ReceiptID: &receipt.ID,
		IsActive:  true,
	}
	e.repo.bookings[booking.ID] = booking
	return booking, receipt, room
}

func TestCheckout(t *testing.T) {
	t.Run("settles the stay and frees the room", func(t *testing.T) {
		env := newTestEnv()
		booking, receipt, room := env.addStay(500)
		staffID := uuid.New()

		out, err := env.svc.Checkout(context.Background(), booking.ID, staffID)
		require.NoError(t, err)

		assert.False(t, out.IsActive)
		require.NotNil(t, out.CheckedOutBy)
		assert.Equal(t, staffID, *out.CheckedOutBy)

		assert.Equal(t, 200.0, env.repo.balances[receipt.ID])
		assert.False(t, env.rooms.occupied[room.ID])
	})

	t.Run("rejects a balance that cannot cover the stay", func(t *testing.T) {
		env := newTestEnv()
		booking, receipt, room := env.addStay(250)

		_, err := env.svc.Checkout(context.Background(), booking.ID, uuid.New())
		assert.Equal(t, apperrors.ErrInsufficientBalance, apperrors.CodeOf(err))

		assert.NotContains(t, env.repo.balances, receipt.ID)
		assert.Empty(t, env.repo.updated)
		assert.True(t, env.rooms.occupied[room.ID])
	})

	t.Run("rejects a second checkout", func(t *testing.T) {
		env := newTestEnv()
		booking, _, _ := env.addStay(500)
		booking.IsActive = false

		_, err := env.svc.Checkout(context.Background(), booking.ID, uuid.New())
		assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
	})

	t.Run("checks out a roomless booking at no cost", func(t *testing.T) {
		env := newTestEnv()
		booking, receipt, _ := env.addStay(0)
		booking.RoomID = nil

		out, err := env.svc.Checkout(context.Background(), booking.ID, uuid.New())
		require.NoError(t, err)
		assert.False(t, out.IsActive)
		assert.NotContains(t, env.repo.balances, receipt.ID)
	})
}

func TestGuestIdentityDocEncryption(t *testing.T) {
	env := newTestEnv()
	enc, err := security.NewAESEncryptor(bytes.Repeat([]byte("k"), 32))
	require.NoError(t, err)
	svc := NewService(env.repo, env.rooms, enc, nil, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.CreateGuest(ctx, &model.CreateGuestRequest{
		FullName:    "Ada Wong",
		IdentityDoc: "P1234567",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "P1234567", created.IdentityDoc, "caller sees the plaintext document")

	stored := env.repo.storedDocs[created.ID]
	require.NotEmpty(t, stored)
	assert.NotEqual(t, "P1234567", stored, "document must not be stored in plain text")
	_, err = base64.StdEncoding.DecodeString(stored)
	assert.NoError(t, err)

	fetched, err := svc.GetGuest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "P1234567", fetched.IdentityDoc)
}

func TestExtendBooking(t *testing.T) {
	env := newTestEnv()
	booking, _, _ := env.addStay(500)
	originalCheckOut := booking.CheckOut

	out, err := env.svc.ExtendBooking(context.Background(), &model.ExtendBookingRequest{
		BookingID: booking.ID,
		NumDays:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, originalCheckOut.AddDate(0, 0, 2), out.CheckOut)

	booking.IsActive = false
	_, err = env.svc.ExtendBooking(context.Background(), &model.ExtendBookingRequest{
		BookingID: booking.ID,
		NumDays:   1,
	})
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
}
