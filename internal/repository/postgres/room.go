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

type roomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) *roomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `
		INSERT INTO rooms (
			id, room_number, floor_id, room_type_id, price_per_night,
			is_occupied, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	room.ID = uuid.New()
	room.CreatedAt = time.Now()
	room.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.RoomNumber,
		room.FloorID,
		room.RoomTypeID,
		room.PricePerNight,
		room.IsOccupied,
		room.CreatedBy,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *roomRepository) Get(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	query := `
		SELECT id, room_number, floor_id, room_type_id, price_per_night,
			   is_occupied, created_by, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`
	var room model.Room
	err := r.db.GetContext(ctx, &room, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("room", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

func (r *roomRepository) GetByNumber(ctx context.Context, roomNumber string) (*model.Room, error) {
	query := `
		SELECT id, room_number, floor_id, room_type_id, price_per_night,
			   is_occupied, created_by, created_at, updated_at
		FROM rooms
		WHERE room_number = $1
	`
	var room model.Room
	err := r.db.GetContext(ctx, &room, query, roomNumber)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("room", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room by number: %w", err)
	}
	return &room, nil
}

func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	query := `
		UPDATE rooms
		SET room_number = $1, floor_id = $2, room_type_id = $3,
			price_per_night = $4, updated_at = $5
		WHERE id = $6
	`
	room.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		room.RoomNumber,
		room.FloorID,
		room.RoomTypeID,
		room.PricePerNight,
		room.UpdatedAt,
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("room", nil)
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rooms WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("room", nil)
	}
	return nil
}

func (r *roomRepository) List(ctx context.Context) ([]*model.Room, error) {
	query := `
		SELECT id, room_number, floor_id, room_type_id, price_per_night,
			   is_occupied, created_by, created_at, updated_at
		FROM rooms
		ORDER BY room_number ASC
	`
	var rooms []*model.Room
	err := r.db.SelectContext(ctx, &rooms, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (r *roomRepository) SetOccupied(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, occupied bool) error {
	query := `UPDATE rooms SET is_occupied = $1, updated_at = $2 WHERE id = $3`
	result, err := tx.ExecContext(ctx, query, occupied, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set room occupancy: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("room", nil)
	}
	return nil
}

func (r *roomRepository) CreateRoomType(ctx context.Context, rt *model.RoomType) error {
	query := `
		INSERT INTO room_types (
			id, name, room_category_id, area_in_meters, area_in_feet, max_guests,
			bed, view_id, price_per_night, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	rt.ID = uuid.New()
	rt.CreatedAt = time.Now()
	rt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		rt.ID,
		rt.Name,
		rt.RoomCategory,
		rt.AreaInMeters,
		rt.AreaInFeet,
		rt.MaxGuests,
		rt.Bed,
		rt.ViewID,
		rt.PricePerNight,
		rt.CreatedBy,
		rt.CreatedAt,
		rt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room type: %w", err)
	}

	for _, amenityID := range rt.AmenityIDs {
		linkQuery := `
			INSERT INTO room_type_amenities (id, room_type_id, amenity_id, created_at)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := r.db.ExecContext(ctx, linkQuery, uuid.New(), rt.ID, amenityID, time.Now()); err != nil {
			return fmt.Errorf("failed to link amenity: %w", err)
		}
	}
	return nil
}

func (r *roomRepository) GetRoomType(ctx context.Context, id uuid.UUID) (*model.RoomType, error) {
	query := `
		SELECT id, name, room_category_id, area_in_meters, area_in_feet, max_guests,
			   bed, view_id, price_per_night, created_by, created_at, updated_at
		FROM room_types
		WHERE id = $1
	`
	var rt model.RoomType
	err := r.db.GetContext(ctx, &rt, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("room type", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room type: %w", err)
	}

	amenityQuery := `SELECT amenity_id FROM room_type_amenities WHERE room_type_id = $1`
	if err := r.db.SelectContext(ctx, &rt.AmenityIDs, amenityQuery, id); err != nil {
		return nil, fmt.Errorf("failed to load room type amenities: %w", err)
	}
	return &rt, nil
}

func (r *roomRepository) UpdateRoomType(ctx context.Context, rt *model.RoomType) error {
	query := `
		UPDATE room_types
		SET name = $1, room_category_id = $2, area_in_meters = $3, area_in_feet = $4,
			max_guests = $5, bed = $6, view_id = $7, price_per_night = $8, updated_at = $9
		WHERE id = $10
	`
	rt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		rt.Name,
		rt.RoomCategory,
		rt.AreaInMeters,
		rt.AreaInFeet,
		rt.MaxGuests,
		rt.Bed,
		rt.ViewID,
		rt.PricePerNight,
		rt.UpdatedAt,
		rt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update room type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("room type", nil)
	}
	return nil
}

func (r *roomRepository) DeleteRoomType(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM room_types WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete room type: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("room type", nil)
	}
	return nil
}

func (r *roomRepository) ListRoomTypes(ctx context.Context) ([]*model.RoomType, error) {
	query := `
		SELECT id, name, room_category_id, area_in_meters, area_in_feet, max_guests,
			   bed, view_id, price_per_night, created_by, created_at, updated_at
		FROM room_types
		ORDER BY name ASC
	`
	var types []*model.RoomType
	err := r.db.SelectContext(ctx, &types, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	return types, nil
}

func (r *roomRepository) ListRoomAmenities(ctx context.Context, roomID uuid.UUID) ([]*model.CatalogEntry, error) {
	query := `
		SELECT a.id, a.name, a.created_by, a.created_at, a.updated_at
		FROM amenities a
		JOIN room_type_amenities rta ON rta.amenity_id = a.id
		JOIN rooms rm ON rm.room_type_id = rta.room_type_id
		WHERE rm.id = $1
		ORDER BY a.name ASC
	`
	var amenities []*model.CatalogEntry
	err := r.db.SelectContext(ctx, &amenities, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list room amenities: %w", err)
	}
	return amenities, nil
}
