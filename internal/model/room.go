package model

import (
	"github.com/google/uuid"
)

// CatalogEntry is a simple named catalog row. Floors, views, amenities,
// bed types, genders, priorities, name titles and countries all share
// this shape.
type CatalogEntry struct {
	Base
	Name      string     `db:"name" json:"name"`
	CreatedBy *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

type RoomCategory struct {
	Base
	Name      string     `db:"name" json:"name"`
	CreatedBy *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

type RoomType struct {
	Base
	Name          string     `db:"name" json:"name"`
	RoomCategory  *uuid.UUID `db:"room_category_id" json:"room_category_id,omitempty"`
	AreaInMeters  float64    `db:"area_in_meters" json:"area_in_meters"`
	AreaInFeet    float64    `db:"area_in_feet" json:"area_in_feet"`
	MaxGuests     int        `db:"max_guests" json:"max_guests"`
	Bed           string     `db:"bed" json:"bed"`
	ViewID        *uuid.UUID `db:"view_id" json:"view_id,omitempty"`
	AmenityIDs    []uuid.UUID `db:"-" json:"amenities,omitempty"`
	PricePerNight float64    `db:"price_per_night" json:"price_per_night"`
	CreatedBy     *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

type Room struct {
	Base
	RoomNumber    string     `db:"room_number" json:"room_number"`
	FloorID       *uuid.UUID `db:"floor_id" json:"floor_id,omitempty"`
	RoomTypeID    *uuid.UUID `db:"room_type_id" json:"room_type_id,omitempty"`
	PricePerNight float64    `db:"price_per_night" json:"price_per_night"`
	IsOccupied    bool       `db:"is_occupied" json:"is_occupied"`
	CreatedBy     *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
}

type CreateRoomRequest struct {
	RoomNumber    string     `json:"room_number" validate:"required,max=255"`
	FloorID       *uuid.UUID `json:"floor_id"`
	RoomTypeID    *uuid.UUID `json:"room_type_id"`
	PricePerNight float64    `json:"price_per_night" validate:"gte=0"`
}

type CreateRoomTypeRequest struct {
	Name          string      `json:"name" validate:"required,max=255"`
	RoomCategory  *uuid.UUID  `json:"room_category_id"`
	AreaInMeters  float64     `json:"area_in_meters" validate:"gte=0"`
	AreaInFeet    float64     `json:"area_in_feet" validate:"gte=0"`
	MaxGuests     int         `json:"max_guests" validate:"gte=1"`
	Bed           string      `json:"bed" validate:"max=255"`
	ViewID        *uuid.UUID  `json:"view_id"`
	AmenityIDs    []uuid.UUID `json:"amenities"`
	PricePerNight float64     `json:"price_per_night" validate:"gte=0"`
}

type CreateCatalogEntryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}
