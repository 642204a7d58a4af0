package room

import (
	"context"

	"github.com/google/uuid"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
)

type Service struct {
	repo repository.RoomRepository
}

func NewService(repo repository.RoomRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateRoom(ctx context.Context, req *model.CreateRoomRequest, createdBy *uuid.UUID) (*model.Room, error) {
	if existing, _ := s.repo.GetByNumber(ctx, req.RoomNumber); existing != nil {
		return nil, apperrors.BadRequest("room number already exists", nil)
	}

	room := &model.Room{
		RoomNumber:    req.RoomNumber,
		FloorID:       req.FloorID,
		RoomTypeID:    req.RoomTypeID,
		PricePerNight: req.PricePerNight,
		CreatedBy:     createdBy,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateRoom(ctx context.Context, room *model.Room) error {
	return s.repo.Update(ctx, room)
}

func (s *Service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListRoomAmenities(ctx context.Context, roomID uuid.UUID) ([]*model.CatalogEntry, error) {
	return s.repo.ListRoomAmenities(ctx, roomID)
}

func (s *Service) CreateRoomType(ctx context.Context, req *model.CreateRoomTypeRequest, createdBy *uuid.UUID) (*model.RoomType, error) {
	rt := &model.RoomType{
		Name:          req.Name,
		RoomCategory:  req.RoomCategory,
		AreaInMeters:  req.AreaInMeters,
		AreaInFeet:    req.AreaInFeet,
		MaxGuests:     req.MaxGuests,
		Bed:           req.Bed,
		ViewID:        req.ViewID,
		AmenityIDs:    req.AmenityIDs,
		PricePerNight: req.PricePerNight,
		CreatedBy:     createdBy,
	}
	if err := s.repo.CreateRoomType(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) GetRoomType(ctx context.Context, id uuid.UUID) (*model.RoomType, error) {
	return s.repo.GetRoomType(ctx, id)
}

func (s *Service) UpdateRoomType(ctx context.Context, rt *model.RoomType) error {
	return s.repo.UpdateRoomType(ctx, rt)
}

func (s *Service) DeleteRoomType(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRoomType(ctx, id)
}

func (s *Service) ListRoomTypes(ctx context.Context) ([]*model.RoomType, error) {
	return s.repo.ListRoomTypes(ctx)
}
