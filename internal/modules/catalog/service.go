package catalog

import (
	"context"
	"errors"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

var ErrNotFound = errors.New("not found")

type Service struct {
	properties *repository.PropertyRepository
	rooms      *repository.RoomRepository
}

func NewService(properties *repository.PropertyRepository, rooms *repository.RoomRepository) *Service {
	return &Service{properties: properties, rooms: rooms}
}

func (s *Service) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*domain.Property, error) {
	p := &domain.Property{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Description: req.Description,
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Service) ListProperties(ctx context.Context, limit, offset int) ([]domain.Property, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.properties.List(ctx, limit, offset)
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	if _, err := s.properties.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	room := &domain.Room{
		PropertyID:   req.PropertyID,
		Number:       req.Number,
		RoomType:     req.RoomType,
		MonthlyPrice: req.MonthlyPrice,
		Description:  req.Description,
		Photos:       req.Photos,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return room, err
}

func (s *Service) ListRoomsByProperty(ctx context.Context, propertyID int64) ([]domain.Room, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.rooms.ListByProperty(ctx, propertyID)
}

// ListVacantRooms backs the public browsing page; occupied rooms are not
// offered for reservation.
func (s *Service) ListVacantRooms(ctx context.Context, limit, offset int) ([]domain.Room, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.rooms.ListVacant(ctx, limit, offset)
}
