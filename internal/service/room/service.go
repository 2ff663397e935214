package room

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type RoomServicer interface {
	CreateRoom(ctx context.Context, room *model.Room) error
	ListRooms(ctx context.Context) ([]*model.RoomView, error)
	UpdateRoom(ctx context.Context, room *model.Room) error
	DeleteRoom(ctx context.Context, id int64) error
}

type Service struct {
	repo   repository.RoomRepository
	events messaging.Publisher
}

func NewService(repo repository.RoomRepository, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		events: events,
	}
}

type roomEvent struct {
	ID         int64  `json:"id"`
	RoomNumber string `json:"room_number"`
	Status     string `json:"status"`
	PatientID  *int64 `json:"patient_id"`
}

func newRoomEvent(r *model.Room) roomEvent {
	return roomEvent{ID: r.ID, RoomNumber: r.RoomNumber, Status: r.Status, PatientID: r.PatientID}
}

func (s *Service) CreateRoom(ctx context.Context, room *model.Room) error {
	if err := prepare(room); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	s.events.Publish(ctx, messaging.EventRoomCreated, newRoomEvent(room))
	return nil
}

func (s *Service) ListRooms(ctx context.Context) ([]*model.RoomView, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// UpdateRoom replaces every field, re-deriving occupancy the same way as create.
func (s *Service) UpdateRoom(ctx context.Context, room *model.Room) error {
	if err := prepare(room); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	s.events.Publish(ctx, messaging.EventRoomUpdated, newRoomEvent(room))
	return nil
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.events.Publish(ctx, messaging.EventRoomDeleted, messaging.EntityRef{ID: id})
	return nil
}

// prepare fills in the status from the occupant and rejects rooms where the
// two disagree: a room is Occupied exactly when it has a patient.
func prepare(room *model.Room) error {
	if room.Status == "" {
		room.Status = model.RoomStatusAvailable
		if room.PatientID != nil {
			room.Status = model.RoomStatusOccupied
		}
	}

	var check validator.Check
	check.Required("roomNumber", room.RoomNumber).
		Required("type", room.Type).
		OneOf("type", room.Type, model.RoomTypes).
		RequiredSet("pricePerDay", room.PricePerDay > 0).
		OneOf("status", room.Status, model.RoomStatuses)

	switch {
	case room.Status == model.RoomStatusOccupied && room.PatientID == nil:
		check.Failf("patientId", "is required when status is %s", model.RoomStatusOccupied)
	case room.Status != model.RoomStatusOccupied && room.PatientID != nil:
		check.Failf("status", "must be %s when a patient is assigned", model.RoomStatusOccupied)
	}
	return check.Err()
}
