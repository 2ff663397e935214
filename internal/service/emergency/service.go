// Package emergency manages the ambulance fleet and the emergency contact directory.
package emergency

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type EmergencyServicer interface {
	CreateAmbulance(ctx context.Context, ambulance *model.Ambulance) error
	ListAmbulances(ctx context.Context) ([]*model.Ambulance, error)
	DeleteAmbulance(ctx context.Context, id int64) error
	CreateContact(ctx context.Context, contact *model.EmergencyContact) error
	ListContacts(ctx context.Context) ([]*model.EmergencyContact, error)
	DeleteContact(ctx context.Context, id int64) error
}

type Service struct {
	ambulances repository.AmbulanceRepository
	contacts   repository.EmergencyContactRepository
	events     messaging.Publisher
}

func NewService(ambulances repository.AmbulanceRepository, contacts repository.EmergencyContactRepository, events messaging.Publisher) *Service {
	return &Service{
		ambulances: ambulances,
		contacts:   contacts,
		events:     events,
	}
}

func (s *Service) CreateAmbulance(ctx context.Context, ambulance *model.Ambulance) error {
	if ambulance.Status == "" {
		ambulance.Status = model.AmbulanceStatusAvailable
	}

	var check validator.Check
	check.Required("vehicleNumber", ambulance.VehicleNumber).
		Required("driverName", ambulance.DriverName).
		Required("contactNumber", ambulance.ContactNumber).
		OneOf("status", ambulance.Status, model.AmbulanceStatuses)
	if err := check.Err(); err != nil {
		return err
	}

	if err := s.ambulances.Create(ctx, ambulance); err != nil {
		return fmt.Errorf("failed to create ambulance: %w", err)
	}

	s.events.Publish(ctx, messaging.EventAmbulanceCreated, ambulance)
	return nil
}

func (s *Service) ListAmbulances(ctx context.Context) ([]*model.Ambulance, error) {
	ambulances, err := s.ambulances.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ambulances: %w", err)
	}
	return ambulances, nil
}

func (s *Service) DeleteAmbulance(ctx context.Context, id int64) error {
	if err := s.ambulances.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete ambulance: %w", err)
	}

	s.events.Publish(ctx, messaging.EventAmbulanceDeleted, messaging.EntityRef{ID: id})
	return nil
}

func (s *Service) CreateContact(ctx context.Context, contact *model.EmergencyContact) error {
	var check validator.Check
	check.Required("name", contact.Name).
		Required("contactNumber", contact.ContactNumber)
	if err := check.Err(); err != nil {
		return err
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return fmt.Errorf("failed to create emergency contact: %w", err)
	}

	s.events.Publish(ctx, messaging.EventEmergencyContactCreated, contact)
	return nil
}

func (s *Service) ListContacts(ctx context.Context) ([]*model.EmergencyContact, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergency contacts: %w", err)
	}
	return contacts, nil
}

func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete emergency contact: %w", err)
	}

	s.events.Publish(ctx, messaging.EventEmergencyContactDeleted, messaging.EntityRef{ID: id})
	return nil
}
