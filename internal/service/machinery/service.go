package machinery

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type MachineryServicer interface {
	CreateMachine(ctx context.Context, machine *model.Machinery) error
	ListMachines(ctx context.Context) ([]*model.Machinery, error)
	UpdateMachine(ctx context.Context, machine *model.Machinery) error
	DeleteMachine(ctx context.Context, id int64) error
}

type Service struct {
	repo   repository.MachineryRepository
	events messaging.Publisher
}

func NewService(repo repository.MachineryRepository, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		events: events,
	}
}

type machineEvent struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	Status              string     `json:"status"`
	NextMaintenanceDate model.Date `json:"next_maintenance_date"`
}

func newMachineEvent(m *model.Machinery) machineEvent {
	return machineEvent{ID: m.ID, Name: m.Name, Status: m.Status, NextMaintenanceDate: m.NextMaintenanceDate}
}

func (s *Service) CreateMachine(ctx context.Context, machine *model.Machinery) error {
	if err := validateMachine(machine); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, machine); err != nil {
		return fmt.Errorf("failed to create machinery: %w", err)
	}

	s.events.Publish(ctx, messaging.EventMachineryCreated, newMachineEvent(machine))
	return nil
}

func (s *Service) ListMachines(ctx context.Context) ([]*model.Machinery, error) {
	machines, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list machinery: %w", err)
	}
	return machines, nil
}

func (s *Service) UpdateMachine(ctx context.Context, machine *model.Machinery) error {
	if err := validateMachine(machine); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, machine); err != nil {
		return fmt.Errorf("failed to update machinery: %w", err)
	}

	s.events.Publish(ctx, messaging.EventMachineryUpdated, newMachineEvent(machine))
	return nil
}

func (s *Service) DeleteMachine(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete machinery: %w", err)
	}

	s.events.Publish(ctx, messaging.EventMachineryDeleted, messaging.EntityRef{ID: id})
	return nil
}

func validateMachine(m *model.Machinery) error {
	if m.Status == "" {
		m.Status = model.MachineryStatusOperational
	}

	var check validator.Check
	check.Required("name", m.Name).
		Required("type", m.Type).
		OneOf("status", m.Status, model.MachineryStatuses)
	if !m.LastMaintenanceDate.IsZero() && !m.NextMaintenanceDate.IsZero() &&
		m.NextMaintenanceDate.Before(m.LastMaintenanceDate.Time) {
		check.Failf("nextMaintenanceDate", "must not be before lastMaintenanceDate")
	}
	return check.Err()
}
