package doctor

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type DoctorServicer interface {
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	DeleteDoctor(ctx context.Context, id int64) error
}

type Service struct {
	repo   repository.DoctorRepository
	events messaging.Publisher
}

func NewService(repo repository.DoctorRepository, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		events: events,
	}
}

type createdEvent struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

func (s *Service) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	if doctor.Status == "" {
		doctor.Status = model.DoctorStatusActive
	}
	doctor.IsVerified = true

	if err := validateDoctor(doctor); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	s.events.Publish(ctx, messaging.EventDoctorCreated, createdEvent{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
	})
	return nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// DeleteDoctor fails with a conflict while appointments still reference the doctor.
func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	s.events.Publish(ctx, messaging.EventDoctorDeleted, messaging.EntityRef{ID: id})
	return nil
}

func validateDoctor(d *model.Doctor) error {
	var check validator.Check
	check.Required("name", d.Name).
		Required("specialization", d.Specialization).
		OneOf("status", d.Status, model.DoctorStatuses)
	if d.ExperienceYears < 0 {
		check.Failf("experienceYears", "must not be negative")
	}
	check.NonNegative("consultationFee", d.ConsultationFee)
	return check.Err()
}
