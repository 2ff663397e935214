package patient

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type PatientServicer interface {
	CreatePatient(ctx context.Context, patient *model.Patient) error
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	ListPatients(ctx context.Context) ([]*model.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
}

type Service struct {
	repo   repository.PatientRepository
	events messaging.Publisher
}

func NewService(repo repository.PatientRepository, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		events: events,
	}
}

type registeredEvent struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Service) CreatePatient(ctx context.Context, patient *model.Patient) error {
	if err := validatePatient(patient); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	s.events.Publish(ctx, messaging.EventPatientRegistered, registeredEvent{ID: patient.ID, Name: patient.FullName()})
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// DeletePatient also releases any room the patient occupies.
func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	s.events.Publish(ctx, messaging.EventPatientDeleted, messaging.EntityRef{ID: id})
	return nil
}

func validatePatient(p *model.Patient) error {
	var check validator.Check
	check.Required("firstName", p.FirstName).
		Required("lastName", p.LastName).
		RequiredSet("dateOfBirth", !p.DOB.IsZero()).
		Required("gender", p.Gender).
		OneOf("gender", p.Gender, model.Genders).
		Required("phone", p.Phone)
	return check.Err()
}
