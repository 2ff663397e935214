package appointment

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type AppointmentServicer interface {
	CreateAppointment(ctx context.Context, appointment *model.Appointment) error
	ListAppointments(ctx context.Context) ([]*model.AppointmentView, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type Service struct {
	repo   repository.AppointmentRepository
	events messaging.Publisher
}

func NewService(repo repository.AppointmentRepository, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		events: events,
	}
}

type bookedEvent struct {
	ID              int64          `json:"id"`
	PatientID       int64          `json:"patient_id"`
	DoctorID        int64          `json:"doctor_id"`
	AppointmentDate model.DateTime `json:"appointment_date"`
}

// CreateAppointment books a visit. An unknown patient or doctor is a validation error.
func (s *Service) CreateAppointment(ctx context.Context, appointment *model.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusScheduled
	}

	var check validator.Check
	check.RequiredID("patientId", appointment.PatientID).
		RequiredID("doctorId", appointment.DoctorID).
		RequiredSet("appointmentDate", !appointment.AppointmentDate.IsZero()).
		OneOf("status", appointment.Status, model.AppointmentStatuses)
	if err := check.Err(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	s.events.Publish(ctx, messaging.EventAppointmentBooked, bookedEvent{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate,
	})
	return nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.AppointmentView, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus closes a Scheduled appointment as Completed or Cancelled.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	if status != model.AppointmentStatusCompleted && status != model.AppointmentStatusCancelled {
		return apperrors.Validation("status: must be one of %s, %s",
			model.AppointmentStatusCompleted, model.AppointmentStatusCancelled)
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}
	if current.Status != model.AppointmentStatusScheduled {
		return apperrors.Validation("cannot change status of a %s appointment", current.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	s.events.Publish(ctx, messaging.EventAppointmentStatusChanged, messaging.StatusChange{
		ID:   id,
		From: current.Status,
		To:   status,
	})
	return nil
}
