package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository/memory"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/messaging/messagingtest"
)

func TestCreateDoctorDefaults(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	events := &messagingtest.Recorder{}
	svc := NewService(store.Doctors(), events)

	d := &model.Doctor{Name: "Dr. Mehta", Specialization: "Cardiology"}
	require.NoError(t, svc.CreateDoctor(ctx, d))

	got, err := svc.GetDoctor(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DoctorStatusActive, got.Status)
	assert.True(t, got.IsVerified)
	assert.Zero(t, got.ExperienceYears)
	assert.Equal(t, []string{messaging.EventDoctorCreated}, events.Types())
}

func TestCreateDoctorValidation(t *testing.T) {
	svc := NewService(memory.New().Doctors(), messaging.NopPublisher{})

	err := svc.CreateDoctor(context.Background(), &model.Doctor{Name: "Dr. X"})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "specialization: is required")

	err = svc.CreateDoctor(context.Background(), &model.Doctor{Name: "Dr. X", Specialization: "ENT", Status: "Retired"})
	assert.Contains(t, err.Error(), "status: must be one of")
}

func TestDeleteDoctorWithAppointmentsConflicts(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewService(store.Doctors(), messaging.NopPublisher{})

	d := &model.Doctor{Name: "Dr. Mehta", Specialization: "Cardiology"}
	require.NoError(t, svc.CreateDoctor(ctx, d))
	p := &model.Patient{FirstName: "A", LastName: "B", DOB: model.NewDate(1980, 1, 1), Gender: model.GenderMale, Phone: "1"}
	require.NoError(t, store.Patients().Create(ctx, p))
	require.NoError(t, store.Appointments().Create(ctx, &model.Appointment{
		PatientID:       p.ID,
		DoctorID:        d.ID,
		AppointmentDate: model.DateTime{Time: time.Now().Add(time.Hour)},
		Status:          model.AppointmentStatusScheduled,
	}))

	err := svc.DeleteDoctor(ctx, d.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	_, err = svc.GetDoctor(ctx, d.ID)
	assert.NoError(t, err)
}
