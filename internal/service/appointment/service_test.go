package appointment

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

type fixture struct {
	store   *memory.Store
	svc     *Service
	events  *messagingtest.Recorder
	patient *model.Patient
	doctor  *model.Doctor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	p := &model.Patient{
		FirstName: "Asha",
		LastName:  "Rao",
		DOB:       model.NewDate(1990, time.January, 1),
		Gender:    model.GenderFemale,
		Phone:     "9999999999",
	}
	require.NoError(t, store.Patients().Create(ctx, p))
	d := &model.Doctor{Name: "Dr. Iyer", Specialization: "General Medicine", Status: model.DoctorStatusActive}
	require.NoError(t, store.Doctors().Create(ctx, d))

	events := &messagingtest.Recorder{}
	return &fixture{
		store:   store,
		svc:     NewService(store.Appointments(), events),
		events:  events,
		patient: p,
		doctor:  d,
	}
}

func (f *fixture) book(t *testing.T) *model.Appointment {
	t.Helper()
	a := &model.Appointment{
		PatientID:       f.patient.ID,
		DoctorID:        f.doctor.ID,
		AppointmentDate: model.DateTime{Time: time.Now().Add(48 * time.Hour)},
	}
	require.NoError(t, f.svc.CreateAppointment(context.Background(), a))
	return a
}

func TestCreateAppointmentDefaultsAndJoins(t *testing.T) {
	f := setup(t)
	a := f.book(t)
	assert.Equal(t, model.AppointmentStatusScheduled, a.Status)

	list, err := f.svc.ListAppointments(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].PatientName)
	assert.Equal(t, "Asha Rao", *list[0].PatientName)
	assert.Equal(t, "Dr. Iyer", *list[0].DoctorName)
	assert.Equal(t, []string{messaging.EventAppointmentBooked}, f.events.Types())
}

func TestCreateAppointmentValidation(t *testing.T) {
	f := setup(t)

	err := f.svc.CreateAppointment(context.Background(), &model.Appointment{PatientID: f.patient.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doctorId: is required")
	assert.Contains(t, err.Error(), "appointmentDate: is required")

	err = f.svc.CreateAppointment(context.Background(), &model.Appointment{
		PatientID:       f.patient.ID,
		DoctorID:        f.doctor.ID + 100,
		AppointmentDate: model.DateTime{Time: time.Now()},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "doctor does not exist")
}

func TestUpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.book(t)

	err := f.svc.UpdateStatus(ctx, a.ID, model.AppointmentStatusScheduled)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	require.NoError(t, f.svc.UpdateStatus(ctx, a.ID, model.AppointmentStatusCompleted))
	got, err := f.store.Appointments().Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, got.Status)

	err = f.svc.UpdateStatus(ctx, a.ID, model.AppointmentStatusCancelled)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "Completed appointment")

	err = f.svc.UpdateStatus(ctx, 9999, model.AppointmentStatusCancelled)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
