package emergency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository/memory"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/messaging/messagingtest"
)

func TestAmbulances(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	events := &messagingtest.Recorder{}
	svc := NewService(store.Ambulances(), store.EmergencyContacts(), events)

	a := &model.Ambulance{VehicleNumber: "KA-01-AB-1234", DriverName: "Ravi", ContactNumber: "108"}
	require.NoError(t, svc.CreateAmbulance(ctx, a))
	assert.Equal(t, model.AmbulanceStatusAvailable, a.Status)

	dup := &model.Ambulance{VehicleNumber: "KA-01-AB-1234", DriverName: "Sam", ContactNumber: "109"}
	err := svc.CreateAmbulance(ctx, dup)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.Contains(t, err.Error(), "Vehicle number already exists")

	err = svc.CreateAmbulance(ctx, &model.Ambulance{VehicleNumber: "X", DriverName: "Y", ContactNumber: "Z", Status: "Parked"})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	list, err := svc.ListAmbulances(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteAmbulance(ctx, a.ID))
	assert.True(t, apperrors.Is(svc.DeleteAmbulance(ctx, a.ID), apperrors.ErrNotFound))
	assert.Equal(t, []string{messaging.EventAmbulanceCreated, messaging.EventAmbulanceDeleted}, events.Types())
}

func TestContacts(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewService(store.Ambulances(), store.EmergencyContacts(), messaging.NopPublisher{})

	err := svc.CreateContact(ctx, &model.EmergencyContact{Name: "Fire"})
	assert.Contains(t, err.Error(), "contactNumber: is required")

	req := model.CreateEmergencyContactRequest{Name: "Blood Bank", ContactNumber: "104"}
	c := req.ToModel()
	require.NoError(t, svc.CreateContact(ctx, c))
	assert.True(t, c.IsInternal)

	list, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Blood Bank", list[0].Name)

	require.NoError(t, svc.DeleteContact(ctx, c.ID))
}
