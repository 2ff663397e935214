package room

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

func setup(t *testing.T) (*memory.Store, *Service, int64) {
	t.Helper()
	store := memory.New()
	p := &model.Patient{FirstName: "Asha", LastName: "Rao", DOB: model.NewDate(1990, 1, 1), Gender: model.GenderFemale, Phone: "9"}
	require.NoError(t, store.Patients().Create(context.Background(), p))
	return store, NewService(store.Rooms(), messaging.NopPublisher{}), p.ID
}

func general(number string) *model.Room {
	return &model.Room{RoomNumber: number, Type: model.RoomTypeGeneral, PricePerDay: 1500}
}

func TestCreateRoomDerivesStatus(t *testing.T) {
	ctx := context.Background()
	_, svc, patientID := setup(t)

	free := general("101")
	require.NoError(t, svc.CreateRoom(ctx, free))
	assert.Equal(t, model.RoomStatusAvailable, free.Status)

	taken := general("102")
	taken.PatientID = &patientID
	require.NoError(t, svc.CreateRoom(ctx, taken))
	assert.Equal(t, model.RoomStatusOccupied, taken.Status)

	rooms, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "101", rooms[0].RoomNumber)
	require.NotNil(t, rooms[1].PatientName)
	assert.Equal(t, "Asha Rao", *rooms[1].PatientName)
}

func TestRoomOccupancyContradictions(t *testing.T) {
	_, svc, patientID := setup(t)

	tests := []struct {
		name    string
		status  string
		patient *int64
	}{
		{"occupied without patient", model.RoomStatusOccupied, nil},
		{"available with patient", model.RoomStatusAvailable, &patientID},
		{"maintenance with patient", model.RoomStatusMaintenance, &patientID},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := general(string(rune('A' + i)))
			r.Status = tt.status
			r.PatientID = tt.patient

			err := svc.CreateRoom(context.Background(), r)
			assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
		})
	}
}

func TestUpdateRoomReleaseAndConflict(t *testing.T) {
	ctx := context.Background()
	store, _, patientID := setup(t)
	events := &messagingtest.Recorder{}
	svc := NewService(store.Rooms(), events)

	r := general("201")
	r.PatientID = &patientID
	require.NoError(t, svc.CreateRoom(ctx, r))

	r.PatientID = nil
	r.Status = ""
	require.NoError(t, svc.UpdateRoom(ctx, r))
	got, err := store.Rooms().Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusAvailable, got.Status)

	dup := general("201")
	err = svc.CreateRoom(ctx, dup)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.Contains(t, err.Error(), "Room number already exists")

	assert.Equal(t, []string{messaging.EventRoomCreated, messaging.EventRoomUpdated}, events.Types())
}

func TestCreateRoomValidatesType(t *testing.T) {
	_, svc, _ := setup(t)

	r := general("301")
	r.Type = "Suite"
	err := svc.CreateRoom(context.Background(), r)
	assert.Contains(t, err.Error(), "type: must be one of")
}
