package machinery

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

func TestMachineLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	events := &messagingtest.Recorder{}
	svc := NewService(store.Machinery(), events)

	m := &model.Machinery{Name: "MRI Scanner", Type: "Imaging"}
	require.NoError(t, svc.CreateMachine(ctx, m))
	assert.Equal(t, model.MachineryStatusOperational, m.Status)

	m.Status = model.MachineryStatusUnderMaintenance
	m.LastMaintenanceDate = model.NewDate(2030, time.January, 1)
	m.NextMaintenanceDate = model.NewDate(2030, time.July, 1)
	require.NoError(t, svc.UpdateMachine(ctx, m))

	list, err := svc.ListMachines(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.MachineryStatusUnderMaintenance, list[0].Status)

	require.NoError(t, svc.DeleteMachine(ctx, m.ID))
	assert.Equal(t, []string{
		messaging.EventMachineryCreated,
		messaging.EventMachineryUpdated,
		messaging.EventMachineryDeleted,
	}, events.Types())
}

func TestMachineValidation(t *testing.T) {
	svc := NewService(memory.New().Machinery(), messaging.NopPublisher{})
	ctx := context.Background()

	err := svc.CreateMachine(ctx, &model.Machinery{Status: "Lost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "status: must be one of")

	err = svc.CreateMachine(ctx, &model.Machinery{
		Name:                "Ventilator",
		Type:                "Respiratory",
		LastMaintenanceDate: model.NewDate(2030, time.May, 1),
		NextMaintenanceDate: model.NewDate(2030, time.April, 1),
	})
	assert.Contains(t, err.Error(), "nextMaintenanceDate")

	err = svc.UpdateMachine(ctx, &model.Machinery{ID: 404, Name: "X", Type: "Y"})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
