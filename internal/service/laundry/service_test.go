package laundry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository/memory"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
)

func TestLaundryLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewService(store.Laundry(), messaging.NopPublisher{})

	item := (&model.LaundryRequest{ItemType: "Bedsheet", Quantity: 40, Ward: "B"}).ToModel()
	require.NoError(t, svc.CreateItem(ctx, item))
	assert.Equal(t, model.LaundryStatusClean, item.Status)

	item.Status = model.LaundryStatusInLaundry
	require.NoError(t, svc.UpdateItem(ctx, item))

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.LaundryStatusInLaundry, items[0].Status)
	assert.Equal(t, "B", *items[0].Ward)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	assert.True(t, apperrors.Is(svc.DeleteItem(ctx, item.ID), apperrors.ErrNotFound))
}

func TestLaundryValidation(t *testing.T) {
	svc := NewService(memory.New().Laundry(), messaging.NopPublisher{})

	err := svc.CreateItem(context.Background(), &model.LaundryItem{Quantity: -1, Status: "Folded"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itemType: is required")
	assert.Contains(t, err.Error(), "quantity: must not be negative")
	assert.Contains(t, err.Error(), "status: must be one of")
}
