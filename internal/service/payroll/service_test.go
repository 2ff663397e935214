package payroll

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
)

func TestRecordPaymentDefaults(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewService(store.Payroll(), messaging.NopPublisher{})

	id := int64(7)
	sweeper := &model.PayrollEntry{
		RecipientID:   &id,
		RecipientType: model.RecipientSweeper,
		RecipientName: "Ramesh",
		Amount:        12000,
		PaymentDate:   model.NewDate(2030, time.January, 31),
	}
	require.NoError(t, svc.RecordPayment(ctx, sweeper))
	assert.Nil(t, sweeper.RecipientID)
	assert.Equal(t, model.PayrollStatusPaid, sweeper.Status)
	assert.Equal(t, model.DefaultPaymentMethod, sweeper.PaymentMethod)

	doctor := &model.PayrollEntry{
		RecipientID:   &id,
		RecipientType: model.RecipientDoctor,
		RecipientName: "Dr. Iyer",
		Amount:        90000,
		PaymentDate:   model.NewDate(2030, time.February, 28),
		Status:        model.PayrollStatusPending,
	}
	require.NoError(t, svc.RecordPayment(ctx, doctor))
	require.NotNil(t, doctor.RecipientID)

	list, err := svc.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, doctor.ID, list[0].ID, "newest payment date first")
}

func TestRecordPaymentValidation(t *testing.T) {
	svc := NewService(memory.New().Payroll(), messaging.NopPublisher{})

	err := svc.RecordPayment(context.Background(), &model.PayrollEntry{RecipientType: "Contractor"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	for _, msg := range []string{"recipientType: must be one of", "recipientName: is required", "amount: is required", "paymentDate: is required"} {
		assert.Contains(t, err.Error(), msg)
	}
}
