package invoice

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

func setup(t *testing.T) (*memory.Store, *Service, int64) {
	t.Helper()
	store := memory.New()
	p := &model.Patient{FirstName: "Asha", LastName: "Rao", DOB: model.NewDate(1990, 1, 1), Gender: model.GenderFemale, Phone: "9"}
	require.NoError(t, store.Patients().Create(context.Background(), p))
	return store, NewService(store.Invoices(), messaging.NopPublisher{}), p.ID
}

func newInvoice(patientID int64) *model.Invoice {
	return &model.Invoice{
		PatientID:   patientID,
		Amount:      100,
		Tax:         18,
		InvoiceDate: model.NewDate(2030, time.March, 1),
	}
}

func TestCreateInvoiceDerivesTotal(t *testing.T) {
	ctx := context.Background()
	store, _, patientID := setup(t)
	events := &messagingtest.Recorder{}
	svc := NewService(store.Invoices(), events)

	inv := newInvoice(patientID)
	require.NoError(t, svc.CreateInvoice(ctx, inv, nil))

	got, err := store.Invoices().Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 118.0, got.Total)
	assert.Equal(t, model.InvoiceStatusPending, got.Status)
	assert.Equal(t, model.DefaultPaymentMethod, got.PaymentMethod)
	assert.Equal(t, []string{messaging.EventInvoiceIssued}, events.Types())
}

func TestCreateInvoiceSubmittedTotal(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		tax       float64
		submitted float64
		wantErr   bool
	}{
		{"exact", 100, 18, 118, false},
		{"within tolerance", 100, 18, 118.004, false},
		{"at tolerance", 10.10, 0.20, 10.305, false},
		{"mismatch", 100, 18, 120, true},
		{"just over tolerance", 100, 18, 118.006, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, svc, patientID := setup(t)
			inv := newInvoice(patientID)
			inv.Amount, inv.Tax = tt.amount, tt.tax
			submitted := tt.submitted

			err := svc.CreateInvoice(context.Background(), inv, &submitted)
			if tt.wantErr {
				assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
				assert.Zero(t, store.Queries("invoices.create"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.Round2(tt.amount+tt.tax), inv.Total)
		})
	}
}

func TestCreateInvoiceRequiresFields(t *testing.T) {
	_, svc, _ := setup(t)

	err := svc.CreateInvoice(context.Background(), &model.Invoice{Tax: -1}, nil)
	require.Error(t, err)
	for _, msg := range []string{"patientId: is required", "amount: is required", "tax: must not be negative", "invoiceDate: is required"} {
		assert.Contains(t, err.Error(), msg)
	}
}

func TestCreateInvoiceUnknownPatient(t *testing.T) {
	_, svc, patientID := setup(t)

	err := svc.CreateInvoice(context.Background(), newInvoice(patientID+50), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "patient does not exist")
}

func TestUpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()
	_, svc, patientID := setup(t)

	inv := newInvoice(patientID)
	require.NoError(t, svc.CreateInvoice(ctx, inv, nil))

	require.NoError(t, svc.UpdateStatus(ctx, inv.ID, model.InvoiceStatusOverdue))
	require.NoError(t, svc.UpdateStatus(ctx, inv.ID, model.InvoiceStatusPaid))

	err := svc.UpdateStatus(ctx, inv.ID, model.InvoiceStatusPending)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "from Paid to Pending")

	err = svc.UpdateStatus(ctx, inv.ID, "Refunded")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}
