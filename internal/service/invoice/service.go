package invoice

import (
	"context"
	"fmt"
	"math"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

// TotalTolerance is how far a submitted total may drift from amount + tax.
const TotalTolerance = 0.005

// transitions lists the statuses each invoice status may move to.
var transitions = map[string][]string{
	model.InvoiceStatusPending: {model.InvoiceStatusPaid, model.InvoiceStatusOverdue},
	model.InvoiceStatusOverdue: {model.InvoiceStatusPaid},
}

type InvoiceServicer interface {
	CreateInvoice(ctx context.Context, invoice *model.Invoice, submittedTotal *float64) error
	ListInvoices(ctx context.Context) ([]*model.InvoiceView, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type Service struct {
	repo   repository.InvoiceRepository
	events messaging.Publisher
}

func NewService(repo repository.InvoiceRepository, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		events: events,
	}
}

type issuedEvent struct {
	ID        int64   `json:"id"`
	PatientID int64   `json:"patient_id"`
	Total     float64 `json:"total"`
	Status    string  `json:"status"`
}

// CreateInvoice derives the total from amount and tax. A submitted total is
// only checked against the derived one, never stored.
func (s *Service) CreateInvoice(ctx context.Context, invoice *model.Invoice, submittedTotal *float64) error {
	if invoice.Status == "" {
		invoice.Status = model.InvoiceStatusPending
	}
	if invoice.PaymentMethod == "" {
		invoice.PaymentMethod = model.DefaultPaymentMethod
	}

	var check validator.Check
	check.RequiredID("patientId", invoice.PatientID).
		RequiredSet("amount", invoice.Amount > 0).
		NonNegative("tax", invoice.Tax).
		RequiredSet("invoiceDate", !invoice.InvoiceDate.IsZero()).
		OneOf("status", invoice.Status, model.InvoiceStatuses)
	if err := check.Err(); err != nil {
		return err
	}

	invoice.Amount = model.Round2(invoice.Amount)
	invoice.Tax = model.Round2(invoice.Tax)
	invoice.Total = model.Round2(invoice.Amount + invoice.Tax)
	if submittedTotal != nil && !withinTolerance(*submittedTotal, invoice.Total) {
		return apperrors.Validation("total: must equal amount + tax (%.2f)", invoice.Total)
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	s.events.Publish(ctx, messaging.EventInvoiceIssued, issuedEvent{
		ID:        invoice.ID,
		PatientID: invoice.PatientID,
		Total:     invoice.Total,
		Status:    invoice.Status,
	})
	return nil
}

func withinTolerance(submitted, derived float64) bool {
	// 1e-9 absorbs binary representation error at the boundary.
	return math.Abs(submitted-derived) <= TotalTolerance+1e-9
}

func (s *Service) ListInvoices(ctx context.Context) ([]*model.InvoiceView, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	var check validator.Check
	if err := check.OneOf("status", status, model.InvoiceStatuses).Err(); err != nil {
		return err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get invoice: %w", err)
	}
	if !allowed(current.Status, status) {
		return apperrors.Validation("cannot move invoice from %s to %s", current.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}

	s.events.Publish(ctx, messaging.EventInvoiceStatusChanged, messaging.StatusChange{
		ID:   id,
		From: current.Status,
		To:   status,
	})
	return nil
}

func allowed(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
