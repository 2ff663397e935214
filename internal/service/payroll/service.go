package payroll

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type PayrollServicer interface {
	RecordPayment(ctx context.Context, entry *model.PayrollEntry) error
	ListPayments(ctx context.Context) ([]*model.PayrollEntry, error)
}

type Service struct {
	repo   repository.PayrollRepository
	events messaging.Publisher
}

func NewService(repo repository.PayrollRepository, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		events: events,
	}
}

type recordedEvent struct {
	ID            int64   `json:"id"`
	RecipientType string  `json:"recipient_type"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
}

// RecordPayment stores one disbursement. recipient_id is a weak reference and
// is kept only for recipient types that name a row.
func (s *Service) RecordPayment(ctx context.Context, entry *model.PayrollEntry) error {
	if entry.Status == "" {
		entry.Status = model.PayrollStatusPaid
	}
	if entry.PaymentMethod == "" {
		entry.PaymentMethod = model.DefaultPaymentMethod
	}
	if !model.RecipientTakesID(entry.RecipientType) {
		entry.RecipientID = nil
	}

	var check validator.Check
	check.Required("recipientType", entry.RecipientType).
		OneOf("recipientType", entry.RecipientType, model.RecipientTypes).
		Required("recipientName", entry.RecipientName).
		RequiredSet("amount", entry.Amount > 0).
		RequiredSet("paymentDate", !entry.PaymentDate.IsZero()).
		OneOf("status", entry.Status, model.PayrollStatuses)
	if err := check.Err(); err != nil {
		return err
	}
	entry.Amount = model.Round2(entry.Amount)

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	s.events.Publish(ctx, messaging.EventPayrollRecorded, recordedEvent{
		ID:            entry.ID,
		RecipientType: entry.RecipientType,
		Amount:        entry.Amount,
		Status:        entry.Status,
	})
	return nil
}

func (s *Service) ListPayments(ctx context.Context) ([]*model.PayrollEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll: %w", err)
	}
	return entries, nil
}
