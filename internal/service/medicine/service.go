package medicine

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type MedicineServicer interface {
	CreateMedicine(ctx context.Context, medicine *model.Medicine, priceSupplied bool) error
	ListMedicines(ctx context.Context) ([]*model.Medicine, error)
	UpdateMedicine(ctx context.Context, medicine *model.Medicine, priceSupplied bool) error
	DeleteMedicine(ctx context.Context, id int64) error
}

type Service struct {
	repo   repository.MedicineRepository
	events messaging.Publisher
}

func NewService(repo repository.MedicineRepository, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		events: events,
	}
}

type stockEvent struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	LowStock bool   `json:"low_stock"`
}

func newStockEvent(m *model.Medicine) stockEvent {
	return stockEvent{ID: m.ID, Name: m.Name, Stock: m.Stock, LowStock: m.LowStock()}
}

func (s *Service) CreateMedicine(ctx context.Context, medicine *model.Medicine, priceSupplied bool) error {
	if err := validateMedicine(medicine, priceSupplied); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, medicine); err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}

	s.events.Publish(ctx, messaging.EventMedicineCreated, newStockEvent(medicine))
	return nil
}

func (s *Service) ListMedicines(ctx context.Context) ([]*model.Medicine, error) {
	medicines, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

// UpdateMedicine replaces every field of the row identified by medicine.ID.
func (s *Service) UpdateMedicine(ctx context.Context, medicine *model.Medicine, priceSupplied bool) error {
	if err := validateMedicine(medicine, priceSupplied); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, medicine); err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}

	s.events.Publish(ctx, messaging.EventMedicineUpdated, newStockEvent(medicine))
	return nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}

	s.events.Publish(ctx, messaging.EventMedicineDeleted, messaging.EntityRef{ID: id})
	return nil
}

func validateMedicine(m *model.Medicine, priceSupplied bool) error {
	var check validator.Check
	check.Required("name", m.Name).
		RequiredSet("price", priceSupplied).
		NonNegative("price", m.Price)
	if m.Stock < 0 {
		check.Failf("stock", "must not be negative")
	}
	return check.Err()
}
