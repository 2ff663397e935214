package laundry

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type LaundryServicer interface {
	CreateItem(ctx context.Context, item *model.LaundryItem) error
	ListItems(ctx context.Context) ([]*model.LaundryItem, error)
	UpdateItem(ctx context.Context, item *model.LaundryItem) error
	DeleteItem(ctx context.Context, id int64) error
}

type Service struct {
	repo   repository.LaundryRepository
	events messaging.Publisher
}

func NewService(repo repository.LaundryRepository, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		events: events,
	}
}

type itemEvent struct {
	ID       int64  `json:"id"`
	ItemType string `json:"item_type"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

func newItemEvent(i *model.LaundryItem) itemEvent {
	return itemEvent{ID: i.ID, ItemType: i.ItemType, Quantity: i.Quantity, Status: i.Status}
}

func (s *Service) CreateItem(ctx context.Context, item *model.LaundryItem) error {
	if err := validateItem(item); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create laundry item: %w", err)
	}

	s.events.Publish(ctx, messaging.EventLaundryCreated, newItemEvent(item))
	return nil
}

func (s *Service) ListItems(ctx context.Context) ([]*model.LaundryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list laundry: %w", err)
	}
	return items, nil
}

func (s *Service) UpdateItem(ctx context.Context, item *model.LaundryItem) error {
	if err := validateItem(item); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return fmt.Errorf("failed to update laundry item: %w", err)
	}

	s.events.Publish(ctx, messaging.EventLaundryUpdated, newItemEvent(item))
	return nil
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete laundry item: %w", err)
	}

	s.events.Publish(ctx, messaging.EventLaundryDeleted, messaging.EntityRef{ID: id})
	return nil
}

func validateItem(i *model.LaundryItem) error {
	if i.Status == "" {
		i.Status = model.LaundryStatusClean
	}

	var check validator.Check
	check.Required("itemType", i.ItemType).
		OneOf("status", i.Status, model.LaundryStatuses)
	if i.Quantity < 0 {
		check.Failf("quantity", "must not be negative")
	}
	return check.Err()
}
