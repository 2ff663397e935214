package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/auth"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/security"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

type UserServicer interface {
	CreateUser(ctx context.Context, user *model.User, password string) error
	ListUsers(ctx context.Context) ([]*model.UserSummary, error)
	UpdateUser(ctx context.Context, id int64, req *model.UpdateUserRequest) error
	DeleteUser(ctx context.Context, id int64) error
}

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
	events messaging.Publisher
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, events messaging.Publisher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		events: events,
	}
}

type userEvent struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// CreateUser stores a bcrypt hash of password; the plaintext is never persisted.
func (s *Service) CreateUser(ctx context.Context, user *model.User, password string) error {
	if user.Role == "" {
		user.Role = model.RoleReceptionist
	}
	user.IsVerified = true

	var check validator.Check
	check.Required("username", user.Username).
		Required("password", password).
		OneOf("role", user.Role, model.Roles)
	if err := check.Err(); err != nil {
		return err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.events.Publish(ctx, messaging.EventUserCreated, userEvent{ID: user.ID, Username: user.Username, Role: user.Role})
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.UserSummary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes the profile fields the request carries. Staff may edit
// their own account; anyone else's needs an admin session.
func (s *Service) UpdateUser(ctx context.Context, id int64, req *model.UpdateUserRequest) error {
	if session, ok := auth.SessionFrom(ctx); ok && session.Role != model.RoleAdmin && session.UserID != id {
		return apperrors.Forbidden("Insufficient permissions")
	}

	var check validator.Check
	if req.Email != nil {
		check.Email("email", *req.Email)
	}
	if err := check.Err(); err != nil {
		return err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	update := req.ApplyTo(current)
	if req.Password != "" {
		hash, err := s.hashPassword(req.Password)
		if err != nil {
			return err
		}
		update.PasswordHash = &hash
	}

	if err := s.repo.Update(ctx, update); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.events.Publish(ctx, messaging.EventUserUpdated, userEvent{ID: id})
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if session, ok := auth.SessionFrom(ctx); ok && session.UserID == id {
		return apperrors.Validation("cannot delete the signed-in account")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.events.Publish(ctx, messaging.EventUserDeleted, userEvent{ID: id})
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, security.ErrPasswordTooShort) {
		return "", apperrors.Validation("password: must be at least %d characters", security.MinPasswordLen)
	}
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return hash, nil
}
