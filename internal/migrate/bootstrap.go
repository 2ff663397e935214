package migrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/security"
)

const AdminFullName = "System Administrator"

// Hasher hashes new passwords under policy and legacy ones without it.
type Hasher interface {
	Hash(password string) (string, error)
	Rehash(password string) (string, error)
}

// Bootstrapper seeds the first admin and upgrades plaintext passwords. Every step is idempotent.
type Bootstrapper struct {
	users  repository.UserRepository
	hasher Hasher
	logger zerolog.Logger
}

func NewBootstrapper(users repository.UserRepository, hasher Hasher, logger zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{
		users:  users,
		hasher: hasher,
		logger: logger.With().Str("component", "bootstrap").Logger(),
	}
}

func (b *Bootstrapper) Run(ctx context.Context, username, password string) error {
	if _, err := b.EnsureAdmin(ctx, username, password); err != nil {
		return err
	}
	if _, err := b.RehashPlaintextPasswords(ctx); err != nil {
		return err
	}
	return nil
}

// EnsureAdmin creates the admin account when no user holds username. An empty
// username disables the step.
func (b *Bootstrapper) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" {
		return false, nil
	}

	_, err := b.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}
	if password == "" {
		return false, errors.New("bootstrap.admin_password is required to create the admin user")
	}

	hash, err := b.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		FullName:     model.StringPtr(AdminFullName),
		IsVerified:   true,
	}
	if err := b.users.Create(ctx, admin); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}

	b.logger.Info().Str("username", username).Int64("user_id", admin.ID).Msg("created admin user")
	return true, nil
}

// RehashPlaintextPasswords replaces every stored password that is not a bcrypt hash.
func (b *Bootstrapper) RehashPlaintextPasswords(ctx context.Context) (int, error) {
	hashes, err := b.users.ListPasswordHashes(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for id, stored := range hashes {
		if security.IsBcryptHash(stored) {
			continue
		}
		hash, err := b.hasher.Rehash(stored)
		if err != nil {
			return count, fmt.Errorf("rehash user %d: %w", id, err)
		}
		if err := b.users.SetPasswordHash(ctx, id, hash); err != nil {
			return count, fmt.Errorf("store rehashed password for user %d: %w", id, err)
		}
		count++
	}

	if count > 0 {
		b.logger.Info().Int("count", count).Msg("rehashed plaintext passwords")
	}
	return count, nil
}
