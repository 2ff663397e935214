package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/auth"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/security"
)

type AuthServicer interface {
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
	Me(ctx context.Context) (*auth.Session, error)
}

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	tokens auth.JWTService

	// decoy is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	decoyOnce sync.Once
	decoy     string
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, tokens auth.JWTService) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login never says whether the username or the password was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = s.hasher.Compare(s.decoyHash(), password)
		return nil, apperrors.InvalidCredentials(nil)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		log.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("login rejected")
		return nil, apperrors.InvalidCredentials(nil)
	}

	session := auth.Session{UserID: user.ID, Username: user.Username, Role: user.Role}
	token, err := s.tokens.GenerateAccessToken(session)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to sign token: %w", err))
	}

	return &model.LoginResponse{
		Token: token,
		User: model.LoginUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			FullName: user.FullName,
		},
	}, nil
}

// Me returns the session the auth middleware decoded for this request.
func (s *Service) Me(ctx context.Context) (*auth.Session, error) {
	session, ok := auth.SessionFrom(ctx)
	if !ok {
		return nil, apperrors.Unauthorized(nil)
	}
	return &session, nil
}

func (s *Service) decoyHash() string {
	s.decoyOnce.Do(func() {
		s.decoy, _ = s.hasher.Hash("medidesk-decoy-password")
	})
	return s.decoy
}
