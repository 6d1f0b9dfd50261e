package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	repo "github.com/oksasatya/fitbalance-api/internal/domain/repository"
	"github.com/oksasatya/fitbalance-api/pkg/helpers"
)

type UserService struct {
	Users    repo.UserRepository
	Hasher   PasswordHasher
	Sessions *helpers.SessionStore
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, hasher PasswordHasher, sessions *helpers.SessionStore, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Hasher: hasher, Sessions: sessions, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return u, nil
}

// UpdateProfileInput leaves a field unchanged when it is empty.
type UpdateProfileInput struct {
	Username string
	Email    string
	Password string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(in.Email); email != "" && email != u.Email {
		if other, err := s.Users.GetByEmail(ctx, email); err == nil && other.ID != u.ID {
			return nil, ErrEmailTaken
		}
		u.Email = email
	}
	if username := strings.TrimSpace(in.Username); username != "" && username != u.Username {
		if other, err := s.Users.GetByUsername(ctx, username); err == nil && other.ID != u.ID {
			return nil, ErrUsernameTaken
		}
		u.Username = username
	}
	if in.Password != "" {
		hash, err := s.Hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.Password = hash
	}

	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, takenKey(ctx, s.Users, u)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.patchSession(ctx, u.ID, map[string]any{"username": u.Username, "email": u.Email})
	return u, nil
}

// ChangeRole sets the role of the user with the given email. A live session
// picks up the new role on its next request.
func (s *UserService) ChangeRole(ctx context.Context, email string, role entity.Role) error {
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if u.Role == role {
		return nil
	}
	u.Role = role
	if err := s.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	s.patchSession(ctx, u.ID, map[string]any{"role": role.String()})
	helpers.LogInfo(s.Logger, "role changed", logrus.Fields{"user_id": u.ID, "role": role.String()})
	return nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Users.List(ctx)
}

func (s *UserService) DeleteByID(ctx context.Context, id string) error {
	if err := s.Users.DeleteByID(ctx, id); err != nil {
		return notFound(err, ErrUserNotFound)
	}
	s.dropSession(ctx, id)
	return nil
}

func (s *UserService) DeleteAll(ctx context.Context) error {
	users, err := s.Users.List(ctx)
	if err != nil {
		return err
	}
	if err := s.Users.DeleteAll(ctx); err != nil {
		return err
	}
	for _, u := range users {
		s.dropSession(ctx, u.ID)
	}
	helpers.LogInfo(s.Logger, "all users deleted", logrus.Fields{"count": len(users)})
	return nil
}

// takenKey tells which unique key of u another user already holds after a
// write failed with a conflict.
func takenKey(ctx context.Context, users repo.UserRepository, u *entity.User) error {
	if other, err := users.GetByEmail(ctx, u.Email); err == nil && other.ID != u.ID {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

func (s *UserService) patchSession(ctx context.Context, userID string, fields map[string]any) {
	if s.Sessions == nil {
		return
	}
	if err := s.Sessions.Patch(ctx, userID, fields); err != nil {
		helpers.LogError(s.Logger, "session patch failed", err, logrus.Fields{"user_id": userID})
	}
}

func (s *UserService) dropSession(ctx context.Context, userID string) {
	if s.Sessions == nil {
		return
	}
	if err := s.Sessions.Delete(ctx, userID); err != nil {
		helpers.LogError(s.Logger, "session delete failed", err, logrus.Fields{"user_id": userID})
	}
}

// notFound swaps repository.ErrNotFound for the service sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return sentinel
	}
	return err
}
