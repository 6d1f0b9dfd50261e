package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	repo "github.com/oksasatya/fitbalance-api/internal/domain/repository"
	"github.com/oksasatya/fitbalance-api/pkg/helpers"
	"github.com/oksasatya/fitbalance-api/pkg/mailer"
	"github.com/oksasatya/fitbalance-api/pkg/mailer/templates"
)

type AuthService struct {
	Users    repo.UserRepository
	Hasher   PasswordHasher
	JWT      *helpers.JWTManager
	Sessions *helpers.SessionStore
	Jobs     JobPublisher
	Logger   *logrus.Logger
	AppName  string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, jwt *helpers.JWTManager, sessions *helpers.SessionStore, jobs JobPublisher, logger *logrus.Logger, appName string) *AuthService {
	return &AuthService{
		Users:    users,
		Hasher:   hasher,
		JWT:      jwt,
		Sessions: sessions,
		Jobs:     jobs,
		Logger:   logger,
		AppName:  appName,
	}
}

// Authenticate checks email and password without issuing tokens. Both an
// unknown email and a wrong password yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Matches(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	helpers.LogInfo(s.Logger, "user logged in", logrus.Fields{"user_id": u.ID})
	return u, pair, nil
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

// Register creates a user with the default role. Username falls back to the email.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = email
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Username: username, Email: email, Password: hash, Role: entity.RoleUser}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			// lost a race with a concurrent registration
			return nil, takenKey(ctx, s.Users, u)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.Jobs, s.Logger, mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data: map[string]any{
			"AppName":  s.AppName,
			"Username": u.Username,
			"Email":    u.Email,
		},
	})
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.pair(u.ID, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate tokens failed", err, logrus.Fields{"user_id": u.ID})
		return TokenPair{}, err
	}
	err = s.Sessions.Save(ctx, helpers.Session{
		UserID:   u.ID,
		SID:      sid,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role.String(),
	})
	if err != nil {
		return TokenPair{}, fmt.Errorf("save session: %w", err)
	}
	return pair, nil
}

// Refresh validates the refresh token against the live session, then rotates
// the session id and both tokens. It returns the user id the pair belongs to.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	sess, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil || sess.SID != claims.SessionID {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if _, err := s.Users.GetByID(ctx, claims.UserID); err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}

	sid := uuid.NewString()
	pair, err := s.pair(claims.UserID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if err := s.Sessions.Rotate(ctx, claims.UserID, sid); err != nil {
		return TokenPair{}, "", fmt.Errorf("rotate session: %w", err)
	}
	return pair, claims.UserID, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.Sessions.Delete(ctx, userID)
}

func (s *AuthService) pair(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
