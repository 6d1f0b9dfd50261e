package repository

import (
	"context"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error

	// GetMenu returns the user's menu in stored order with ingredients loaded.
	GetMenu(ctx context.Context, userID string) ([]entity.Recipe, error)
	// ReplaceMenu swaps the whole menu atomically. An empty slice clears it.
	ReplaceMenu(ctx context.Context, userID string, recipeIDs []string) error
}
