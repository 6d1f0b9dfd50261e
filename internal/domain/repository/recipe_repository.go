package repository

import (
	"context"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
)

type RecipeRepository interface {
	Create(ctx context.Context, r *entity.Recipe) error
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	GetByName(ctx context.Context, name string) (*entity.Recipe, error)
	// List returns every recipe with its ingredients.
	List(ctx context.Context) ([]entity.Recipe, error)
	UpdateImage(ctx context.Context, id, imageURL string) error
}

type IngredientRepository interface {
	Create(ctx context.Context, in *entity.Ingredient) error
	GetByName(ctx context.Context, name string) (*entity.Ingredient, error)
	List(ctx context.Context) ([]entity.Ingredient, error)
}
