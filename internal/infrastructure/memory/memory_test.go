package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/internal/domain/repository"
)

func TestUserRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(NewStore())

	u := &entity.User{Username: "ana", Email: "ana@example.com"}
	require.NoError(t, users.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	err := users.Create(ctx, &entity.User{Username: "other", Email: "ANA@example.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := users.GetByEmail(ctx, " Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryMenuLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	users, recipes, ingredients := NewUserRepository(s), NewRecipeRepository(s), NewIngredientRepository(s)

	egg := &entity.Ingredient{Name: "Huevo", Calories: 78}
	require.NoError(t, ingredients.Create(ctx, egg))
	rc := &entity.Recipe{Name: "Tortilla", Category: "Cena", Ingredients: []entity.Ingredient{*egg}}
	require.NoError(t, recipes.Create(ctx, rc))

	u := &entity.User{Username: "ana", Email: "ana@example.com"}
	require.NoError(t, users.Create(ctx, u))

	assert.ErrorIs(t, users.ReplaceMenu(ctx, u.ID, []string{"nope"}), repository.ErrNotFound)
	assert.ErrorIs(t, users.ReplaceMenu(ctx, "ghost", []string{rc.ID}), repository.ErrNotFound)

	require.NoError(t, users.ReplaceMenu(ctx, u.ID, []string{rc.ID, rc.ID}))
	menu, err := users.GetMenu(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "Huevo", menu[0].Ingredients[0].Name)

	// returned slices are copies
	menu[0].Ingredients[0].Name = "changed"
	again, _ := users.GetMenu(ctx, u.ID)
	assert.Equal(t, "Huevo", again[0].Ingredients[0].Name)

	require.NoError(t, users.DeleteByID(ctx, u.ID))
	menu, err = users.GetMenu(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, menu)
}

func TestRecipeRepositoryRejectsUnknownIngredient(t *testing.T) {
	ctx := context.Background()
	recipes := NewRecipeRepository(NewStore())
	err := recipes.Create(ctx, &entity.Recipe{Name: "Sopa", Ingredients: []entity.Ingredient{{ID: "x"}}})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
