package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	repo "github.com/oksasatya/fitbalance-api/internal/domain/repository"
)

func TestCreateIngredientDuplicate(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.CreateIngredient(f.ctx, entity.Ingredient{Name: "Tomate", Calories: 18})
	require.NoError(t, err)
	_, err = f.catalog.CreateIngredient(f.ctx, entity.Ingredient{Name: " tomate "})
	assert.ErrorIs(t, err, ErrIngredientExists)
}

func TestCreateRecipe(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.CreateIngredient(f.ctx, entity.Ingredient{Name: "Tomate", Calories: 18})
	require.NoError(t, err)
	_, err = f.catalog.CreateIngredient(f.ctx, entity.Ingredient{Name: "Pan", Calories: 250})
	require.NoError(t, err)

	rc, err := f.catalog.CreateRecipe(f.ctx, CreateRecipeInput{Name: "Pan con tomate", Category: "desayuno", Ingredients: []string{"pan", "Tomate"}})
	require.NoError(t, err)
	assert.Equal(t, "Desayuno", rc.Category)
	assert.InDelta(t, 268, rc.TotalCalories, 1e-9)
	require.Len(t, rc.Ingredients, 2)
	assert.Equal(t, "Pan", rc.Ingredients[0].Name)

	_, err = f.catalog.CreateRecipe(f.ctx, CreateRecipeInput{Name: "PAN CON TOMATE", Category: "Cena"})
	assert.ErrorIs(t, err, ErrRecipeExists)

	_, err = f.catalog.CreateRecipe(f.ctx, CreateRecipeInput{Name: "Gazpacho", Category: "Cena", Ingredients: []string{"Pepino"}})
	assert.ErrorIs(t, err, ErrIngredientNotFound)

	_, err = f.catalog.CreateRecipe(f.ctx, CreateRecipeInput{Name: "Brunch", Category: "Brunch"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

// exactIngredients matches names the way the SQL store does: case-insensitive
// but without trimming.
type exactIngredients struct {
	repo.IngredientRepository
}

func (e exactIngredients) GetByName(ctx context.Context, name string) (*entity.Ingredient, error) {
	if name != strings.TrimSpace(name) {
		return nil, repo.ErrNotFound
	}
	return e.IngredientRepository.GetByName(ctx, name)
}

func TestCreateRecipeTrimsIngredientNames(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.CreateIngredient(f.ctx, entity.Ingredient{Name: "Tomate", Calories: 18})
	require.NoError(t, err)
	f.catalog.Ingredients = exactIngredients{f.ingredients}

	rc, err := f.catalog.CreateRecipe(f.ctx, CreateRecipeInput{Name: "Ensalada", Category: "Cena", Ingredients: []string{" Tomate "}})
	require.NoError(t, err)
	require.Len(t, rc.Ingredients, 1)
	assert.Equal(t, "Tomate", rc.Ingredients[0].Name)
}

func TestCreateRecipeSurvivesIndexFailure(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	f.catalog.ES, f.catalog.ESIndex = es, "recipes"

	rc, err := f.catalog.CreateRecipe(f.ctx, CreateRecipeInput{Name: "Sopa", Category: "Cena"})
	require.NoError(t, err)

	stored, err := f.recipes.GetByID(f.ctx, rc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sopa", stored.Name)
}

func TestUploadRecipeImage(t *testing.T) {
	f := newFixture(t)
	rc, err := f.catalog.CreateRecipe(f.ctx, CreateRecipeInput{Name: "Sopa", Category: "Cena"})
	require.NoError(t, err)

	_, err = f.catalog.UploadRecipeImage(f.ctx, rc.ID, strings.NewReader("img"), "a.png", "image/png")
	assert.ErrorIs(t, err, ErrStorageNotConfigured)

	images := &fakeImages{}
	f.catalog.Images = images
	url, err := f.catalog.UploadRecipeImage(f.ctx, rc.ID, strings.NewReader("img"), "Photo.PNG", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(images.path, "recipes/"+rc.ID+"/"))
	assert.True(t, strings.HasSuffix(images.path, ".png"))
	assert.Equal(t, "img", string(images.body))

	stored, err := f.recipes.GetByID(f.ctx, rc.ID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.ImageURL)

	_, err = f.catalog.UploadRecipeImage(f.ctx, "missing", strings.NewReader("img"), "a.png", "image/png")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestSearchRecipesWithoutES(t *testing.T) {
	f := newFixture(t)
	got, err := f.catalog.SearchRecipes(f.ctx, "sopa", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchRecipesIndexesAndLoadsHits(t *testing.T) {
	f := newFixture(t)

	var indexed []string
	var hits []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/recipes/_doc/"):
			id := strings.TrimPrefix(r.URL.Path, "/recipes/_doc/")
			indexed = append(indexed, id)
			hits = append(hits, map[string]string{"_id": id})
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"result":"created"}`))
		case strings.HasSuffix(r.URL.Path, "/_search"):
			// one stale id that no longer exists in the store
			all := append(hits, map[string]string{"_id": "stale"})
			_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": all}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	f.catalog.ES, f.catalog.ESIndex = es, "recipes"

	rc, err := f.catalog.CreateRecipe(f.ctx, CreateRecipeInput{Name: "Sopa", Category: "Cena"})
	require.NoError(t, err)
	assert.Equal(t, []string{rc.ID}, indexed)

	got, err := f.catalog.SearchRecipes(f.ctx, "sopa", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sopa", got[0].Name)
}
