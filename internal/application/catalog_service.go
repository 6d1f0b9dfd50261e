package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	repo "github.com/oksasatya/fitbalance-api/internal/domain/repository"
)

type CatalogService struct {
	Ingredients repo.IngredientRepository
	Recipes     repo.RecipeRepository
	ES          *elasticsearch.Client
	ESIndex     string
	Images      ImageStore
	Logger      *logrus.Logger
}

func NewCatalogService(ingredients repo.IngredientRepository, recipes repo.RecipeRepository, es *elasticsearch.Client, esIndex string, images ImageStore, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Ingredients: ingredients,
		Recipes:     recipes,
		ES:          es,
		ESIndex:     esIndex,
		Images:      images,
		Logger:      logger,
	}
}

func (s *CatalogService) ListIngredients(ctx context.Context) ([]entity.Ingredient, error) {
	return s.Ingredients.List(ctx)
}

func (s *CatalogService) CreateIngredient(ctx context.Context, in entity.Ingredient) (*entity.Ingredient, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.Ingredients.Create(ctx, &in); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrIngredientExists
		}
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return &in, nil
}

func (s *CatalogService) ListRecipes(ctx context.Context) ([]entity.Recipe, error) {
	return s.Recipes.List(ctx)
}

type CreateRecipeInput struct {
	Name        string
	Category    string
	Ingredients []string // ingredient names, in order
}

// CreateRecipe resolves ingredient names against the catalog and derives the
// total calories from them. The category is stored in its canonical spelling.
func (s *CatalogService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*entity.Recipe, error) {
	category, ok := entity.ParseMealCategory(in.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, in.Category)
	}
	rc := &entity.Recipe{
		Name:        strings.TrimSpace(in.Name),
		Category:    string(category),
		Ingredients: make([]entity.Ingredient, 0, len(in.Ingredients)),
	}
	for _, name := range in.Ingredients {
		name = strings.TrimSpace(name)
		ing, err := s.Ingredients.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrIngredientNotFound, name)
			}
			return nil, err
		}
		rc.Ingredients = append(rc.Ingredients, *ing)
	}
	rc.TotalCalories = rc.SumCalories()

	if err := s.Recipes.Create(ctx, rc); err != nil {
		switch {
		case errors.Is(err, repo.ErrConflict):
			return nil, ErrRecipeExists
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	s.indexRecipe(ctx, rc)
	return rc, nil
}

// UploadRecipeImage stores the image under recipes/<id>/ and records its URL.
func (s *CatalogService) UploadRecipeImage(ctx context.Context, recipeID string, r io.Reader, filename, contentType string) (string, error) {
	if s.Images == nil {
		return "", ErrStorageNotConfigured
	}
	if _, err := s.Recipes.GetByID(ctx, recipeID); err != nil {
		return "", notFound(err, ErrRecipeNotFound)
	}
	ext := strings.ToLower(path.Ext(filename))
	objectPath := path.Join("recipes", recipeID, uuid.NewString()+ext)
	url, err := s.Images.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := s.Recipes.UpdateImage(ctx, recipeID, url); err != nil {
		return "", notFound(err, ErrRecipeNotFound)
	}
	return url, nil
}

// indexRecipe is best effort: failures are logged and the recipe stays
// reachable through the store.
func (s *CatalogService) indexRecipe(ctx context.Context, rc *entity.Recipe) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	names := make([]string, len(rc.Ingredients))
	for i, in := range rc.Ingredients {
		names[i] = in.Name
	}
	b, err := json.Marshal(map[string]any{
		"name":           rc.Name,
		"category":       rc.Category,
		"ingredients":    names,
		"total_calories": rc.TotalCalories,
	})
	if err != nil {
		s.Logger.WithError(err).WithField("recipe_id", rc.ID).Warn("es document encode failed")
		return
	}
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: rc.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("recipe_id", rc.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("recipe_id", rc.ID).Warn("es index response error")
	}
}

// SearchRecipes runs a multi_match query over name, category and ingredient
// names and loads the hits from the store. Without Elasticsearch it returns
// an empty list.
func (s *CatalogService) SearchRecipes(ctx context.Context, q string, size int) ([]entity.Recipe, error) {
	out := []entity.Recipe{}
	if s.ES == nil || s.ESIndex == "" || strings.TrimSpace(q) == "" {
		return out, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	b, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "category", "ingredients"},
			},
		},
		"size":    size,
		"_source": false,
	})
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", s.ESIndex, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	for _, h := range parsed.Hits.Hits {
		rc, err := s.Recipes.GetByID(ctx, h.ID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				continue // stale index entry
			}
			return nil, err
		}
		out = append(out, *rc)
	}
	return out, nil
}
