package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/internal/domain/repository"
)

type RecipeRepository struct {
	s *Store
}

func NewRecipeRepository(s *Store) *RecipeRepository {
	return &RecipeRepository{s: s}
}

func (r *RecipeRepository) Create(_ context.Context, rc *entity.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.recipes {
		if fold(other.Name) == fold(rc.Name) {
			return repository.ErrConflict
		}
	}
	for _, in := range rc.Ingredients {
		if _, ok := r.s.ingredients[in.ID]; !ok {
			return repository.ErrNotFound
		}
	}
	rc.ID = newID()
	rc.CreatedAt = time.Now()
	if rc.Ingredients == nil {
		rc.Ingredients = []entity.Ingredient{}
	}
	r.s.recipes[rc.ID] = cloneRecipe(*rc)
	return nil
}

func (r *RecipeRepository) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rc, ok := r.s.recipes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := cloneRecipe(rc)
	return &cp, nil
}

func (r *RecipeRepository) GetByName(_ context.Context, name string) (*entity.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rc := range r.s.recipes {
		if fold(rc.Name) == fold(name) {
			cp := cloneRecipe(rc)
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *RecipeRepository) List(_ context.Context) ([]entity.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Recipe, 0, len(r.s.recipes))
	for _, rc := range r.s.recipes {
		out = append(out, cloneRecipe(rc))
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *RecipeRepository) UpdateImage(_ context.Context, id, imageURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rc, ok := r.s.recipes[id]
	if !ok {
		return repository.ErrNotFound
	}
	rc.ImageURL = imageURL
	r.s.recipes[id] = rc
	return nil
}

type IngredientRepository struct {
	s *Store
}

func NewIngredientRepository(s *Store) *IngredientRepository {
	return &IngredientRepository{s: s}
}

func (r *IngredientRepository) Create(_ context.Context, in *entity.Ingredient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.ingredients {
		if other.Key() == in.Key() {
			return repository.ErrConflict
		}
	}
	in.ID = newID()
	r.s.ingredients[in.ID] = *in
	return nil
}

func (r *IngredientRepository) GetByName(_ context.Context, name string) (*entity.Ingredient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, in := range r.s.ingredients {
		if in.Key() == fold(name) {
			cp := in
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *IngredientRepository) List(_ context.Context) ([]entity.Ingredient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Ingredient, 0, len(r.s.ingredients))
	for _, in := range r.s.ingredients {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

var (
	_ repository.RecipeRepository     = (*RecipeRepository)(nil)
	_ repository.IngredientRepository = (*IngredientRepository)(nil)
)
