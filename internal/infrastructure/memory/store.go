// Package memory keeps the repositories in process memory. It backs
// STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
)

// Store is the shared state behind the three repositories. Menus reference
// recipes by id, so all repositories read through the same lock.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*entity.User
	userOrder   []string
	menus       map[string][]string
	ingredients map[string]entity.Ingredient
	recipes     map[string]entity.Recipe
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]*entity.User),
		menus:       make(map[string][]string),
		ingredients: make(map[string]entity.Ingredient),
		recipes:     make(map[string]entity.Recipe),
	}
}

func newID() string { return uuid.NewString() }

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func cloneRecipe(r entity.Recipe) entity.Recipe {
	ings := make([]entity.Ingredient, len(r.Ingredients))
	copy(ings, r.Ingredients)
	r.Ingredients = ings
	return r
}
