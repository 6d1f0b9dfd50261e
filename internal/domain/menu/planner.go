// Package menu builds weekly menus from the recipe catalog and derives
// shopping lists from them. It works on already-loaded data only.
package menu

import (
	"errors"
	"fmt"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
)

// SlotsPerCategory is how many recipes of each meal category go into a menu.
const SlotsPerCategory = 7

// Size is the length of a freshly generated menu.
var Size = SlotsPerCategory * len(entity.MealCategories)

// ErrInsufficientRecipes is returned when a category cannot fill its slots.
var ErrInsufficientRecipes = errors.New("insufficient recipes for meal category")

// InsufficientRecipesError names the category that could not be filled.
type InsufficientRecipesError struct {
	Category entity.MealCategory
	Have     int
	Need     int
}

func (e *InsufficientRecipesError) Error() string {
	return fmt.Sprintf("%s: category %s has %d recipes, need %d", ErrInsufficientRecipes, e.Category, e.Have, e.Need)
}

func (e *InsufficientRecipesError) Unwrap() error { return ErrInsufficientRecipes }

// Shuffler permutes n elements through swap. *math/rand/v2.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Plan picks SlotsPerCategory random recipes of every meal category and
// concatenates them in entity.MealCategories order. Recipes with an unknown
// category are ignored. The catalog slice is not modified.
func Plan(catalog []entity.Recipe, rnd Shuffler) ([]entity.Recipe, error) {
	buckets := make(map[entity.MealCategory][]entity.Recipe, len(entity.MealCategories))
	for _, r := range catalog {
		c, ok := r.MealCategory()
		if !ok {
			continue
		}
		buckets[c] = append(buckets[c], r)
	}

	for _, c := range entity.MealCategories {
		if have := len(buckets[c]); have < SlotsPerCategory {
			return nil, &InsufficientRecipesError{Category: c, Have: have, Need: SlotsPerCategory}
		}
	}

	out := make([]entity.Recipe, 0, Size)
	for _, c := range entity.MealCategories {
		b := buckets[c]
		rnd.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
		out = append(out, b[:SlotsPerCategory]...)
	}
	return out, nil
}

// IDs returns the recipe ids in order.
func IDs(recipes []entity.Recipe) []string {
	ids := make([]string, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	return ids
}
