package menu

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
)

func catalog(perCategory int, categories ...entity.MealCategory) []entity.Recipe {
	var out []entity.Recipe
	for _, c := range categories {
		for i := 0; i < perCategory; i++ {
			name := fmt.Sprintf("%s-%d", c, i)
			out = append(out, entity.Recipe{ID: name, Name: name, Category: string(c)})
		}
	}
	return out
}

func countByCategory(recipes []entity.Recipe) map[entity.MealCategory]int {
	counts := map[entity.MealCategory]int{}
	for _, r := range recipes {
		c, _ := r.MealCategory()
		counts[c]++
	}
	return counts
}

func TestPlan_SevenPerCategory(t *testing.T) {
	cat := catalog(7, entity.MealCategories...)

	got, err := Plan(cat, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Len(t, got, 35)

	counts := countByCategory(got)
	for _, c := range entity.MealCategories {
		assert.Equal(t, 7, counts[c], "category %s", c)
	}
}

func TestPlan_OrderFollowsCategories(t *testing.T) {
	cat := catalog(10, entity.MealCategories...)

	got, err := Plan(cat, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	for i, r := range got {
		want := entity.MealCategories[i/SlotsPerCategory]
		c, ok := r.MealCategory()
		require.True(t, ok)
		assert.Equal(t, want, c, "slot %d", i)
	}
}

func TestPlan_IgnoresUnknownCategories(t *testing.T) {
	cat := catalog(7, entity.MealCategories...)
	cat = append(cat, catalog(20, "Brunch")...)

	got, err := Plan(cat, rand.New(rand.NewPCG(5, 6)))
	require.NoError(t, err)
	assert.Len(t, got, 35)
	for _, r := range got {
		assert.NotEqual(t, "Brunch", r.Category)
	}
}

func TestPlan_CategoryMatchIgnoresCase(t *testing.T) {
	cat := catalog(7, entity.CategoryBreakfast, entity.CategoryLunch, entity.CategoryMidday, entity.CategorySnack)
	for i := 0; i < 7; i++ {
		cat = append(cat, entity.Recipe{ID: fmt.Sprintf("c%d", i), Category: "CENA"})
	}

	got, err := Plan(cat, rand.New(rand.NewPCG(7, 8)))
	require.NoError(t, err)
	assert.Equal(t, 7, countByCategory(got)[entity.CategoryDinner])
}

func TestPlan_InsufficientRecipes(t *testing.T) {
	cat := catalog(7, entity.CategoryBreakfast, entity.CategoryLunch, entity.CategoryMidday, entity.CategorySnack)
	cat = append(cat, catalog(6, entity.CategoryDinner)...)

	got, err := Plan(cat, rand.New(rand.NewPCG(1, 1)))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrInsufficientRecipes))

	var ire *InsufficientRecipesError
	require.True(t, errors.As(err, &ire))
	assert.Equal(t, entity.CategoryDinner, ire.Category)
	assert.Equal(t, 6, ire.Have)
	assert.Equal(t, 7, ire.Need)
}

func TestPlan_EmptyCatalog(t *testing.T) {
	_, err := Plan(nil, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ErrInsufficientRecipes)
}

func TestPlan_NoDuplicatesWithinMenu(t *testing.T) {
	cat := catalog(12, entity.MealCategories...)

	got, err := Plan(cat, rand.New(rand.NewPCG(9, 10)))
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, r := range got {
		assert.False(t, seen[r.ID], "duplicate %s", r.ID)
		seen[r.ID] = true
	}
}

func TestPlan_SameSeedSameMenu(t *testing.T) {
	cat := catalog(15, entity.MealCategories...)

	a, err := Plan(cat, rand.New(rand.NewPCG(42, 42)))
	require.NoError(t, err)
	b, err := Plan(cat, rand.New(rand.NewPCG(42, 42)))
	require.NoError(t, err)
	assert.Equal(t, IDs(a), IDs(b))
}

func TestPlan_RepeatedCallsKeepInvariant(t *testing.T) {
	cat := catalog(15, entity.MealCategories...)
	rnd := rand.New(rand.NewPCG(11, 12))

	for i := 0; i < 20; i++ {
		got, err := Plan(cat, rnd)
		require.NoError(t, err)
		require.Len(t, got, Size)
		for _, c := range entity.MealCategories {
			assert.Equal(t, SlotsPerCategory, countByCategory(got)[c])
		}
	}
}

func TestPlan_DoesNotReorderCatalog(t *testing.T) {
	cat := catalog(9, entity.MealCategories...)
	before := IDs(cat)

	_, err := Plan(cat, rand.New(rand.NewPCG(13, 14)))
	require.NoError(t, err)
	assert.Equal(t, before, IDs(cat))
}
