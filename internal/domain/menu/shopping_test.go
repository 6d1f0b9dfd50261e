package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
)

func TestBuildShoppingList_DropsUnnamed(t *testing.T) {
	recipes := []entity.Recipe{
		{Ingredients: []entity.Ingredient{{Name: "Tomato"}}},
		{Ingredients: []entity.Ingredient{{Name: ""}}},
	}

	list := BuildShoppingList(recipes)

	assert.Equal(t, []entity.Ingredient{{Name: "Tomato"}}, list.Items)
	assert.Len(t, list.Skipped, 1)
}

func TestBuildShoppingList_WhitespaceNameIsUnnamed(t *testing.T) {
	list := BuildShoppingList([]entity.Recipe{
		{Ingredients: []entity.Ingredient{{Name: "   ", Calories: 5}}},
	})
	assert.Empty(t, list.Items)
	assert.Len(t, list.Skipped, 1)
}

func TestBuildShoppingList_DedupesByName(t *testing.T) {
	recipes := []entity.Recipe{
		{Ingredients: []entity.Ingredient{
			{ID: "1", Name: "Rice", Calories: 130, Quantity: 100, Unit: "g"},
			{ID: "2", Name: "Egg", Calories: 70, Quantity: 1, Unit: "unit"},
		}},
		{Ingredients: []entity.Ingredient{
			{ID: "3", Name: "rice ", Calories: 260, Quantity: 200, Unit: "g"},
		}},
	}

	list := BuildShoppingList(recipes)

	assert.Len(t, list.Items, 2)
	assert.Equal(t, "Egg", list.Items[0].Name)
	assert.Equal(t, "1", list.Items[1].ID, "first occurrence wins")
}

func TestBuildShoppingList_EmptyMenu(t *testing.T) {
	list := BuildShoppingList(nil)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
	assert.Empty(t, list.Skipped)
}

func TestBuildShoppingList_NeverReturnsUnnamed(t *testing.T) {
	names := []string{"Milk", "", "Oats", " ", "Milk", "Banana", ""}
	var recipes []entity.Recipe
	for _, n := range names {
		recipes = append(recipes, entity.Recipe{Ingredients: []entity.Ingredient{{Name: n}}})
	}

	list := BuildShoppingList(recipes)

	for _, in := range list.Items {
		assert.True(t, in.HasName())
	}
	assert.Len(t, list.Items, 3)
	assert.Len(t, list.Skipped, 3)
}
