package entity

import (
	"strings"
	"time"
)

// MealCategory is the time-of-day slot a recipe belongs to.
type MealCategory string

const (
	CategoryBreakfast MealCategory = "Desayuno"
	CategoryLunch     MealCategory = "Almuerzo"
	CategoryMidday    MealCategory = "Comida"
	CategorySnack     MealCategory = "Merienda"
	CategoryDinner    MealCategory = "Cena"
)

// MealCategories lists the categories in menu order.
var MealCategories = []MealCategory{
	CategoryBreakfast,
	CategoryLunch,
	CategoryMidday,
	CategorySnack,
	CategoryDinner,
}

// ParseMealCategory matches s against the known labels ignoring case.
func ParseMealCategory(s string) (MealCategory, bool) {
	s = strings.TrimSpace(s)
	for _, c := range MealCategories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

type Recipe struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Category      string       `json:"category"`
	TotalCalories float64      `json:"total_calories"`
	ImageURL      string       `json:"image_url,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	CreatedAt     time.Time    `json:"created_at"`
}

// MealCategory reports the normalised category, false when it is not one of the five labels.
func (r Recipe) MealCategory() (MealCategory, bool) {
	return ParseMealCategory(r.Category)
}

// SumCalories adds up the calories of the recipe's ingredients.
func (r Recipe) SumCalories() float64 {
	var total float64
	for _, in := range r.Ingredients {
		total += in.Calories
	}
	return total
}
