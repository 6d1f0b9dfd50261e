package entity

import "strings"

// Ingredient is a catalog item shared across recipes.
type Ingredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Key normalises the name for lookups and deduplication.
func (i Ingredient) Key() string {
	return strings.ToLower(strings.TrimSpace(i.Name))
}

func (i Ingredient) HasName() bool { return i.Key() != "" }
