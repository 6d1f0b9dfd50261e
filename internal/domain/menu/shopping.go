package menu

import (
	"sort"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
)

// ShoppingList is the set of ingredients a menu needs.
// Skipped holds ingredients dropped because they have no name.
type ShoppingList struct {
	Items   []entity.Ingredient
	Skipped []entity.Ingredient
}

// BuildShoppingList collects the ingredients of every recipe, deduplicated by
// name (trimmed, case-insensitive). The first occurrence of a name wins.
// Items are sorted by name.
func BuildShoppingList(recipes []entity.Recipe) ShoppingList {
	var list ShoppingList
	seen := make(map[string]struct{})
	for _, r := range recipes {
		for _, in := range r.Ingredients {
			if !in.HasName() {
				list.Skipped = append(list.Skipped, in)
				continue
			}
			k := in.Key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			list.Items = append(list.Items, in)
		}
	}
	sort.SliceStable(list.Items, func(i, j int) bool {
		return list.Items[i].Key() < list.Items[j].Key()
	})
	if list.Items == nil {
		list.Items = []entity.Ingredient{}
	}
	return list
}
