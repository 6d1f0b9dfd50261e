package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/internal/domain/repository"
)

const (
	recipeColumns        = `id, name, category, total_calories, image_url, created_at`
	recipeColumnsAliased = `r.id, r.name, r.category, r.total_calories, r.image_url, r.created_at`
)

type RecipeRepository struct {
	pool Pool
}

func NewRecipeRepository(pool Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

func scanRecipe(row pgx.Row) (entity.Recipe, error) {
	var rc entity.Recipe
	err := row.Scan(&rc.ID, &rc.Name, &rc.Category, &rc.TotalCalories, &rc.ImageURL, &rc.CreatedAt)
	return rc, translate(err)
}

func collectRecipes(rows pgx.Rows) ([]entity.Recipe, error) {
	defer rows.Close()
	out := []entity.Recipe{}
	for rows.Next() {
		rc, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// loadIngredients fills Ingredients for every recipe with one query, keeping recipe order.
func loadIngredients(ctx context.Context, db DBTX, recipes []entity.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(recipes))
	for _, rc := range recipes {
		keys = append(keys, rc.ID)
	}
	ids, err := parseIDs(keys...)
	if err != nil {
		return err
	}
	rows, err := db.Query(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.calories, i.quantity, i.unit
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY ri.recipe_id, ri.position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byRecipe := make(map[string][]entity.Ingredient, len(recipes))
	for rows.Next() {
		var recipeID string
		var in entity.Ingredient
		if err := rows.Scan(&recipeID, &in.ID, &in.Name, &in.Calories, &in.Quantity, &in.Unit); err != nil {
			return err
		}
		byRecipe[recipeID] = append(byRecipe[recipeID], in)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range recipes {
		recipes[i].Ingredients = byRecipe[recipes[i].ID]
		if recipes[i].Ingredients == nil {
			recipes[i].Ingredients = []entity.Ingredient{}
		}
	}
	return nil
}

// Create inserts the recipe and its ingredient links. Ingredient ids must already exist.
func (r *RecipeRepository) Create(ctx context.Context, rc *entity.Recipe) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO recipes (name, category, total_calories, image_url)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, rc.Name, rc.Category, rc.TotalCalories, rc.ImageURL)
		if err := row.Scan(&rc.ID, &rc.CreatedAt); err != nil {
			return translate(err)
		}
		if len(rc.Ingredients) == 0 {
			return nil
		}
		keys := []string{rc.ID}
		for _, in := range rc.Ingredients {
			keys = append(keys, in.ID)
		}
		ids, err := parseIDs(keys...)
		if err != nil {
			return err
		}
		recipeID, ingredientIDs := ids[0], ids[1:]
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"recipe_ingredients"},
			[]string{"recipe_id", "position", "ingredient_id"},
			positionedRows(recipeID, ingredientIDs),
		)
		return translate(err)
	})
}

func (r *RecipeRepository) getOne(ctx context.Context, where string, arg any) (*entity.Recipe, error) {
	rc, err := scanRecipe(r.pool.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE `+where, arg))
	if err != nil {
		return nil, err
	}
	list := []entity.Recipe{rc}
	if err := loadIngredients(ctx, r.pool, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *RecipeRepository) GetByName(ctx context.Context, name string) (*entity.Recipe, error) {
	return r.getOne(ctx, `lower(name) = lower($1)`, name)
}

func (r *RecipeRepository) List(ctx context.Context) ([]entity.Recipe, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, err
	}
	if err := loadIngredients(ctx, r.pool, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *RecipeRepository) UpdateImage(ctx context.Context, id, imageURL string) error {
	res, err := r.pool.Exec(ctx, `UPDATE recipes SET image_url = $1 WHERE id = $2`, imageURL, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
