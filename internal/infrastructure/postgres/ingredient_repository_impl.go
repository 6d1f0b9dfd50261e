package postgres

import (
	"context"


	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/internal/domain/repository"
)

type IngredientRepository struct {
	pool Pool
}

func NewIngredientRepository(pool Pool) *IngredientRepository {
	return &IngredientRepository{pool: pool}
}

func (r *IngredientRepository) Create(ctx context.Context, in *entity.Ingredient) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ingredients (name, calories, quantity, unit)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, in.Name, in.Calories, in.Quantity, in.Unit)
	return translate(row.Scan(&in.ID))
}

func (r *IngredientRepository) GetByName(ctx context.Context, name string) (*entity.Ingredient, error) {
	in := &entity.Ingredient{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, calories, quantity, unit
		FROM ingredients
		WHERE lower(name) = lower($1)
	`, name).Scan(&in.ID, &in.Name, &in.Calories, &in.Quantity, &in.Unit)
	if err != nil {
		return nil, translate(err)
	}
	return in, nil
}

func (r *IngredientRepository) List(ctx context.Context) ([]entity.Ingredient, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, calories, quantity, unit FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Ingredient{}
	for rows.Next() {
		var in entity.Ingredient
		if err := rows.Scan(&in.ID, &in.Name, &in.Calories, &in.Quantity, &in.Unit); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

var _ repository.IngredientRepository = (*IngredientRepository)(nil)
