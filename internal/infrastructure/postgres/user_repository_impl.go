package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/internal/domain/repository"
)

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

type UserRepository struct {
	pool Pool
}

func NewUserRepository(pool Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	r, err := entity.ParseRole(role)
	if err != nil {
		return nil, err
	}
	u.Role = r
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Password, u.Role.String())

	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, username))
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, role = $4, updated_at = $5
		WHERE id = $6
	`, u.Username, u.Email, u.Password, u.Role.String(), u.UpdatedAt, u.ID)
	if err != nil {
		return translate(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users`)
	return err
}

func (r *UserRepository) GetMenu(ctx context.Context, userID string) ([]entity.Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recipeColumnsAliased+`
		FROM user_menus m
		JOIN recipes r ON r.id = m.recipe_id
		WHERE m.user_id = $1
		ORDER BY m.position
	`, userID)
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

// ReplaceMenu deletes the stored menu and copies the new one in a single transaction.
func (r *UserRepository) ReplaceMenu(ctx context.Context, userID string, recipeIDs []string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		// lock the owner row so concurrent replacements apply one after the other
		var id string
		if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id); err != nil {
			return translate(err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_menus WHERE user_id = $1`, userID); err != nil {
			return err
		}
		if len(recipeIDs) == 0 {
			return nil
		}
		ids, err := parseIDs(append([]string{userID}, recipeIDs...)...)
		if err != nil {
			return err
		}
		owner, recipes := ids[0], ids[1:]
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"user_menus"},
			[]string{"user_id", "position", "recipe_id"},
			positionedRows(owner, recipes),
		)
		return translate(err)
	})
}

var _ repository.UserRepository = (*UserRepository)(nil)
