package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/config"
	"github.com/oksasatya/fitbalance-api/internal/application"
	"github.com/oksasatya/fitbalance-api/internal/container"
	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	pginfra "github.com/oksasatya/fitbalance-api/internal/infrastructure/postgres"
	"github.com/oksasatya/fitbalance-api/pkg/helpers"
)

type seedRecipe struct {
	name        string
	category    entity.MealCategory
	ingredients []string
}

var ingredients = []entity.Ingredient{
	{Name: "Avena", Calories: 150, Quantity: 40, Unit: "g"},
	{Name: "Leche", Calories: 64, Quantity: 200, Unit: "ml"},
	{Name: "Plátano", Calories: 105, Quantity: 1, Unit: "u"},
	{Name: "Huevo", Calories: 78, Quantity: 1, Unit: "u"},
	{Name: "Pan integral", Calories: 80, Quantity: 1, Unit: "rebanada"},
	{Name: "Tomate", Calories: 22, Quantity: 1, Unit: "u"},
	{Name: "Aceite de oliva", Calories: 119, Quantity: 10, Unit: "ml"},
	{Name: "Yogur natural", Calories: 61, Quantity: 125, Unit: "g"},
	{Name: "Nueces", Calories: 185, Quantity: 30, Unit: "g"},
	{Name: "Manzana", Calories: 95, Quantity: 1, Unit: "u"},
	{Name: "Arroz", Calories: 205, Quantity: 75, Unit: "g"},
	{Name: "Pollo", Calories: 165, Quantity: 150, Unit: "g"},
	{Name: "Lentejas", Calories: 230, Quantity: 80, Unit: "g"},
	{Name: "Merluza", Calories: 90, Quantity: 150, Unit: "g"},
	{Name: "Espinacas", Calories: 23, Quantity: 100, Unit: "g"},
	{Name: "Patata", Calories: 110, Quantity: 150, Unit: "g"},
	{Name: "Queso fresco", Calories: 98, Quantity: 60, Unit: "g"},
	{Name: "Pasta", Calories: 220, Quantity: 80, Unit: "g"},
	{Name: "Calabacín", Calories: 17, Quantity: 150, Unit: "g"},
	{Name: "Salmón", Calories: 208, Quantity: 120, Unit: "g"},
}

var recipes = []seedRecipe{
	{"Porridge de avena", entity.CategoryBreakfast, []string{"Avena", "Leche", "Plátano"}},
	{"Tostada con tomate", entity.CategoryBreakfast, []string{"Pan integral", "Tomate", "Aceite de oliva"}},
	{"Huevos revueltos", entity.CategoryBreakfast, []string{"Huevo", "Pan integral"}},
	{"Yogur con nueces", entity.CategoryBreakfast, []string{"Yogur natural", "Nueces"}},
	{"Batido de plátano", entity.CategoryBreakfast, []string{"Leche", "Plátano", "Avena"}},
	{"Tostada con queso", entity.CategoryBreakfast, []string{"Pan integral", "Queso fresco"}},
	{"Manzana con yogur", entity.CategoryBreakfast, []string{"Manzana", "Yogur natural"}},

	{"Bocadillo de pollo", entity.CategoryLunch, []string{"Pan integral", "Pollo", "Tomate"}},
	{"Fruta y nueces", entity.CategoryLunch, []string{"Manzana", "Nueces"}},
	{"Yogur con avena", entity.CategoryLunch, []string{"Yogur natural", "Avena"}},
	{"Tostada de queso y tomate", entity.CategoryLunch, []string{"Pan integral", "Queso fresco", "Tomate"}},
	{"Huevo duro", entity.CategoryLunch, []string{"Huevo"}},
	{"Plátano", entity.CategoryLunch, []string{"Plátano"}},
	{"Batido de leche", entity.CategoryLunch, []string{"Leche", "Plátano"}},

	{"Arroz con pollo", entity.CategoryMidday, []string{"Arroz", "Pollo", "Aceite de oliva"}},
	{"Lentejas estofadas", entity.CategoryMidday, []string{"Lentejas", "Patata", "Tomate"}},
	{"Pasta con tomate", entity.CategoryMidday, []string{"Pasta", "Tomate", "Aceite de oliva"}},
	{"Salmón con patata", entity.CategoryMidday, []string{"Salmón", "Patata"}},
	{"Pollo con espinacas", entity.CategoryMidday, []string{"Pollo", "Espinacas"}},
	{"Merluza con arroz", entity.CategoryMidday, []string{"Merluza", "Arroz"}},
	{"Pasta con calabacín", entity.CategoryMidday, []string{"Pasta", "Calabacín", "Queso fresco"}},

	{"Yogur natural", entity.CategorySnack, []string{"Yogur natural"}},
	{"Manzana", entity.CategorySnack, []string{"Manzana"}},
	{"Puñado de nueces", entity.CategorySnack, []string{"Nueces"}},
	{"Tostada con aceite", entity.CategorySnack, []string{"Pan integral", "Aceite de oliva"}},
	{"Queso fresco con tomate", entity.CategorySnack, []string{"Queso fresco", "Tomate"}},
	{"Leche con avena", entity.CategorySnack, []string{"Leche", "Avena"}},
	{"Plátano y yogur", entity.CategorySnack, []string{"Plátano", "Yogur natural"}},

	{"Tortilla de espinacas", entity.CategoryDinner, []string{"Huevo", "Espinacas"}},
	{"Merluza al horno", entity.CategoryDinner, []string{"Merluza", "Patata", "Aceite de oliva"}},
	{"Crema de calabacín", entity.CategoryDinner, []string{"Calabacín", "Patata"}},
	{"Salmón a la plancha", entity.CategoryDinner, []string{"Salmón", "Espinacas"}},
	{"Ensalada de pollo", entity.CategoryDinner, []string{"Pollo", "Tomate", "Aceite de oliva"}},
	{"Huevos con patata", entity.CategoryDinner, []string{"Huevo", "Patata"}},
	{"Queso con tomate", entity.CategoryDinner, []string{"Queso fresco", "Tomate"}},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	repos := container.NewPostgresRepositories(pool)

	if err := seedAdmin(ctx, repos, cfg, logger); err != nil {
		logger.Fatalf("seed admin: %v", err)
	}

	catalog := application.NewCatalogService(repos.Ingredients, repos.Recipes, nil, "", nil, logger)
	for _, in := range ingredients {
		if _, err := catalog.CreateIngredient(ctx, in); err != nil && !errors.Is(err, application.ErrIngredientExists) {
			logger.Fatalf("seed ingredient %s: %v", in.Name, err)
		}
	}
	for _, r := range recipes {
		_, err := catalog.CreateRecipe(ctx, application.CreateRecipeInput{
			Name:        r.name,
			Category:    string(r.category),
			Ingredients: r.ingredients,
		})
		if err != nil && !errors.Is(err, application.ErrRecipeExists) {
			logger.Fatalf("seed recipe %s: %v", r.name, err)
		}
	}
	logger.WithFields(logrus.Fields{"ingredients": len(ingredients), "recipes": len(recipes)}).Info("catalog seeded")
}

// seedAdmin registers the admin account if missing and makes sure it has the admin role.
func seedAdmin(ctx context.Context, repos container.Repositories, cfg *config.Config, logger *logrus.Logger) error {
	const (
		email    = "admin@fitbalance.local"
		password = "password123"
	)
	auth := application.NewAuthService(repos.Users, helpers.NewBcrypt(cfg.BcryptCost), nil, nil, nil, logger, cfg.AppName)
	if _, err := auth.Register(ctx, application.RegisterInput{Email: email, Password: password, Username: "admin"}); err != nil && !errors.Is(err, application.ErrEmailTaken) {
		return err
	}
	users := application.NewUserService(repos.Users, nil, nil, logger)
	if err := users.ChangeRole(ctx, email, entity.RoleAdmin); err != nil {
		return err
	}
	fmt.Printf("seeded admin: email=%s password=%s\n", email, password)
	return nil
}
