package application

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/internal/domain/menu"
	repo "github.com/oksasatya/fitbalance-api/internal/domain/repository"
	"github.com/oksasatya/fitbalance-api/pkg/mailer"
	"github.com/oksasatya/fitbalance-api/pkg/mailer/templates"
)

type MenuService struct {
	Users   repo.UserRepository
	Recipes repo.RecipeRepository
	Jobs    JobPublisher
	Logger  *logrus.Logger

	// Seed returns the PCG seed for one generation. Tests fix it.
	Seed func() (uint64, uint64)
}

func NewMenuService(users repo.UserRepository, recipes repo.RecipeRepository, jobs JobPublisher, logger *logrus.Logger) *MenuService {
	return &MenuService{
		Users:   users,
		Recipes: recipes,
		Jobs:    jobs,
		Logger:  logger,
		Seed:    func() (uint64, uint64) { return rand.Uint64(), rand.Uint64() },
	}
}

// Generate replaces the user's menu with a fresh random plan. On failure the
// stored menu is left as it was.
func (s *MenuService) Generate(ctx context.Context, userID string) ([]entity.Recipe, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	catalog, err := s.Recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	plan, err := menu.Plan(catalog, rand.New(rand.NewPCG(s.Seed())))
	if err != nil {
		return nil, err
	}
	if err := s.Users.ReplaceMenu(ctx, u.ID, menu.IDs(plan)); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	list := s.shoppingList(u.ID, plan)
	items := make([]templates.ShoppingItem, len(list.Items))
	for i, in := range list.Items {
		items[i] = templates.ShoppingItem{Name: in.Name, Quantity: in.Quantity, Unit: in.Unit}
	}
	publish(ctx, s.Jobs, s.Logger, mailer.EmailJob{
		To:       u.Email,
		Template: templates.MenuReady,
		Data: map[string]any{
			"Username": u.Username,
			"MenuSize": len(plan),
			"Items":    items,
		},
	})
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "recipes": len(plan)}).Info("menu generated")
	return plan, nil
}

// Get returns the stored menu in order, empty when none was generated.
func (s *MenuService) Get(ctx context.Context, userID string) ([]entity.Recipe, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return s.Users.GetMenu(ctx, userID)
}

func (s *MenuService) Clear(ctx context.Context, userID string) error {
	return notFound(s.Users.ReplaceMenu(ctx, userID, nil), ErrUserNotFound)
}

// ShoppingList derives the ingredient set of the stored menu. Nothing is persisted.
func (s *MenuService) ShoppingList(ctx context.Context, userID string) ([]entity.Ingredient, error) {
	recipes, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.shoppingList(userID, recipes).Items, nil
}

func (s *MenuService) shoppingList(userID string, recipes []entity.Recipe) menu.ShoppingList {
	list := menu.BuildShoppingList(recipes)
	if n := len(list.Skipped); n > 0 {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "skipped": n}).Debug("ingredients without name left out of shopping list")
	}
	return list
}
