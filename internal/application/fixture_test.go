package application

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/internal/infrastructure/memory"
	"github.com/oksasatya/fitbalance-api/pkg/helpers"
	"github.com/oksasatya/fitbalance-api/pkg/mailer"
)

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

type fixture struct {
	ctx      context.Context
	mr       *miniredis.Miniredis
	sessions *helpers.SessionStore
	jobs     *recordingPublisher

	users       *memory.UserRepository
	recipes     *memory.RecipeRepository
	ingredients *memory.IngredientRepository

	auth    *AuthService
	user    *UserService
	menu    *MenuService
	catalog *CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := memory.NewStore()
	f := &fixture{
		ctx:         context.Background(),
		mr:          mr,
		sessions:    helpers.NewSessionStore(rdb, time.Hour),
		jobs:        &recordingPublisher{},
		users:       memory.NewUserRepository(store),
		recipes:     memory.NewRecipeRepository(store),
		ingredients: memory.NewIngredientRepository(store),
	}
	logger := helpers.NewNopLogger()
	hasher := helpers.NewBcrypt(bcrypt.MinCost)
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)

	f.auth = NewAuthService(f.users, hasher, jwt, f.sessions, f.jobs, logger, "fitbalance")
	f.user = NewUserService(f.users, hasher, f.sessions, logger)
	f.menu = NewMenuService(f.users, f.recipes, f.jobs, logger)
	f.menu.Seed = func() (uint64, uint64) { return 1, 2 }
	f.catalog = NewCatalogService(f.ingredients, f.recipes, nil, "", nil, logger)
	return f
}

func (f *fixture) register(t *testing.T, email string) *entity.User {
	t.Helper()
	u, err := f.auth.Register(f.ctx, RegisterInput{Email: email, Password: "password123"})
	require.NoError(t, err)
	return u
}

// seedCatalog creates perCategory recipes for every meal category, each with
// one ingredient of its own plus a shared one.
func (f *fixture) seedCatalog(t *testing.T, perCategory int) {
	t.Helper()
	shared, err := f.catalog.CreateIngredient(f.ctx, entity.Ingredient{Name: "Aceite", Calories: 90, Quantity: 10, Unit: "ml"})
	require.NoError(t, err)
	for _, c := range entity.MealCategories {
		for i := 0; i < perCategory; i++ {
			name := fmt.Sprintf("%s-%d", c, i)
			_, err := f.catalog.CreateIngredient(f.ctx, entity.Ingredient{Name: "ing " + name, Calories: 10})
			require.NoError(t, err)
			_, err = f.catalog.CreateRecipe(f.ctx, CreateRecipeInput{
				Name:        name,
				Category:    string(c),
				Ingredients: []string{"ing " + name, shared.Name},
			})
			require.NoError(t, err)
		}
	}
}

type fakeImages struct {
	path, contentType string
	body              []byte
}

func (f *fakeImages) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.path, f.contentType, f.body = objectPath, contentType, b
	return helpers.PublicURL("bucket", objectPath), nil
}
