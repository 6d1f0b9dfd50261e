package container

import (
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/config"
	"github.com/oksasatya/fitbalance-api/internal/domain/repository"
	"github.com/oksasatya/fitbalance-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/fitbalance-api/internal/infrastructure/postgres"
	"github.com/oksasatya/fitbalance-api/pkg/helpers"
)

// app-level container to share constructed components across packages.
// The router auto-wires modules from these singletons.

// Repositories groups the stores picked by STORAGE_DRIVER.
type Repositories struct {
	Users       repository.UserRepository
	Recipes     repository.RecipeRepository
	Ingredients repository.IngredientRepository
}

// NewPostgresRepositories backs every store with the pool.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:       pginfra.NewUserRepository(pool),
		Recipes:     pginfra.NewRecipeRepository(pool),
		Ingredients: pginfra.NewIngredientRepository(pool),
	}
}

// NewMemoryRepositories shares one in-process store across every repository.
func NewMemoryRepositories() Repositories {
	s := memory.NewStore()
	return Repositories{
		Users:       memory.NewUserRepository(s),
		Recipes:     memory.NewRecipeRepository(s),
		Ingredients: memory.NewIngredientRepository(s),
	}
}

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	sessions    *helpers.SessionStore
	repos       Repositories

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
	images    *helpers.GCSUploader
)

func SetConfig(c *config.Config)       { cfg = c }
func GetConfig() *config.Config        { return cfg }
func SetLogger(l *logrus.Logger)       { logger = l }
func GetLogger() *logrus.Logger        { return logger }
func SetPGPool(p *pgxpool.Pool)        { pgPool = p }
func GetPGPool() *pgxpool.Pool         { return pgPool }
func SetRepositories(r Repositories)   { repos = r }
func GetRepositories() Repositories    { return repos }
func SetJWT(m *helpers.JWTManager)     { jwtManager = m }
func SetImages(u *helpers.GCSUploader) { images = u }
func GetImages() *helpers.GCSUploader  { return images }
func SetES(c *elasticsearch.Client)    { esClient = c }
func GetES() *elasticsearch.Client     { return esClient }

// SetRedis also builds the session store on the client. Call it after SetConfig.
func SetRedis(r *redis.Client) {
	redisClient = r
	var ttl time.Duration
	if cfg != nil {
		ttl = cfg.SessionTTL
	}
	sessions = helpers.NewSessionStore(r, ttl)
}

func GetSessions() *helpers.SessionStore { return sessions }
func GetRedis() *redis.Client            { return redisClient }

func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
