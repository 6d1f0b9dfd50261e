package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fitbalance-api/internal/application"
	"github.com/oksasatya/fitbalance-api/internal/container"
	handlers "github.com/oksasatya/fitbalance-api/internal/interface/http"
	"github.com/oksasatya/fitbalance-api/internal/interface/middleware"
	"github.com/oksasatya/fitbalance-api/internal/router/modules"
	"github.com/oksasatya/fitbalance-api/pkg/helpers"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Admin   *handlers.AdminHandler
	Catalog *handlers.CatalogHandler
}

// jobPublisher keeps a nil *RabbitPublisher from turning into a non-nil interface.
func jobPublisher() application.JobPublisher {
	cfg := container.GetConfig()
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		return pub
	}
	return nil
}

func imageStore() application.ImageStore {
	if img := container.GetImages(); img != nil {
		return *img
	}
	return nil
}

func buildHandlers() Handlers {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repos := container.GetRepositories()
	hasher := helpers.NewBcrypt(cfg.BcryptCost)
	jobs := jobPublisher()

	auth := application.NewAuthService(repos.Users, hasher, container.GetJWT(), container.GetSessions(), jobs, logger, cfg.AppName)
	users := application.NewUserService(repos.Users, hasher, container.GetSessions(), logger)
	menus := application.NewMenuService(repos.Users, repos.Recipes, jobs, logger)
	catalog := application.NewCatalogService(repos.Ingredients, repos.Recipes, container.GetES(), cfg.ESRecipesIndex, imageStore(), logger)

	return Handlers{
		Auth:    handlers.NewAuthHandler(auth, logger, cfg.CookieDomain, cfg.CookieSecure),
		Profile: handlers.NewProfileHandler(users, menus, logger),
		Admin:   handlers.NewAdminHandler(users, logger),
		Catalog: handlers.NewCatalogHandler(catalog, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	h := buildHandlers()
	r.Add(modules.NewAuthModule(h.Auth))
	r.Add(modules.NewProfileModule(h.Profile))
	r.Add(modules.NewCatalogModule(h.Catalog))
	r.Add(modules.NewAdminModule(h.Admin))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

// NewEngine builds the Gin engine with global middleware and every module.
// The container must be populated first.
func NewEngine() *gin.Engine {
	cfg := container.GetConfig()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := NewRegistry(r, cfg.APIPrefix)
	InitModules(reg)
	reg.RegisterAll()
	return r
}
