package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fitbalance-api/internal/container"
	handlers "github.com/oksasatya/fitbalance-api/internal/interface/http"
	"github.com/oksasatya/fitbalance-api/internal/interface/middleware"
)

// AuthModule: POST /auth/login, /auth/register, /auth/refresh (public, rate limited)
// and POST /auth/logout (session required).
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	rdb := container.GetRedis()

	loginLimiter := middleware.RateLimit(rdb, cfg.LoginRateLimit, time.Minute, middleware.KeyByIPAndPath(), nil)
	registerLimiter := middleware.RateLimit(rdb, cfg.RegisterRateLimit, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/auth")
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/register", registerLimiter, m.Handler.Register)
	g.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	g.POST("/logout", middleware.Auth(container.GetSessions(), container.GetJWT()), m.Handler.Logout)
}
