package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fitbalance-api/internal/container"
	handlers "github.com/oksasatya/fitbalance-api/internal/interface/http"
	"github.com/oksasatya/fitbalance-api/internal/interface/middleware"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/profile")
	g.Use(authenticated()...)
	{
		g.GET("", m.Handler.GetProfile)
		g.PUT("", m.Handler.UpdateProfile)

		g.GET("/menu", m.Handler.GetMenu)
		// generation reads the whole catalog, keep it cheap per user
		g.POST("/menu/new", middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil), m.Handler.GenerateMenu)
		g.DELETE("/menu/clear", m.Handler.ClearMenu)

		g.GET("/shopping-list", m.Handler.ShoppingList)
		g.POST("/shopping-list/new", m.Handler.ShoppingList)
	}
}

// authenticated is the chain shared by every signed-in route: session check
// plus softer per-IP and per-user limits.
func authenticated() []gin.HandlerFunc {
	rdb := container.GetRedis()
	return []gin.HandlerFunc{
		middleware.Auth(container.GetSessions(), container.GetJWT()),
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIPAndPath(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	}
}
