package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	handlers "github.com/oksasatya/fitbalance-api/internal/interface/http"
	"github.com/oksasatya/fitbalance-api/internal/interface/middleware"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
}

func NewAdminModule(h *handlers.AdminHandler) *AdminModule {
	return &AdminModule{Handler: h}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/admin")
	g.Use(authenticated()...)
	g.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		g.GET("/users", m.Handler.ListUsers)
		g.DELETE("/users/:id", m.Handler.DeleteUser)
		g.DELETE("/users", m.Handler.DeleteAllUsers)
		g.PUT("/upgrade-role/:email", m.Handler.UpgradeRole)
		g.PUT("/downgrade-role/:email", m.Handler.DowngradeRole)
	}
}
