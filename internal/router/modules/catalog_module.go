package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	handlers "github.com/oksasatya/fitbalance-api/internal/interface/http"
	"github.com/oksasatya/fitbalance-api/internal/interface/middleware"
)

// CatalogModule: reads need a session, writes need the admin role.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	admin := middleware.RequireRole(entity.RoleAdmin)

	g := rg.Group("")
	g.Use(authenticated()...)
	{
		g.GET("/ingredients", m.Handler.ListIngredients)
		g.POST("/ingredients/new", admin, m.Handler.CreateIngredient)

		g.GET("/recipes", m.Handler.ListRecipes)
		g.GET("/recipes/search", m.Handler.SearchRecipes)
		g.POST("/recipes/new", admin, m.Handler.CreateRecipe)
		g.POST("/recipes/:id/image", admin, m.Handler.UploadImage)
	}
}
