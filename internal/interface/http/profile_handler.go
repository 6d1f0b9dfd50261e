package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/internal/application"
	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/internal/domain/menu"
	"github.com/oksasatya/fitbalance-api/internal/interface/middleware"
	"github.com/oksasatya/fitbalance-api/pkg/response"
)

// ProfileHandler serves the signed-in user's own account, menu and shopping list.
type ProfileHandler struct {
	Users  *application.UserService
	Menus  *application.MenuService
	Logger *logrus.Logger
}

func NewProfileHandler(users *application.UserService, menus *application.MenuService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Users: users, Menus: menus, Logger: logger}
}

type profileResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func toProfile(u *entity.User) profileResponse {
	return profileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"omitempty,max=64"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,pwd"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	u, err := h.Users.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(u), "profile", nil)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserID), application.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(u), "profile updated", nil)
}

func (h *ProfileHandler) GetMenu(c *gin.Context) {
	recipes, err := h.Menus.Get(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, recipes, "menu", gin.H{"count": len(recipes)})
}

func (h *ProfileHandler) GenerateMenu(c *gin.Context) {
	recipes, err := h.Menus.Generate(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		if errors.Is(err, menu.ErrInsufficientRecipes) {
			counters.Add(metricMenuShortfalls, 1)
		}
		writeError(c, h.Logger, err)
		return
	}
	counters.Add(metricMenusGenerated, 1)
	response.Success(c, http.StatusCreated, recipes, "menu generated", gin.H{"count": len(recipes)})
}

func (h *ProfileHandler) ClearMenu(c *gin.Context) {
	if err := h.Menus.Clear(c.Request.Context(), c.GetString(middleware.CtxUserID)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Menu cleared", "menu cleared", nil)
}

// ShoppingList answers both GET and POST; the list is derived on every call.
func (h *ProfileHandler) ShoppingList(c *gin.Context) {
	items, err := h.Menus.ShoppingList(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	counters.Add(metricShoppingLists, 1)
	response.Success(c, http.StatusOK, items, "shopping list", gin.H{"count": len(items)})
}
