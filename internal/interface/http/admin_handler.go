package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitbalance-api/internal/application"
	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/pkg/response"
)

type AdminHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewAdminHandler(users *application.UserService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Users: users, Logger: logger}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]profileResponse, len(users))
	for i := range users {
		out[i] = toProfile(&users[i])
	}
	response.Success(c, http.StatusOK, out, "users", gin.H{"count": len(out)})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Users.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) DeleteAllUsers(c *gin.Context) {
	if err := h.Users.DeleteAll(c.Request.Context()); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) UpgradeRole(c *gin.Context)   { h.setRole(c, entity.RoleAdmin) }
func (h *AdminHandler) DowngradeRole(c *gin.Context) { h.setRole(c, entity.RoleUser) }

func (h *AdminHandler) setRole(c *gin.Context, role entity.Role) {
	if err := h.Users.ChangeRole(c.Request.Context(), c.Param("email"), role); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
