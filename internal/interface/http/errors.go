package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/fitbalance-api/internal/application"
	"github.com/oksasatya/fitbalance-api/internal/domain/menu"
	"github.com/oksasatya/fitbalance-api/pkg/response"
	"github.com/oksasatya/fitbalance-api/pkg/validation"
)

// writeError maps service errors onto HTTP statuses. Anything unknown is
// logged and reported as 500 without details.
func writeError(c *gin.Context, logger logrus.FieldLogger, err error) {
	var short *menu.InsufficientRecipesError
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrUsernameTaken),
		errors.Is(err, application.ErrIngredientExists),
		errors.Is(err, application.ErrRecipeExists):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrRecipeNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrIngredientNotFound),
		errors.Is(err, application.ErrUnknownCategory),
		errors.Is(err, bcrypt.ErrPasswordTooLong):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &short):
		response.Error[any](c, http.StatusUnprocessableEntity, "not enough recipes to build a menu", gin.H{
			"category": short.Category,
			"have":     short.Have,
			"need":     short.Need,
		})
	case errors.Is(err, application.ErrStorageNotConfigured):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

// bindJSON binds and validates the body, answering 400 itself on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}
