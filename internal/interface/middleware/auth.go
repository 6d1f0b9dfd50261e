package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/pkg/helpers"
	"github.com/oksasatya/fitbalance-api/pkg/response"
)

// Gin context keys set by Auth.
const (
	CtxUserID    = "userID"
	CtxUserName  = "userName"
	CtxUserEmail = "userEmail"
	CtxUserRole  = "userRole"
)

// Auth validates the access token and requires the live Redis session to
// carry the same session id. The token is read from the access cookie or an
// "Authorization: Bearer" header. Role comes from the session, so role
// changes apply without a new login.
func Auth(sessions *helpers.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, helpers.ErrNoSession) {
				response.Abort(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
			response.Abort(c, http.StatusServiceUnavailable, "session store unavailable", nil)
			return
		}
		if sess.SID != claims.SessionID {
			response.Abort(c, http.StatusUnauthorized, "session expired", nil)
			return
		}
		role, err := entity.ParseRole(sess.Role)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid session", nil)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserName, sess.Username)
		c.Set(CtxUserEmail, sess.Email)
		c.Set(CtxUserRole, role)
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, ok := c.Get(CtxUserRole); !ok || got.(entity.Role) != role {
			response.Abort(c, http.StatusForbidden, "insufficient role", nil)
			return
		}
		c.Next()
	}
}

func accessToken(c *gin.Context) string {
	if token, err := c.Cookie(helpers.AccessCookie); err == nil && token != "" {
		return token
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
