package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/websopen/web-valencio/internal/response"
	"github.com/websopen/web-valencio/internal/service"
)

// ContextKeyRole is the Gin context key for the verified session role.
const ContextKeyRole = "session_role"

// RequireAdminSession gates mutating endpoints behind the signed session
// cookie. The cookie value is verified on every request; possession of a
// valid admin_active value is the sole authorization proof.
func RequireAdminSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(service.CookieName)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}

		roleValue, ok := authService.VerifySessionValue(cookie)
		if !ok || roleValue != service.CookieValueAdmin {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}

		c.Set(ContextKeyRole, roleValue)
		c.Next()
	}
}
