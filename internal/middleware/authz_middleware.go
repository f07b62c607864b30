package middleware

import (
	"leavehub/internal/authz"
	"leavehub/internal/shared/apperror"
	"leavehub/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize guards a route with a capability check. The role comes from the
// JWT claims set by AuthMiddleware; the enforcer decides, never an inline
// role comparison.
func Authorize(authorizer authz.Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			e := apperror.ErrUnauthorized
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			c.Abort()
			return
		}

		allowed, err := authorizer.Can(role, resource, action)
		if err != nil {
			e := apperror.ErrInternal
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			e := apperror.ErrForbidden
			response.Error(c, e.HTTPStatus, e.Code, e.Message,
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
