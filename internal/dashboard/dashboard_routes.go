package dashboard

import (
	"leavehub/internal/authz"
	"leavehub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authorizer authz.Authorizer,
) {
	dash := r.Group("/dashboard")
	dash.Use(middleware.AuthMiddleware())
	{
		dash.GET("/overview",
			middleware.RateLimitByUser(2, 5),
			middleware.Authorize(authorizer, "dashboard", "read"),
			handler.Overview,
		)
	}
}
