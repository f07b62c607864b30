package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authorizer, "employee", "list"),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.Authorize(authorizer, "employee", "list"),
			handler.GetOptions,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authorizer, "employee", "read"),
			handler.GetById,
		)

		employees.GET("/:id/leave-balances",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(authorizer, "balance", "read"),
			handler.GetLeaveBalances,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.Authorize(authorizer, "employee", "manage"),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(authorizer, "employee", "read"),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.Authorize(authorizer, "employee", "manage"),
			handler.Delete,
		)
	}
}
