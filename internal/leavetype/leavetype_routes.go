package leavetype

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
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.Authorize(authorizer, "leave_type", "read"), handler.GetAll)
		types.GET("/:id", middleware.Authorize(authorizer, "leave_type", "read"), handler.GetById)
		types.POST("", middleware.Authorize(authorizer, "leave_type", "manage"), handler.Create)
		types.PUT("/:id", middleware.Authorize(authorizer, "leave_type", "manage"), handler.Update)
		types.DELETE("/:id", middleware.Authorize(authorizer, "leave_type", "manage"), handler.Delete)
	}
}
