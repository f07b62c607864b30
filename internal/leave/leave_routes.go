package leave

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
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.Authorize(authorizer, "leave", "create"), handler.Apply)
		leaves.GET("", middleware.Authorize(authorizer, "leave", "read"), handler.GetAll)
		leaves.GET("/stats", middleware.Authorize(authorizer, "leave", "read"), handler.Stats)
		leaves.GET("/:id", middleware.Authorize(authorizer, "leave", "read"), handler.GetByID)
		leaves.PUT("/:id/approve", middleware.Authorize(authorizer, "leave", "approve"), handler.Approve)
		leaves.PUT("/:id/reject", middleware.Authorize(authorizer, "leave", "approve"), handler.Reject)
		leaves.PUT("/:id/cancel", middleware.Authorize(authorizer, "leave", "cancel"), handler.Cancel)
	}
}
