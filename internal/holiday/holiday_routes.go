package holiday

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
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.Authorize(authorizer, "holiday", "read"), handler.GetAll)
		holidays.GET("/year/:year", middleware.Authorize(authorizer, "holiday", "read"), handler.GetByYear)
		holidays.GET("/:id", middleware.Authorize(authorizer, "holiday", "read"), handler.GetById)
		holidays.POST("", middleware.Authorize(authorizer, "holiday", "manage"), handler.Create)
		holidays.POST("/bulk-import", middleware.Authorize(authorizer, "holiday", "manage"), handler.BulkImport)
		holidays.PUT("/:id", middleware.Authorize(authorizer, "holiday", "manage"), handler.Update)
		holidays.DELETE("/:id", middleware.Authorize(authorizer, "holiday", "manage"), handler.Delete)
	}
}
