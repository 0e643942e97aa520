package leave

import (
	"go-elra/internal/directory"
	"go-elra/internal/middleware"
	"go-elra/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	dir directory.Directory,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leave")
	leaves.Use(middleware.AuthMiddleware(), middleware.LoadActor(dir))
	{
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), middleware.Idempotency(rdb), handler.Create)
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/my-requests", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetMine)
		leaves.GET("/department-requests", middleware.RBACAuthorize(rbacService, "leave", "read_department"), handler.GetDepartment)
		leaves.GET("/stats/overview", middleware.RBACAuthorize(rbacService, "leave", "stats"), handler.GetStats)
		leaves.GET("/pending/approvals", middleware.RBACAuthorize(rbacService, "leave", "pending"), handler.GetPendingApprovals)
		leaves.GET("/types/available", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetTypes)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.Update)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Delete)
		leaves.PUT("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Decide)
		leaves.PUT("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.Cancel)
	}
}
