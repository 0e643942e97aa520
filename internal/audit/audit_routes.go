package audit

import (
	"go-elra/internal/directory"
	"go-elra/internal/middleware"
	"go-elra/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, dir directory.Directory, rbacService rbac.Service) {
	history := r.Group("/leave")
	history.Use(middleware.AuthMiddleware(), middleware.LoadActor(dir))
	{
		history.GET("/:id/history", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.LeaveHistory)
	}
}
