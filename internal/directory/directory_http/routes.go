package directory_http

import (
	"go-elra/internal/directory"
	"go-elra/internal/middleware"
	"go-elra/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, dir directory.Directory, rbacService rbac.Service) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware(), middleware.LoadActor(dir))
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), handler.ListDepartments)
	}
}
