package rbac_http

import (
	"go-elra/internal/directory"
	"go-elra/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, dir directory.Directory) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(), middleware.LoadActor(dir))
	{
		group.GET("/permissions", handler.MyPermissions)
		group.POST("/enforce", handler.Enforce)
	}
}
