package app

import (
	"context"
	"time"

	"go-elra/internal/audit"
	"go-elra/internal/auth"
	"go-elra/internal/config"
	"go-elra/internal/directory"
	"go-elra/internal/directory/directory_http"
	"go-elra/internal/leave"
	"go-elra/internal/messaging/kafka"
	"go-elra/internal/middleware"
	"go-elra/internal/notification"
	"go-elra/internal/rbac"
	"go-elra/internal/rbac/rbac_http"

	"github.com/gin-gonic/gin"
)

func registerModules(router *gin.Engine, cfg *config.Config, infra *infrastructure) error {
	// --- Repositories ---
	directoryRepo := directory.NewRepository(infra.gormDB)
	leaveRepo := leave.NewRepository(infra.gormDB)
	notificationRepo := notification.NewRepository(infra.gormDB)
	auditRepo, err := newAuditRepository(cfg, infra)
	if err != nil {
		return err
	}

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	directoryService := directory.NewService(directoryRepo)
	dir := directory.NewCachedDirectory(directoryService, infra.rdb, cfg.DirectoryTTL)

	var notificationService notification.Service
	if cfg.KafkaBroker != "" {
		notificationService = notification.NewServiceWithOutbox(notificationRepo, kafka.NewOutboxRepository(infra.sqlDB))
	} else {
		notificationService = notification.NewService(notificationRepo)
	}

	auditService := audit.NewService(auditRepo)
	dispatcher := leave.NewDispatcher(notificationService, auditService)
	leaveService := leave.NewService(infra.sqlDB, leaveRepo, dir, dispatcher)
	authService := auth.NewService(directoryService, cfg.JWTSecret)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	directoryHandler := directory_http.NewHandler(directoryService)
	rbacHandler := rbac_http.NewHandler(rbacService)
	notificationHandler := notification.NewHandler(notificationService)
	auditHandler := audit.NewHandler(auditService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	api := router.Group("/api")
	api.Use(middleware.RateLimitByIP(20, 40))
	{
		auth.RegisterRoutes(api, authHandler)
		directory_http.RegisterRoutes(api, directoryHandler, dir, rbacService)
		rbac_http.RegisterRoutes(api, rbacHandler, dir)
		notification.RegisterRoutes(api, notificationHandler, dir, rbacService)
		audit.RegisterRoutes(api, auditHandler, dir, rbacService)
		leave.RegisterRoutes(api, leaveHandler, dir, rbacService, infra.rdb)
	}

	return nil
}

func newAuditRepository(cfg *config.Config, infra *infrastructure) (audit.Repository, error) {
	if cfg.AuditStore != config.AuditStoreMongo {
		return audit.NewRepository(infra.gormDB), nil
	}

	db := infra.mongo.Database(cfg.MongoDatabase)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := audit.EnsureMongoIndexes(ctx, db); err != nil {
		return nil, err
	}
	return audit.NewMongoRepository(db), nil
}
