package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-elra/internal/config"
	"go-elra/internal/middleware"
	"go-elra/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
	mongo  *mongo.Client
}

func (i *infrastructure) Close() {
	if i.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = i.mongo.Disconnect(ctx)
		cancel()
	}
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

func connectDatabase(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		cfg.Database.MaxRetries,
	)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}

// BuildApp connects the infrastructure, wires every module onto router and
// returns a function that releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	infra := &infrastructure{gormDB: gormDB, sqlDB: sqlDB}
	logger.Info("database connection established")

	if cfg.Database.AutoMigrate {
		if err := migrate(context.Background(), cfg, gormDB, sqlDB); err != nil {
			infra.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("schema migrated")
	}

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.Database.MaxRetries)
		if err != nil {
			logger.Warn("redis unavailable, running without directory cache and idempotency", zap.Error(err))
		} else {
			infra.rdb = rdb
		}
	}

	if cfg.AuditStore == config.AuditStoreMongo {
		if cfg.MongoURI == "" {
			infra.Close()
			return nil, fmt.Errorf("MONGO_URI is required when AUDIT_STORE=%s", config.AuditStoreMongo)
		}
		client, err := connection.ConnectMongoWithRetry(cfg.MongoURI, cfg.Database.MaxRetries)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.mongo = client
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
	)

	if err := registerModules(router, cfg, infra); err != nil {
		infra.Close()
		return nil, err
	}

	return infra.Close, nil
}
