package app

import (
	"context"
	"database/sql"

	"go-elra/internal/audit"
	"go-elra/internal/config"
	"go-elra/internal/directory"
	"go-elra/internal/leave"
	"go-elra/internal/messaging/kafka"
	"go-elra/internal/notification"

	"gorm.io/gorm"
)

func migrate(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) error {
	models := []any{
		&directory.Role{},
		&directory.Department{},
		&directory.User{},
		&notification.Notification{},
	}
	if cfg.AuditStore != config.AuditStoreMongo {
		models = append(models, &audit.Entry{})
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(models...); err != nil {
		return err
	}
	if err := leave.Migrate(gormDB.WithContext(ctx)); err != nil {
		return err
	}
	return kafka.Migrate(ctx, sqlDB)
}
