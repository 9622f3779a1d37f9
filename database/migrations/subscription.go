package migrations

import (
	"kart.link/configs/configslog"
	"kart.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateSubscriptionsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating subscriptions table...")
	err := db.AutoMigrate(&models.Subscription{})
	if err != nil {
		configslog.Log.Error("Failed to migrate subscriptions table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Subscriptions table migrated successfully")
	return nil
}
