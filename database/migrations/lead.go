package migrations

import (
	"kart.link/configs/configslog"
	"kart.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateLeadsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating leads table...")
	err := db.AutoMigrate(&models.Lead{})
	if err != nil {
		configslog.Log.Error("Failed to migrate leads table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Leads table migrated successfully")
	return nil
}
