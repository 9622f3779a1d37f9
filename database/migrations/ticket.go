package migrations

import (
	"kart.link/configs/configslog"
	"kart.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateTicketsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating tickets table...")
	err := db.AutoMigrate(&models.Ticket{})
	if err != nil {
		configslog.Log.Error("Failed to migrate tickets table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Tickets table migrated successfully")
	return nil
}
