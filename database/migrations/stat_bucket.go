package migrations

import (
	"kart.link/configs/configslog"
	"kart.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateStatBucketsTable sayaç tablosunu oluşturur. Artışların çalışması
// composite unique index'e bağlıdır (ON CONFLICT hedefi).
func MigrateStatBucketsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating card_stat_buckets table...")
	err := db.AutoMigrate(&models.CardStatBucket{})
	if err != nil {
		configslog.Log.Error("Failed to migrate card_stat_buckets table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Card_stat_buckets table migrated successfully")
	return nil
}
