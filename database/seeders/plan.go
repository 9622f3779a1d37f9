package seeders

import (
	"errors"
	"os"

	"kart.link/configs/configslog"
	"kart.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedPlans FREE ve PRO planlarını oluşturur. PRO planın Stripe fiyat
// kimliği STRIPE_PRICE_ID_PRO ortam değişkeninden okunur.
func SeedPlans(db *gorm.DB) error {
	plansToSeed := []models.Plan{
		{
			Name:           models.PlanNameFree,
			Description:    "Ücretsiz başlangıç planı",
			MaxCards:       1,
			MaxSocialLinks: 4,
		},
		{
			Name:           models.PlanNamePro,
			Description:    "Sınırsıza yakın kart ve tüm sosyal linkler",
			MaxCards:       10,
			MaxSocialLinks: 6,
			StripePriceID:  os.Getenv("STRIPE_PRICE_ID_PRO"),
		},
	}

	var createdCount int64 = 0
	var errorOccurred bool = false

	configslog.SLog.Info("Plan seed işlemi başlıyor...")

	for _, planToSeed := range plansToSeed {
		var existingPlan models.Plan
		result := db.Where("name = ?", planToSeed.Name).First(&existingPlan)

		if result.Error == nil {
			configslog.SLog.Debugf("Plan '%s' zaten mevcut, oluşturma atlanıyor.", planToSeed.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Plan kontrol edilirken veritabanı hatası",
				zap.String("plan_name", planToSeed.Name),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Plan '%s' oluşturuluyor...", planToSeed.Name)
		if err := db.Create(&planToSeed).Error; err != nil {
			configslog.Log.Error("Plan oluşturulamadı",
				zap.String("plan_name", planToSeed.Name),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Plan '%s' başarıyla oluşturuldu (ID: %d).", planToSeed.Name, planToSeed.ID)
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d adet yeni plan başarıyla seed edildi.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Tüm planlar zaten mevcut, yeni ekleme yapılmadı.")
	}

	if errorOccurred {
		return errors.New("planlar seed edilirken en az bir hata oluştu")
	}

	configslog.SLog.Info("Plan seed işlemi başarıyla tamamlandı.")
	return nil
}
