package seeders

import (
	"errors"
	"os"
	"strings"

	"kart.link/configs/configslog"
	"kart.link/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser yönetim paneline erişen sistem kullanıcısını oluşturur.
// Kimlik bilgileri SYSTEM_USER_EMAIL ve SYSTEM_USER_PASSWORD ortam
// değişkenlerinden okunur. Kullanıcı zaten varsa şifresi güncellenir.
func SeedSystemUser(db *gorm.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SYSTEM_USER_EMAIL")))
	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if email == "" || password == "" {
		configslog.SLog.Warn("SYSTEM_USER_EMAIL/SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı seed edilmiyor.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var freePlan models.Plan
	if err := db.Where("name = ?", models.PlanNameFree).First(&freePlan).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı için FREE plan bulunamadı (planlar önce seed edilmeli)", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Info("Sistem kullanıcısı zaten mevcut, şifre güncelleniyor...")
		updates := map[string]interface{}{
			"password_hash": string(hash),
			"is_system":     true,
			"status":        models.UserStatusActive,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Info("Sistem kullanıcısı güncellendi.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	systemUser := models.User{
		Name:         "Sistem Yöneticisi",
		Email:        email,
		PasswordHash: string(hash),
		IsSystem:     true,
		Status:       models.UserStatusActive,
		PlanID:       freePlan.ID,
		ReferralCode: strings.Split(uuid.NewString(), "-")[0],
	}
	if err := db.Create(&systemUser).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu (ID: %d).", systemUser.ID)
	return nil
}
