package flashmessages

import (
	"encoding/json"

	"kart.link/configs/configslog"
	"kart.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Flash mesaj anahtarları. Bir sonraki istekte okunup silinirler.
const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	FlashFormDataKey = "flash_form_data"
)

// SetFlashMessage verilen anahtara tek seferlik mesaj yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessage mesajı okur ve session'dan siler.
func GetFlashMessage(c *fiber.Ctx, key string) string {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return ""
	}
	message, _ := sess.Get(key).(string)
	if message != "" {
		sess.Delete(key)
		if err := sess.Save(); err != nil {
			configslog.Log.Warn("Flash mesajı silinemedi", zap.String("key", key), zap.Error(err))
		}
	}
	return message
}

// SetFlashFormData hatalı form gönderiminden sonra formu yeniden doldurmak
// için veriyi JSON olarak session'a yazar.
func SetFlashFormData(c *fiber.Ctx, data interface{}) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return SetFlashMessage(c, FlashFormDataKey, string(encoded))
}

// GetFlashFormData kaydedilen form verisini map olarak döndürür (yoksa nil).
func GetFlashFormData(c *fiber.Ctx) map[string]interface{} {
	raw := GetFlashMessage(c, FlashFormDataKey)
	if raw == "" {
		return nil
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		configslog.Log.Warn("Flash form verisi çözümlenemedi", zap.Error(err))
		return nil
	}
	return data
}
