package configs

import (
	"os"
	"strconv"
	"time"

	"kart.link/configs/configsdatabase"
	"kart.link/configs/configslog"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"
)

// LoadEnv .env dosyasını yükler. Dosya yoksa sessizce devam edilir
// (production ortamında değişkenler dışarıdan verilir).
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, mevcut ortam değişkenleri kullanılacak.")
	}
}

// GetDB configsdatabase üzerindeki aktif bağlantıyı döndürür.
// Servis ve repository katmanlarının kısa yoldan erişimi için.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

var sessionStore *session.Store

// SetupSession oturum store'unu oluşturur (tek sefer) ve döndürür.
func SetupSession() *session.Store {
	if sessionStore != nil {
		return sessionStore
	}
	sessionStore = session.New(session.Config{
		Expiration:     GetSessionExpiration(),
		KeyLookup:      "cookie:kartlink_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   os.Getenv("APP_ENV") == "production",
	})
	return sessionStore
}

// GetSessionExpiration SESSION_EXP_HOURS değişkeninden oturum süresini okur.
func GetSessionExpiration() time.Duration {
	hours := 24
	if v := os.Getenv("SESSION_EXP_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			hours = parsed
		}
	}
	return time.Duration(hours) * time.Hour
}

// InitStripe Stripe API anahtarını ayarlar. Billing servisi kullanılmadan önce çağrılmalı.
func InitStripe() {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		configslog.SLog.Warn("STRIPE_SECRET_KEY tanımlı değil, abonelik işlemleri çalışmayacak.")
		return
	}
	stripe.Key = key
}

// GetStripeWebhookSecret webhook imza doğrulaması için gizli anahtarı döndürür.
func GetStripeWebhookSecret() string {
	return os.Getenv("STRIPE_WEBHOOK_SECRET")
}

// GetResendAPIKey Resend e-posta API anahtarını döndürür.
func GetResendAPIKey() string {
	return os.Getenv("RESEND_API_KEY")
}

// GetMailSender sistem e-postalarının gönderen adresini döndürür.
func GetMailSender() string {
	if v := os.Getenv("MAIL_SENDER"); v != "" {
		return v
	}
	return "kart.link <no-reply@kart.link>"
}

// GetSupportInbox destek taleplerinin bildirim kutusunu döndürür.
func GetSupportInbox() string {
	if v := os.Getenv("SUPPORT_INBOX"); v != "" {
		return v
	}
	return "destek@kart.link"
}

// GetAppBaseURL paylaşım linklerinde kullanılan kök URL'yi döndürür.
func GetAppBaseURL() string {
	if v := os.Getenv("APP_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:3000"
}

// GetListenAddr HTTP sunucusunun dinleyeceği adresi döndürür.
func GetListenAddr() string {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		return v
	}
	return ":3000"
}
