package models

// UserStatus kullanıcı hesabının durumunu belirtir.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User platform kullanıcısıdır. IsSystem=true olan kullanıcılar yönetim
// paneline (dashboard) erişir, normal kullanıcılar kendi paneline erişir.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsSystem     bool   `gorm:"default:false;index"`
	Status       string `gorm:"type:varchar(20);default:'active';index"`

	// Abonelik planı (FREE/PRO). Kart kotası ve sosyal link limiti plandan gelir.
	PlanID uint `gorm:"index;not null"`
	Plan   Plan `gorm:"foreignKey:PlanID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	// Affiliate / referans programı
	ReferralCode     string `gorm:"type:varchar(12);uniqueIndex;not null"`
	ReferredByUserID *uint  `gorm:"index"` // Kayıt sırasında ?ref= ile gelen kullanıcı
}
