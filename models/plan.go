package models

// Plan abonelik planlarının kayıt defteridir (seed ile doldurulur).
// Kota alanları servis katmanındaki plan kontrollerinde kullanılır.
type Plan struct {
	BaseModel
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `gorm:"type:text"`

	// Kotalar
	MaxCards       int `gorm:"not null;default:1"` // Kullanıcı başına kart sayısı
	MaxSocialLinks int `gorm:"not null;default:4"` // Kart başına dolu sosyal link sayısı

	// Stripe entegrasyonu. FREE planda boş kalır.
	StripePriceID string `gorm:"type:varchar(100)"`
}

const (
	PlanNameFree = "FREE"
	PlanNamePro  = "PRO"
)
