package models

// Lead public kart sayfasındaki lead formundan gelen ziyaretçi kaydıdır.
// Kart sahibi panelden görüntüler; ayrıca e-posta/CRM entegrasyonuna iletilir.
type Lead struct {
	BaseModel
	CardID uint `gorm:"index;not null"`

	Name    string `gorm:"type:varchar(100);not null"`
	Email   string `gorm:"type:varchar(100);not null"`
	Phone   string `gorm:"type:varchar(30)"`
	Message string `gorm:"type:text"`

	// CRM'e iletilen istek bilgileri
	IPAddress string `gorm:"type:varchar(45)"`
	UserAgent string `gorm:"type:varchar(255)"`

	// GORM İlişkileri
	Card Card `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
