package models

// Card dijital kartvizitin ana kaydıdır.
// Public erişim iki yoldan olur: rastgele paylaşım anahtarı (Link.Key)
// veya kullanıcının seçtiği benzersiz Slug.
type Card struct {
	BaseModel
	LinkID      uint   `gorm:"uniqueIndex;not null"`
	OwnerUserID uint   `gorm:"index;not null"`
	Slug        string `gorm:"type:varchar(60);uniqueIndex;not null"`
	IsEnabled   bool   `gorm:"default:true;index"` // Kartvizit yayında mı?

	// GORM İlişkileri
	Link   Link       `gorm:"foreignKey:LinkID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Detail CardDetail `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
