package models

// Link benzersiz bir paylaşım anahtarını ('Key') bir kartvizite bağlar.
// Public erişim /{key} rotası üzerinden bu kayıtla çözülür.
type Link struct {
	BaseModel
	Key           string `gorm:"type:varchar(20);uniqueIndex;not null"`
	TargetID      uint   `gorm:"not null;index:idx_link_target"` // cards.id
	CreatorUserID uint   `gorm:"index;not null"`                 // users.id FK

	// GORM İlişkileri
	Creator User `gorm:"foreignKey:CreatorUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// LinkKeyLength paylaşım anahtarlarının sabit uzunluğu.
const LinkKeyLength = 20
