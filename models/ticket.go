package models

// Destek talebi durumları.
const (
	TicketStatusOpen     = "open"
	TicketStatusAnswered = "answered"
	TicketStatusClosed   = "closed"
)

// Destek talebi kategorileri (formdaki seçim kutusu ile aynı küme).
var TicketCategories = []string{"billing", "technical", "account", "other"}

// Ticket kullanıcı destek talebidir. Oluşturulduğunda destek kutusuna
// Resend üzerinden bildirim e-postası gönderilir.
type Ticket struct {
	BaseModel
	UserID    uint   `gorm:"index;not null"`
	Reference string `gorm:"type:varchar(36);uniqueIndex;not null"` // UUID, kullanıcıya gösterilen takip no
	Category  string `gorm:"type:varchar(20);not null"`
	Subject   string `gorm:"type:varchar(150);not null"`
	Message   string `gorm:"type:text;not null"`
	Status    string `gorm:"type:varchar(20);default:'open';index"`

	// GORM İlişkileri
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
