package models

import "time"

// Abonelik durumları (Stripe subscription status değerleriyle uyumlu).
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusTrialing = "trialing"
)

// Subscription kullanıcının Stripe aboneliğinin yerel kaydıdır.
// Kaynak Stripe'tır; webhook işleyicisi bu kaydı senkron tutar.
type Subscription struct {
	BaseModel
	UserID uint `gorm:"index;not null"`
	PlanID uint `gorm:"index;not null"`

	StripeCustomerID     string `gorm:"type:varchar(100);index"`
	StripeSubscriptionID string `gorm:"type:varchar(100);uniqueIndex"`
	Status               string `gorm:"type:varchar(20);index;not null"`

	CurrentPeriodEnd *time.Time `gorm:"type:timestamptz"`
	CanceledAt       *time.Time `gorm:"type:timestamptz"`

	// GORM İlişkileri
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Plan Plan `gorm:"foreignKey:PlanID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// IsActive abonelik şu anda kullanım hakkı veriyor mu?
func (s Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusTrialing
}
