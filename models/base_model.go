package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// contextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// BaseModel hook'larına taşımak için kullanılır.
const contextUserIDKey contextKey = "user_id"

// ContextWithUserID işlemi yapan kullanıcıyı context'e ekler.
// Servis katmanı repository çağrılarından önce bunu kullanmalıdır.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, contextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür (yoksa 0).
func UserIDFromContext(ctx context.Context) uint {
	if v, ok := ctx.Value(contextUserIDKey).(uint); ok {
		return v
	}
	return 0
}

// BaseModel tüm kalıcı kayıtların ortak alanlarını içerir.
// CreatedBy/UpdatedBy/DeletedBy alanları context'teki kullanıcı ID'sinden doldurulur.
type BaseModel struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedBy uint           `gorm:"index"`
	UpdatedBy uint
	DeletedBy uint
}

// BeforeCreate kaydı oluşturan kullanıcıyı context'ten alır.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		m.CreatedBy = userID
		m.UpdatedBy = userID
	}
	return nil
}

// BeforeUpdate kaydı güncelleyen kullanıcıyı context'ten alır.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		m.UpdatedBy = userID
	}
	return nil
}
