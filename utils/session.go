package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session anahtarları.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUserName = "user_name"
	SessionKeyIsSystem = "is_system"
)

var (
	ErrSessionStoreMissing = errors.New("session store locals içinde bulunamadı")
	ErrSessionUserMissing  = errors.New("session içinde kullanıcı bilgisi yok")
)

// SessionStart locals'taki store üzerinden isteğin oturumunu açar.
// Store, router kurulumunda "session_store" anahtarıyla locals'a konur.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// SetUserSession başarılı giriş sonrası oturum bilgilerini yazar.
func SetUserSession(sess *session.Session, userID uint, userName string, isSystem bool) error {
	sess.Set(SessionKeyUserID, userID)
	sess.Set(SessionKeyUserName, userName)
	sess.Set(SessionKeyIsSystem, isSystem)
	return sess.Save()
}

// GetUserIDFromSession oturumdaki kullanıcı ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	userID, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || userID == 0 {
		return 0, ErrSessionUserMissing
	}
	return userID, nil
}

// GetIsSystemFromSession oturumdaki yönetici bayrağını döndürür.
func GetIsSystemFromSession(sess *session.Session) (bool, error) {
	isSystem, ok := sess.Get(SessionKeyIsSystem).(bool)
	if !ok {
		return false, ErrSessionUserMissing
	}
	return isSystem, nil
}

// DestroySession çıkış işleminde oturumu tamamen siler.
func DestroySession(c *fiber.Ctx) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
