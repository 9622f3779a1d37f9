package handlers // handlers/auth paketi

import (
	"errors"
	"net/http"

	"kart.link/configs/configslog"
	"kart.link/pkg/flashmessages"
	"kart.link/pkg/renderer"
	"kart.link/services"
	"kart.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler giriş, kayıt ve profil işlemleri için handler.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{service: services.NewAuthService()}
}

// ShowLogin giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return renderer.Render(c, "auth/login", "layouts/auth_layout", fiber.Map{
		"Title": "Giriş Yap",
	})
}

// Login e-posta/şifre ile oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.service.Login(c.UserContext(), email, password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) && !errors.Is(err, services.ErrAccountSuspended) {
			configslog.Log.Error("Login Error", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Login: session başlatılamadı", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum başlatılamadı, lütfen tekrar deneyin.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	if err := utils.SetUserSession(sess, user.ID, user.Name, user.IsSystem); err != nil {
		configslog.Log.Error("Login: session yazılamadı", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum başlatılamadı, lütfen tekrar deneyin.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	if user.IsSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

// ShowRegister kayıt formunu gösterir. ?ref= parametresi referans kodunu taşır.
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return renderer.Render(c, "auth/register", "layouts/auth_layout", fiber.Map{
		"Title":        "Kayıt Ol",
		"ReferralCode": c.Query("ref"),
		"FormData":     flashmessages.GetFlashFormData(c),
	})
}

// Register yeni kullanıcı kaydı yapar ve oturum açar.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	referralCode := c.FormValue("referral_code")

	user, err := h.service.Register(c.UserContext(), name, email, password, referralCode)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		_ = flashmessages.SetFlashFormData(c, fiber.Map{"name": name, "email": email, "referral_code": referralCode})
		return c.Redirect("/auth/register", fiber.StatusSeeOther)
	}

	sess, sessErr := utils.SessionStart(c)
	if sessErr == nil {
		_ = utils.SetUserSession(sess, user.ID, user.Name, user.IsSystem)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Hesabınız oluşturuldu, hoş geldiniz!")
	return c.Redirect("/panel/home", fiber.StatusFound)
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := utils.DestroySession(c); err != nil {
		configslog.Log.Warn("Logout: session sonlandırılamadı", zap.Error(err))
	}
	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}

// ShowProfile profil sayfasını gösterir.
func (h *AuthHandler) ShowProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}
	user, err := h.service.GetUserByID(c.UserContext(), userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Profil bilgileri alınamadı.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	return renderer.Render(c, "auth/profile", "layouts/panel_layout", fiber.Map{
		"Title": "Profilim",
		"User":  user,
	}, http.StatusOK)
}

// UpdatePassword mevcut şifre doğrulamasıyla şifreyi değiştirir.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}
	currentPassword := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")

	if err := h.service.UpdatePassword(c.UserContext(), userID, currentPassword, newPassword); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Şifreniz güncellendi.")
	}
	return c.Redirect("/auth/profile", fiber.StatusSeeOther)
}
