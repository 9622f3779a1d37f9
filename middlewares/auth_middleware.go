package middlewares

import (
	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/pkg/flashmessages"
	"kart.link/services"
	"kart.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware oturum açmış kullanıcı gerektirir. Oturum yoksa login
// sayfasına yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("AuthMiddleware: session başlatılamadı", zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	userID, err := utils.GetUserIDFromSession(sess)
	if err != nil || userID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Lütfen giriş yapın.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	c.Locals("userID", userID)
	return c.Next()
}

// GuestMiddleware yalnızca oturumu OLMAYAN kullanıcılara izin verir
// (login/register sayfaları). Oturum varsa ana sayfaya yönlendirir.
func GuestMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err == nil {
		if userID, idErr := utils.GetUserIDFromSession(sess); idErr == nil && userID > 0 {
			isSystem, _ := utils.GetIsSystemFromSession(sess)
			if isSystem {
				return c.Redirect("/dashboard/home", fiber.StatusFound)
			}
			return c.Redirect("/panel/home", fiber.StatusFound)
		}
	}
	return c.Next()
}

// StatusMiddleware oturumdaki kullanıcının hesabının hala aktif olduğunu
// doğrular. Askıya alınmış hesapların oturumu sonlandırılır.
func StatusMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	user, err := services.NewAuthService().GetUserByID(c.UserContext(), userID)
	if err != nil || user.Status != models.UserStatusActive {
		_ = utils.DestroySession(c)
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Hesabınız aktif değil.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	c.Locals("user", user)
	return c.Next()
}

// RequireUser yalnızca normal kullanıcılara (IsSystem == false) izin verir.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return c.Redirect("/auth/login", fiber.StatusSeeOther)
		}
		if user.IsSystem {
			return c.Redirect("/dashboard/home", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireSystem yalnızca sistem yöneticilerine (IsSystem == true) izin verir.
func RequireSystem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return c.Redirect("/auth/login", fiber.StatusSeeOther)
		}
		if !user.IsSystem {
			return c.Redirect("/panel/home", fiber.StatusFound)
		}
		return c.Next()
	}
}
