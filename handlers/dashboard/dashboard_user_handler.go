package handlers // handlers/dashboard paketi

import (
	"net/http"

	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/pkg/flashmessages"
	"kart.link/pkg/queryparams"
	"kart.link/pkg/renderer"
	"kart.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardUserHandler tüm kullanıcıların yönetimi için handler.
type DashboardUserHandler struct {
	service services.IUserService
}

// NewDashboardUserHandler yeni bir DashboardUserHandler örneği oluşturur.
func NewDashboardUserHandler() *DashboardUserHandler {
	return &DashboardUserHandler{service: services.NewUserService()}
}

// ListUsers tüm kullanıcıları listeler.
func (h *DashboardUserHandler) ListUsers(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Dashboard ListUsers: Query parse error", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetAllUsersPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Kullanıcılar",
		"Result": result,
		"Params": params,
	}
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kullanıcılar listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.User{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListUsers Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/users/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// UpdateUserStatus hesabı aktifleştirir veya askıya alır.
func (h *DashboardUserHandler) UpdateUserStatus(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/users")
	}
	status := c.FormValue("status")

	if err := h.service.UpdateUserStatus(c.UserContext(), uint(id), adminID, status); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kullanıcı durumu güncellendi.")
	}
	return c.Redirect("/dashboard/users", fiber.StatusSeeOther)
}
