package handlers // handlers/dashboard paketi

import (
	"errors"
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

// DashboardCardHandler tüm kartvizitlerin yönetimi için handler.
type DashboardCardHandler struct {
	service services.ICardService
}

// NewDashboardCardHandler yeni bir DashboardCardHandler örneği oluşturur.
func NewDashboardCardHandler() *DashboardCardHandler {
	return &DashboardCardHandler{service: services.NewCardService()}
}

// ListCards sistemdeki tüm kartvizitleri listeler.
func (h *DashboardCardHandler) ListCards(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Dashboard ListCards: Query parse error", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetAllCardsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Tüm Kartvizitler",
		"Result": result,
		"Params": params,
	}
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kartvizitler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Card{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListCards Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/cards/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// DeleteCard herhangi bir kartviziti siler (sistem yetkisi).
func (h *DashboardCardHandler) DeleteCard(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/cards")
	}

	err = h.service.DeleteCard(c.UserContext(), uint(id), adminID)
	if err != nil {
		if !errors.Is(err, services.ErrCardNotFound) {
			configslog.Log.Error("Dashboard - DeleteCard Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit silindi.")
	}
	return c.Redirect("/dashboard/cards", fiber.StatusSeeOther)
}
