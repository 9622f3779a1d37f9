package handlers // handlers/panel paketi

import (
	"net/http"

	"kart.link/configs/configslog"
	"kart.link/pkg/flashmessages"
	"kart.link/pkg/renderer"
	"kart.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelAffiliateHandler referans programı sayfası için handler.
type PanelAffiliateHandler struct {
	service services.IAffiliateService
}

// NewPanelAffiliateHandler yeni bir PanelAffiliateHandler örneği oluşturur.
func NewPanelAffiliateHandler() *PanelAffiliateHandler {
	return &PanelAffiliateHandler{service: services.NewAffiliateService()}
}

// ShowAffiliate referans kodunu, davet linkini ve davet sayısını gösterir.
func (h *PanelAffiliateHandler) ShowAffiliate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	summary, err := h.service.GetSummary(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Panel - ShowAffiliate Error", zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Referans bilgileri alınamadı.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	return renderer.Render(c, "panel/affiliate/overview", "layouts/panel_layout", fiber.Map{
		"Title":   "Davet Programı",
		"Summary": summary,
	}, http.StatusOK)
}
