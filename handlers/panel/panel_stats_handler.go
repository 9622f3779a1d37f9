package handlers // handlers/panel paketi

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

// PanelStatsHandler kart istatistikleri ve lead listesi için handler.
type PanelStatsHandler struct {
	engagementService services.IEngagementService
	leadService       services.ILeadService
	cardService       services.ICardService
}

// NewPanelStatsHandler yeni bir PanelStatsHandler örneği oluşturur.
func NewPanelStatsHandler() *PanelStatsHandler {
	return &PanelStatsHandler{
		engagementService: services.NewEngagementService(),
		leadService:       services.NewLeadService(),
		cardService:       services.NewCardService(),
	}
}

// ShowCardStats kartın etkileşim istatistiklerini gösterir.
// ?metric= parametresi günlük/aylık kırılımın metriğini seçer (varsayılan: view).
func (h *PanelStatsHandler) ShowCardStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/cards")
	}
	cardID := uint(id)

	metric := models.Metric(c.Query("metric", string(models.MetricView)))
	if !metric.IsValid() {
		metric = models.MetricView
	}

	card, err := h.cardService.GetCardByID(c.UserContext(), cardID, userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kartvizit bulunamadı veya erişim yetkiniz yok.")
		return c.Redirect("/panel/cards")
	}

	stats, err := h.engagementService.GetCardStats(c.UserContext(), cardID, userID, metric)
	if err != nil {
		if !errors.Is(err, services.ErrEngagementCardNotFound) && !errors.Is(err, services.ErrStatsForbidden) {
			configslog.Log.Error("Panel - ShowCardStats Error", zap.Uint("cardID", cardID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "İstatistikler alınamadı.")
		return c.Redirect("/panel/cards")
	}

	return renderer.Render(c, "panel/cards/stats", "layouts/panel_layout", fiber.Map{
		"Title":      "Kart İstatistikleri",
		"Card":       card,
		"Stats":      stats,
		"Metric":     metric,
		"AllMetrics": models.AllMetrics,
	}, http.StatusOK)
}

// ListLeads karta gelen iletişim taleplerini listeler.
func (h *PanelStatsHandler) ListLeads(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/cards")
	}
	cardID := uint(id)

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	card, err := h.cardService.GetCardByID(c.UserContext(), cardID, userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kartvizit bulunamadı veya erişim yetkiniz yok.")
		return c.Redirect("/panel/cards")
	}

	result, err := h.leadService.GetLeadsForCardPaginated(c.UserContext(), cardID, userID, params)
	renderData := fiber.Map{
		"Title":  "İletişim Talepleri",
		"Card":   card,
		"Result": result,
		"Params": params,
	}
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Talepler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Lead{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListLeads Error", zap.Uint("cardID", cardID), zap.Error(err))
	}
	return renderer.Render(c, "panel/cards/leads", "layouts/panel_layout", renderData, http.StatusOK)
}
