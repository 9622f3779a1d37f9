package handlers // handlers/panel paketi

import (
	"net/http"

	"kart.link/configs/configslog"
	"kart.link/pkg/renderer"
	"kart.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelHomeHandler panel ana sayfası için handler.
type PanelHomeHandler struct {
	cardService    services.ICardService
	billingService services.IBillingService
}

// NewPanelHomeHandler yeni bir PanelHomeHandler örneği oluşturur.
func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{
		cardService:    services.NewCardService(),
		billingService: services.NewBillingService(),
	}
}

// PanelHomeHandler panel ana sayfasını gösterir: kart sayısı ve plan özeti.
func (h *PanelHomeHandler) PanelHomeHandler(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	renderData := fiber.Map{"Title": "Panelim"}

	cardCount, err := h.cardService.GetCardCountForUser(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Panel - Home: kart sayısı alınamadı", zap.Uint("userID", userID), zap.Error(err))
	}
	renderData["CardCount"] = cardCount

	if overview, err := h.billingService.GetOverview(c.UserContext(), userID); err == nil {
		renderData["Plan"] = overview.Plan
		renderData["Subscription"] = overview.Subscription
	} else {
		configslog.Log.Error("Panel - Home: plan özeti alınamadı", zap.Uint("userID", userID), zap.Error(err))
	}

	return renderer.Render(c, "panel/home", "layouts/panel_layout", renderData, http.StatusOK)
}
