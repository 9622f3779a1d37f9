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

// PanelBillingHandler abonelik ve fatura sayfaları için handler.
type PanelBillingHandler struct {
	service services.IBillingService
}

// NewPanelBillingHandler yeni bir PanelBillingHandler örneği oluşturur.
func NewPanelBillingHandler() *PanelBillingHandler {
	return &PanelBillingHandler{service: services.NewBillingService()}
}

// ShowBilling mevcut planı, abonelik durumunu ve fatura geçmişini gösterir.
func (h *PanelBillingHandler) ShowBilling(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	overview, err := h.service.GetOverview(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Panel - ShowBilling Error", zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Abonelik bilgileri alınamadı.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	return renderer.Render(c, "panel/billing/overview", "layouts/panel_layout", fiber.Map{
		"Title":          "Abonelik ve Faturalar",
		"Plan":           overview.Plan,
		"Subscription":   overview.Subscription,
		"Invoices":       overview.Invoices,
		"AvailablePlans": overview.AvailablePlans,
		"Checkout":       c.Query("checkout"),
	}, http.StatusOK)
}

// StartCheckout seçilen plan için Stripe Checkout oturumu açar ve yönlendirir.
func (h *PanelBillingHandler) StartCheckout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	planID, err := c.ParamsInt("planId")
	if err != nil || planID <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz plan.")
		return c.Redirect("/panel/billing", fiber.StatusSeeOther)
	}

	checkoutURL, err := h.service.CreateCheckoutSession(c.UserContext(), userID, uint(planID))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/panel/billing", fiber.StatusSeeOther)
	}
	return c.Redirect(checkoutURL, fiber.StatusSeeOther)
}

// CancelSubscription aktif aboneliği iptal eder.
func (h *PanelBillingHandler) CancelSubscription(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	if err := h.service.CancelSubscription(c.UserContext(), userID); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
			"Abonelik iptali alındı. Dönem sonuna kadar PRO özellikleri kullanmaya devam edebilirsiniz.")
	}
	return c.Redirect("/panel/billing", fiber.StatusSeeOther)
}
