package handlers // handlers/webhooks paketi

import (
	"errors"

	"kart.link/configs/configslog"
	"kart.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StripeWebhookHandler Stripe'tan gelen webhook olayları için handler.
type StripeWebhookHandler struct {
	service services.IBillingService
}

// NewStripeWebhookHandler yeni bir StripeWebhookHandler örneği oluşturur.
func NewStripeWebhookHandler() *StripeWebhookHandler {
	return &StripeWebhookHandler{service: services.NewBillingService()}
}

// HandleWebhook olayın imzasını doğrular ve işler (POST /webhooks/stripe).
// İmza hatası 400, işleme hatası 500 döner; Stripe 500 durumunda olayı
// yeniden gönderir.
func (h *StripeWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")
	if err := h.service.HandleWebhook(c.Body(), signature); err != nil {
		if errors.Is(err, services.ErrBillingWebhookInvalid) {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		configslog.Log.Error("Stripe webhook işlenemedi", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.SendStatus(fiber.StatusOK)
}
