package routes

import (
	webhook_handlers "kart.link/handlers/webhooks"

	"github.com/gofiber/fiber/v2"
)

// registerWebhookRoutes dış servislerden gelen webhook uçlarını tanımlar.
// Bu uçlar oturum middleware'lerinden geçmez; doğrulama imza iledir.
func registerWebhookRoutes(app *fiber.App) {
	stripeHandler := webhook_handlers.NewStripeWebhookHandler()

	app.Post("/webhooks/stripe", stripeHandler.HandleWebhook) // POST /webhooks/stripe
}
