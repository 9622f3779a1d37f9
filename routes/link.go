package routes

import (
	link_handlers "kart.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes public kartvizit rotalarını tanımlar.
// /:key her isteği yakaladığı için bu fonksiyon diğer tüm özel rota
// gruplarından SONRA çağrılmalıdır.
func registerPublicLinkRoutes(app *fiber.App) {
	publicHandler := link_handlers.NewPublicLinkHandler()

	app.Get("/c/:slug", publicHandler.HandleSlug)                // GET /c/{slug} - kart sayfası (slug ile)
	app.Get("/:key", publicHandler.HandleLink)                   // GET /{key} - kart sayfası
	app.Get("/:key/vcard", publicHandler.HandleVCard)            // GET /{key}/vcard - vCard indirme
	app.Post("/:key/e/:metric", publicHandler.HandleEngagement)  // POST /{key}/e/{metric} - etkileşim beacon'ı
	app.Post("/:key/lead", publicHandler.HandleLead)             // POST /{key}/lead - iletişim formu
}
