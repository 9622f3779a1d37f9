package routes

import (
	panel_handlers "kart.link/handlers/panel"
	"kart.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları ve middleware'leri tanımlar.
// Sadece normal kullanıcıların (IsSystem == false) erişimine izin verilir.
func registerPanelRoutes(app *fiber.App) {
	panelHomeHandler := panel_handlers.NewPanelHomeHandler()
	cardHandler := panel_handlers.NewPanelCardHandler()
	statsHandler := panel_handlers.NewPanelStatsHandler()
	billingHandler := panel_handlers.NewPanelBillingHandler()
	affiliateHandler := panel_handlers.NewPanelAffiliateHandler()
	ticketHandler := panel_handlers.NewPanelTicketHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
		middlewares.RequireUser(),    // 3. Normal kullanıcı mı?
	)

	// --- Panel Ana Sayfa ---
	panelGroup.Get("/home", panelHomeHandler.PanelHomeHandler) // GET /panel/home

	// --- Kullanıcının Kendi Kartvizitleri ---
	panelGroup.Get("/cards", cardHandler.ListCards)                 // GET /panel/cards
	panelGroup.Get("/cards/create", cardHandler.ShowCreateCard)     // GET /panel/cards/create
	panelGroup.Post("/cards/create", cardHandler.CreateCard)        // POST /panel/cards/create
	panelGroup.Get("/cards/update/:id", cardHandler.ShowUpdateCard) // GET /panel/cards/update/{id}
	panelGroup.Post("/cards/update/:id", cardHandler.UpdateCard)    // POST /panel/cards/update/{id}
	panelGroup.Post("/cards/delete/:id", cardHandler.DeleteCard)    // POST /panel/cards/delete/{id} (Formdan silme)
	panelGroup.Delete("/cards/delete/:id", cardHandler.DeleteCard)  // DELETE /panel/cards/delete/{id} (JS/API için)

	// --- Kart İstatistikleri ve Lead'ler ---
	panelGroup.Get("/cards/stats/:id", statsHandler.ShowCardStats) // GET /panel/cards/stats/{id}
	panelGroup.Get("/cards/leads/:id", statsHandler.ListLeads)     // GET /panel/cards/leads/{id}

	// --- Abonelik ---
	panelGroup.Get("/billing", billingHandler.ShowBilling)                  // GET /panel/billing
	panelGroup.Post("/billing/checkout/:planId", billingHandler.StartCheckout) // POST /panel/billing/checkout/{planId}
	panelGroup.Post("/billing/cancel", billingHandler.CancelSubscription)   // POST /panel/billing/cancel

	// --- Davet Programı ---
	panelGroup.Get("/affiliate", affiliateHandler.ShowAffiliate) // GET /panel/affiliate

	// --- Destek Talepleri ---
	panelGroup.Get("/tickets", ticketHandler.ListTickets)             // GET /panel/tickets
	panelGroup.Get("/tickets/create", ticketHandler.ShowCreateTicket) // GET /panel/tickets/create
	panelGroup.Post("/tickets/create", ticketHandler.CreateTicket)    // POST /panel/tickets/create
	panelGroup.Get("/tickets/:id", ticketHandler.ShowTicket)          // GET /panel/tickets/{id}

	// --- Profil ---
	// /auth/profile rotası kullanılır. Panel menüsünden link verilir.
}
