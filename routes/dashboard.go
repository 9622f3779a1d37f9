package routes

import (
	dashboard_handlers "kart.link/handlers/dashboard"
	"kart.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki yönetim rotalarını tanımlar.
// Sadece sistem yöneticilerinin (IsSystem == true) erişimine izin verilir.
func registerDashboardRoutes(app *fiber.App) {
	homeHandler := dashboard_handlers.NewDashboardHomeHandler()
	userHandler := dashboard_handlers.NewDashboardUserHandler()
	cardHandler := dashboard_handlers.NewDashboardCardHandler()
	ticketHandler := dashboard_handlers.NewDashboardTicketHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
		middlewares.RequireSystem(),  // 3. Sistem yöneticisi mi?
	)

	// --- Dashboard Ana Sayfa ---
	dashboardGroup.Get("/home", homeHandler.DashboardHomeHandler) // GET /dashboard/home

	// --- Kullanıcı Yönetimi ---
	dashboardGroup.Get("/users", userHandler.ListUsers)                    // GET /dashboard/users
	dashboardGroup.Post("/users/status/:id", userHandler.UpdateUserStatus) // POST /dashboard/users/status/{id}

	// --- Kartvizit Yönetimi ---
	dashboardGroup.Get("/cards", cardHandler.ListCards)                // GET /dashboard/cards
	dashboardGroup.Post("/cards/delete/:id", cardHandler.DeleteCard)   // POST /dashboard/cards/delete/{id}
	dashboardGroup.Delete("/cards/delete/:id", cardHandler.DeleteCard) // DELETE /dashboard/cards/delete/{id}

	// --- Destek Talepleri ---
	dashboardGroup.Get("/tickets", ticketHandler.ListTickets)                    // GET /dashboard/tickets
	dashboardGroup.Get("/tickets/:id", ticketHandler.ShowTicket)                 // GET /dashboard/tickets/{id}
	dashboardGroup.Post("/tickets/status/:id", ticketHandler.UpdateTicketStatus) // POST /dashboard/tickets/status/{id}
}
