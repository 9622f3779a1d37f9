package routes

import (
	auth_handlers "kart.link/handlers/auth"
	"kart.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAuthRoutes /auth altındaki giriş, kayıt ve profil rotalarını tanımlar.
func registerAuthRoutes(app *fiber.App) {
	authHandler := auth_handlers.NewAuthHandler()

	// Oturumu OLMAYAN kullanıcılar için
	guestRoutes := app.Group("/auth")
	guestRoutes.Use(middlewares.GuestMiddleware)
	guestRoutes.Get("/login", authHandler.ShowLogin)       // GET /auth/login
	guestRoutes.Post("/login", authHandler.Login)          // POST /auth/login
	guestRoutes.Get("/register", authHandler.ShowRegister) // GET /auth/register (?ref= referans kodu)
	guestRoutes.Post("/register", authHandler.Register)    // POST /auth/register

	// Oturum GEREKTİREN rotalar
	userRoutes := app.Group("/auth")
	userRoutes.Use(middlewares.AuthMiddleware)
	userRoutes.Get("/logout", authHandler.Logout)            // GET /auth/logout
	userRoutes.Get("/profile", authHandler.ShowProfile)      // GET /auth/profile
	userRoutes.Post("/password", authHandler.UpdatePassword) // POST /auth/password
}
