package handlers // handlers/dashboard paketi

import (
	"net/http"

	"kart.link/configs/configslog"
	"kart.link/pkg/queryparams"
	"kart.link/pkg/renderer"
	"kart.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHomeHandler yönetim paneli ana sayfası için handler.
type DashboardHomeHandler struct {
	userService   services.IUserService
	cardService   services.ICardService
	ticketService services.ITicketService
}

// NewDashboardHomeHandler yeni bir DashboardHomeHandler örneği oluşturur.
func NewDashboardHomeHandler() *DashboardHomeHandler {
	return &DashboardHomeHandler{
		userService:   services.NewUserService(),
		cardService:   services.NewCardService(),
		ticketService: services.NewTicketService(),
	}
}

// DashboardHomeHandler genel sayıları gösterir: kullanıcı, kart, açık talep.
func (h *DashboardHomeHandler) DashboardHomeHandler(c *fiber.Ctx) error {
	countParams := queryparams.DefaultListParams("created_at")
	countParams.PerPage = 1

	renderData := fiber.Map{"Title": "Yönetim Paneli"}

	if result, err := h.userService.GetAllUsersPaginated(c.UserContext(), countParams); err == nil {
		renderData["UserCount"] = result.Meta.TotalItems
	} else {
		configslog.Log.Error("Dashboard - Home: kullanıcı sayısı alınamadı", zap.Error(err))
	}
	if result, err := h.cardService.GetAllCardsPaginated(c.UserContext(), countParams); err == nil {
		renderData["CardCount"] = result.Meta.TotalItems
	} else {
		configslog.Log.Error("Dashboard - Home: kart sayısı alınamadı", zap.Error(err))
	}
	if result, err := h.ticketService.GetAllTicketsPaginated(c.UserContext(), countParams); err == nil {
		renderData["TicketCount"] = result.Meta.TotalItems
	} else {
		configslog.Log.Error("Dashboard - Home: talep sayısı alınamadı", zap.Error(err))
	}

	return renderer.Render(c, "dashboard/home", "layouts/dashboard_layout", renderData, http.StatusOK)
}
