package handlers // handlers/dashboard paketi

import (
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

// DashboardTicketHandler tüm destek taleplerinin yönetimi için handler.
type DashboardTicketHandler struct {
	service services.ITicketService
}

// NewDashboardTicketHandler yeni bir DashboardTicketHandler örneği oluşturur.
func NewDashboardTicketHandler() *DashboardTicketHandler {
	return &DashboardTicketHandler{service: services.NewTicketService()}
}

// ListTickets tüm destek taleplerini listeler.
func (h *DashboardTicketHandler) ListTickets(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetAllTicketsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Destek Talepleri",
		"Result": result,
		"Params": params,
	}
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Talepler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Ticket{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListTickets Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/tickets/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowTicket tek bir talebin detayını gösterir.
func (h *DashboardTicketHandler) ShowTicket(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/tickets")
	}

	ticket, err := h.service.GetTicketByID(c.UserContext(), uint(id), adminID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Talep bulunamadı.")
		return c.Redirect("/dashboard/tickets")
	}
	return renderer.Render(c, "dashboard/tickets/show", "layouts/dashboard_layout", fiber.Map{
		"Title":    "Destek Talebi #" + ticket.Reference,
		"Ticket":   ticket,
		"Statuses": []string{models.TicketStatusOpen, models.TicketStatusAnswered, models.TicketStatusClosed},
	}, http.StatusOK)
}

// UpdateTicketStatus talebin durumunu değiştirir.
func (h *DashboardTicketHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/tickets")
	}
	status := c.FormValue("status")

	if err := h.service.UpdateTicketStatus(c.UserContext(), uint(id), adminID, status); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Talep durumu güncellendi.")
	}
	return c.Redirect("/dashboard/tickets", fiber.StatusSeeOther)
}
