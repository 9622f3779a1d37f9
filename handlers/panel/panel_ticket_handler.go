package handlers // handlers/panel paketi

import (
	"errors"
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

// PanelTicketHandler kullanıcının destek talepleri için handler.
type PanelTicketHandler struct {
	service services.ITicketService
}

// NewPanelTicketHandler yeni bir PanelTicketHandler örneği oluşturur.
func NewPanelTicketHandler() *PanelTicketHandler {
	return &PanelTicketHandler{service: services.NewTicketService()}
}

// ListTickets kullanıcının kendi taleplerini listeler.
func (h *PanelTicketHandler) ListTickets(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetTicketsForUserPaginated(c.UserContext(), userID, params)
	renderData := fiber.Map{
		"Title":  "Destek Taleplerim",
		"Result": result,
		"Params": params,
	}
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Talepler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Ticket{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListTickets Error", zap.Uint("userID", userID), zap.Error(err))
	}
	return renderer.Render(c, "panel/tickets/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ShowCreateTicket yeni talep formunu gösterir.
func (h *PanelTicketHandler) ShowCreateTicket(c *fiber.Ctx) error {
	return renderer.Render(c, "panel/tickets/create", "layouts/panel_layout", fiber.Map{
		"Title":      "Yeni Destek Talebi",
		"Categories": models.TicketCategories,
		"FormData":   flashmessages.GetFlashFormData(c),
	})
}

// CreateTicket yeni destek talebi oluşturur.
func (h *PanelTicketHandler) CreateTicket(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	var form services.TicketForm
	if err := c.BodyParser(&form); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/panel/tickets/create", fiber.StatusSeeOther)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), userID, form)
	if err != nil {
		if !errors.Is(err, services.ErrTicketInvalidInput) {
			configslog.Log.Error("Panel - CreateTicket Error", zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		_ = flashmessages.SetFlashFormData(c, form)
		return c.Redirect("/panel/tickets/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		"Talebiniz alındı. Takip numaranız: "+ticket.Reference)
	return c.Redirect("/panel/tickets", fiber.StatusFound)
}

// ShowTicket tek bir talebin detayını gösterir.
func (h *PanelTicketHandler) ShowTicket(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/tickets")
	}

	ticket, err := h.service.GetTicketByID(c.UserContext(), uint(id), userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Talep bulunamadı.")
		return c.Redirect("/panel/tickets")
	}
	return renderer.Render(c, "panel/tickets/show", "layouts/panel_layout", fiber.Map{
		"Title":  "Destek Talebi #" + ticket.Reference,
		"Ticket": ticket,
	}, http.StatusOK)
}
