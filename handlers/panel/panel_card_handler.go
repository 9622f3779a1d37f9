package handlers // handlers/panel paketi

import (
	"errors"
	"fmt"
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

// PanelCardHandler kullanıcının kendi kartvizitleri için handler.
type PanelCardHandler struct {
	service services.ICardService
}

// NewPanelCardHandler yeni bir PanelCardHandler örneği oluşturur.
func NewPanelCardHandler() *PanelCardHandler {
	return &PanelCardHandler{
		service: services.NewCardService(),
	}
}

// ListCards kullanıcının kendi kartvizitlerini listeler.
func (h *PanelCardHandler) ListCards(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum bilgileri geçersiz.")
		return c.Redirect("/auth/login")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Panel ListCards: Query parse error", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.service.GetCardsForUserPaginated(c.UserContext(), userID, params)

	renderData := fiber.Map{
		"Title":  "Kartvizitlerim",
		"Result": paginatedResult,
		"Params": params,
	}
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kartvizitler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Card{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListCards Error", zap.Uint("userID", userID), zap.Error(err))
	}
	return renderer.Render(c, "panel/cards/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ShowCreateCard yeni kartvizit oluşturma formunu gösterir.
func (h *PanelCardHandler) ShowCreateCard(c *fiber.Ctx) error {
	formData := flashmessages.GetFlashFormData(c)

	return renderer.Render(c, "panel/cards/create", "layouts/panel_layout", fiber.Map{
		"Title":    "Yeni Kartvizit Oluştur",
		"CTAModes": models.AllCTAModes,
		"FormData": formData,
	})
}

// CreateCard yeni kartvizit oluşturur.
func (h *PanelCardHandler) CreateCard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	var detail models.CardDetail
	if err := c.BodyParser(&detail); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/panel/cards/create", fiber.StatusSeeOther)
	}
	slug := c.FormValue("slug")

	_, err := h.service.CreateCard(c.UserContext(), userID, slug, detail)
	if err != nil {
		if !errors.Is(err, services.ErrSlugTaken) && !errors.Is(err, services.ErrSlugInvalid) &&
			!errors.Is(err, services.ErrCardQuotaExceeded) {
			configslog.Log.Error("Panel - CreateCard Error", zap.Uint("creatorUserID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kartvizit oluşturulamadı: "+err.Error())
		_ = flashmessages.SetFlashFormData(c, detail)
		return c.Redirect("/panel/cards/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit başarıyla oluşturuldu.")
	return c.Redirect("/panel/cards", fiber.StatusFound)
}

// ShowUpdateCard kartvizit düzenleme formunu gösterir.
func (h *PanelCardHandler) ShowUpdateCard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/cards")
	}
	cardID := uint(id)

	card, err := h.service.GetCardByID(c.UserContext(), cardID, userID)
	if err != nil {
		errMsg := "Kartvizit bulunamadı veya bu kartviziti düzenleme yetkiniz yok."
		if !errors.Is(err, services.ErrCardNotFound) && !errors.Is(err, services.ErrCardForbidden) {
			errMsg = "Kartvizit bilgileri alınırken bir hata oluştu."
			configslog.Log.Error("Panel - ShowUpdateCard Error", zap.Uint("id", cardID), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/panel/cards")
	}
	formData := flashmessages.GetFlashFormData(c)

	return renderer.Render(c, "panel/cards/update", "layouts/panel_layout", fiber.Map{
		"Title":    "Kartviziti Düzenle",
		"Card":     card,
		"Detail":   card.Detail,
		"CTAModes": models.AllCTAModes,
		"FormData": formData,
	})
}

// UpdateCard kartvizit bilgilerini günceller.
func (h *PanelCardHandler) UpdateCard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/cards")
	}
	cardID := uint(id)
	redirectPathOnError := fmt.Sprintf("/panel/cards/update/%d", cardID)

	var detailUpdates models.CardDetail
	if err := c.BodyParser(&detailUpdates); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}
	slug := c.FormValue("slug")
	isEnabledStr := c.FormValue("is_enabled", "false")
	isEnabled := isEnabledStr == "true" || isEnabledStr == "on"

	err = h.service.UpdateCard(c.UserContext(), cardID, userID, slug, detailUpdates, isEnabled)
	if err != nil {
		errMsg := "Güncelleme hatası: " + err.Error()
		if errors.Is(err, services.ErrCardNotFound) || errors.Is(err, services.ErrCardForbidden) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
			return c.Redirect("/panel/cards")
		}
		if !errors.Is(err, services.ErrSlugTaken) && !errors.Is(err, services.ErrSlugInvalid) {
			configslog.Log.Error("Panel - UpdateCard Error", zap.Uint("id", cardID), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		_ = flashmessages.SetFlashFormData(c, detailUpdates)
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit başarıyla güncellendi.")
	return c.Redirect(redirectPathOnError, fiber.StatusFound)
}

// DeleteCard kartviziti siler.
func (h *PanelCardHandler) DeleteCard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/cards")
	}
	cardID := uint(id)

	err = h.service.DeleteCard(c.UserContext(), cardID, userID)
	if err != nil {
		errMsg := "Silme hatası: " + err.Error()
		if !errors.Is(err, services.ErrCardNotFound) && !errors.Is(err, services.ErrCardForbidden) {
			configslog.Log.Error("Panel - DeleteCard Error", zap.Uint("id", cardID), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit başarıyla silindi.")
	}
	return c.Redirect("/panel/cards", fiber.StatusSeeOther)
}
