package handlers // handlers/link paketi

import (
	"net/http"

	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/pkg/renderer"
	"kart.link/services"
	"kart.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PublicLinkHandler public kartvizit sayfası ve etkileşim uçları için handler.
// Bu uçlar oturum gerektirmez; sayaçlar best-effort artırılır ve sayaç hatası
// ziyaretçiye asla yansıtılmaz.
type PublicLinkHandler struct {
	cardService       services.ICardService
	engagementService services.IEngagementService
	leadService       services.ILeadService
}

// NewPublicLinkHandler yeni bir PublicLinkHandler örneği oluşturur.
func NewPublicLinkHandler() *PublicLinkHandler {
	return &PublicLinkHandler{
		cardService:       services.NewCardService(),
		engagementService: services.NewEngagementService(),
		leadService:       services.NewLeadService(),
	}
}

// viewerID ziyaretçinin kullanıcı kimliğini döndürür; oturum yoksa anonim.
func viewerID(c *fiber.Ctx) uint {
	if userID, ok := c.Locals("userID").(uint); ok {
		return userID
	}
	return services.AnonymousUserID
}

// HandleLink public kartvizit sayfasını gösterir (GET /:key).
// Görüntüleme sayacı, reklam modundaysa reklam gösterim sayacı artırılır.
func (h *PublicLinkHandler) HandleLink(c *fiber.Ctx) error {
	key := c.Params("key")

	card, err := h.cardService.GetCardByKey(c.UserContext(), key)
	if err != nil || !card.IsEnabled {
		return c.Status(fiber.StatusNotFound).Render("errors/404",
			fiber.Map{"Title": "Kart Bulunamadı"}, "layouts/error_layout")
	}
	return h.renderCardPage(c, card)
}

// HandleSlug public kartvizit sayfasını slug ile gösterir (GET /c/:slug).
// Sayaç davranışı anahtarlı erişimle aynıdır.
func (h *PublicLinkHandler) HandleSlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	card, err := h.cardService.GetCardBySlug(c.UserContext(), slug)
	if err != nil || !card.IsEnabled {
		return c.Status(fiber.StatusNotFound).Render("errors/404",
			fiber.Map{"Title": "Kart Bulunamadı"}, "layouts/error_layout")
	}
	return h.renderCardPage(c, card)
}

// renderCardPage kart sayfasını render eder ve görüntüleme sayaçlarını artırır.
// Şablondaki beacon uçları her zaman paylaşım anahtarını kullanır.
func (h *PublicLinkHandler) renderCardPage(c *fiber.Ctx, card *models.Card) error {
	actingUserID := viewerID(c)
	h.engagementService.RecordEngagementAsync(card.ID, models.MetricView, actingUserID)
	if card.Detail.CTAMode == models.CTAModeAd {
		h.engagementService.RecordEngagementAsync(card.ID, models.MetricAdView, actingUserID)
	}

	return renderer.Render(c, "public/card", "layouts/public_layout", fiber.Map{
		"Title":  card.Detail.FirstName + " " + card.Detail.LastName,
		"Card":   card,
		"Detail": card.Detail,
		"Key":    card.Link.Key,
	}, http.StatusOK)
}

// HandleEngagement istemci beacon'larından gelen etkileşimleri sayar
// (POST /:key/e/:metric). Yalnızca istemci kaynaklı metrikler kabul edilir;
// view/save/lead/ad_view sunucu tarafında sayıldığı için reddedilir.
func (h *PublicLinkHandler) HandleEngagement(c *fiber.Ctx) error {
	key := c.Params("key")
	metric := models.Metric(c.Params("metric"))

	if metric != models.MetricLinkClick && metric != models.MetricShare {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	card, err := h.cardService.GetCardByKey(c.UserContext(), key)
	if err != nil || !card.IsEnabled {
		return c.SendStatus(fiber.StatusNotFound)
	}

	h.engagementService.RecordEngagementAsync(card.ID, metric, viewerID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleVCard kartın vCard (.vcf) çıktısını indirir (GET /:key/vcard).
// İndirme, rehbere kaydetme sayacına yazılır.
func (h *PublicLinkHandler) HandleVCard(c *fiber.Ctx) error {
	key := c.Params("key")

	card, err := h.cardService.GetCardByKey(c.UserContext(), key)
	if err != nil || !card.IsEnabled {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if !card.Detail.AllowSaveContact {
		return c.SendStatus(fiber.StatusForbidden)
	}

	h.engagementService.RecordEngagementAsync(card.ID, models.MetricSave, viewerID(c))

	c.Set(fiber.HeaderContentType, "text/vcard; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+card.Slug+`.vcf"`)
	return c.SendString(utils.BuildVCard(card.Detail))
}

// HandleLead public lead formunu işler (POST /:key/lead).
func (h *PublicLinkHandler) HandleLead(c *fiber.Ctx) error {
	key := c.Params("key")

	var form services.LeadForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("public/lead_result",
			fiber.Map{"Title": "Hata", "Error": "Geçersiz form verisi."}, "layouts/public_layout")
	}

	err := h.leadService.SubmitLead(c.UserContext(), key, form, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		configslog.Log.Warn("Public - HandleLead reddedildi", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).Render("public/lead_result",
			fiber.Map{"Title": "Hata", "Error": err.Error()}, "layouts/public_layout")
	}

	return renderer.Render(c, "public/lead_result", "layouts/public_layout", fiber.Map{
		"Title":   "Teşekkürler",
		"Success": "Bilgileriniz iletildi. Kart sahibi en kısa sürede dönüş yapacaktır.",
	}, http.StatusOK)
}
