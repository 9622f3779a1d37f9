package renderer

import (
	"net/http"

	"kart.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// View tarafında kullanılan flash anahtarları.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// Render verilen view'ı layout ile render eder; flash mesajlarını ve
// oturum bilgilerini (userName, isSystem) otomatik olarak data'ya ekler.
func Render(c *fiber.Ctx, view string, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}

	// Handler data'da flash anahtarı set etmediyse session'dan oku.
	if _, ok := data[FlashSuccessKeyView]; !ok {
		if msg := flashmessages.GetFlashMessage(c, flashmessages.FlashSuccessKey); msg != "" {
			data[FlashSuccessKeyView] = msg
		}
	}
	if _, ok := data[FlashErrorKeyView]; !ok {
		if msg := flashmessages.GetFlashMessage(c, flashmessages.FlashErrorKey); msg != "" {
			data[FlashErrorKeyView] = msg
		}
	}

	if userName, ok := c.Locals("userName").(string); ok {
		data["UserName"] = userName
	}
	if isSystem, ok := c.Locals("isSystem").(bool); ok {
		data["IsSystem"] = isSystem
	}

	statusCode := http.StatusOK
	if len(status) > 0 {
		statusCode = status[0]
	}

	return c.Status(statusCode).Render(view, data, layout)
}
