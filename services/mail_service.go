package services

import (
	"fmt"

	"kart.link/configs"
	"kart.link/configs/configslog"
	"kart.link/models"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

// IMailService Resend üzerinden giden sistem e-postaları için arayüz.
// Tüm gönderimler best-effort'tur: hata loglanır, çağırana yansıtılmaz.
type IMailService interface {
	SendWelcomeAsync(name, email string)
	SendTicketNotificationAsync(ticket models.Ticket, user models.User)
	SendLeadNotificationAsync(lead models.Lead, card models.Card, ownerEmail string)
}

// MailService IMailService arayüzünü uygular.
type MailService struct {
	client *resend.Client
	sender string
}

// NewMailService Resend istemcisini yapılandırır. API anahtarı yoksa
// gönderimler atlanır (lokal geliştirme).
func NewMailService() IMailService {
	apiKey := configs.GetResendAPIKey()
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	return &MailService{client: client, sender: configs.GetMailSender()}
}

func (s *MailService) send(to []string, subject, html string) {
	if s.client == nil {
		configslog.SLog.Debugf("RESEND_API_KEY tanımlı değil, e-posta atlandı: %s", subject)
		return
	}
	params := &resend.SendEmailRequest{
		From:    s.sender,
		To:      to,
		Subject: subject,
		Html:    html,
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		configslog.Log.Error("E-posta gönderilemedi", zap.String("subject", subject), zap.Error(err))
	}
}

// SendWelcomeAsync yeni kullanıcıya hoş geldin e-postası gönderir.
func (s *MailService) SendWelcomeAsync(name, email string) {
	go s.send([]string{email},
		"kart.link'e hoş geldiniz",
		fmt.Sprintf(`<h2>Merhaba %s,</h2>
<p>kart.link hesabınız hazır. İlk dijital kartvizitinizi oluşturup paylaşmaya başlayabilirsiniz.</p>
<p>Sorularınız için destek ekibimize her zaman yazabilirsiniz.</p>`, name))
}

// SendTicketNotificationAsync destek kutusuna yeni talep bildirimi gönderir.
func (s *MailService) SendTicketNotificationAsync(ticket models.Ticket, user models.User) {
	go s.send([]string{configs.GetSupportInbox()},
		fmt.Sprintf("[Destek #%s] %s", ticket.Reference, ticket.Subject),
		fmt.Sprintf(`<p><strong>Kullanıcı:</strong> %s (%s)</p>
<p><strong>Kategori:</strong> %s</p>
<p><strong>Konu:</strong> %s</p>
<hr>
<p>%s</p>`, user.Name, user.Email, ticket.Category, ticket.Subject, ticket.Message))
}

// SendLeadNotificationAsync kart sahibine yeni lead bildirimi gönderir.
// Pazarlama listesi entegrasyonu için ziyaretçinin IP adresi de payload'a eklenir.
func (s *MailService) SendLeadNotificationAsync(lead models.Lead, card models.Card, ownerEmail string) {
	go s.send([]string{ownerEmail},
		fmt.Sprintf("Kartınız için yeni iletişim talebi: %s", lead.Name),
		fmt.Sprintf(`<p><strong>Kart:</strong> /%s</p>
<p><strong>İsim:</strong> %s</p>
<p><strong>E-posta:</strong> %s</p>
<p><strong>Telefon:</strong> %s</p>
<p><strong>Mesaj:</strong> %s</p>
<p style="color:#888;font-size:12px">IP: %s</p>`,
			card.Slug, lead.Name, lead.Email, lead.Phone, lead.Message, lead.IPAddress))
}

var _ IMailService = (*MailService)(nil)
