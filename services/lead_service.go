package services

import (
	"context"
	"errors"
	"fmt"

	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/pkg/queryparams"
	"kart.link/repositories"
	"kart.link/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// LeadServiceError özel servis hataları
type LeadServiceError string

func (e LeadServiceError) Error() string { return string(e) }

const (
	ErrLeadCardNotFound   LeadServiceError = "kart bulunamadı"
	ErrLeadNotAccepting   LeadServiceError = "bu kart iletişim talebi kabul etmiyor"
	ErrLeadInvalidInput   LeadServiceError = "lütfen geçerli bir isim ve e-posta girin"
	ErrLeadCreationFailed LeadServiceError = "iletişim talebi kaydedilemedi"
	ErrLeadForbidden      LeadServiceError = "bu kartın taleplerine erişim yetkiniz yok"
)

// LeadForm public lead formundan gelen veridir.
type LeadForm struct {
	Name    string `form:"name" validate:"required,min=2,max=100"`
	Email   string `form:"email" validate:"required,email,max=150"`
	Phone   string `form:"phone" validate:"omitempty,max=30"`
	Message string `form:"message" validate:"omitempty,max=2000"`
}

// ILeadService ziyaretçi iletişim talepleri için arayüz.
type ILeadService interface {
	SubmitLead(ctx context.Context, cardKey string, form LeadForm, requestIP, userAgent string) error
	GetLeadsForCardPaginated(ctx context.Context, cardID uint, requestingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// LeadService ILeadService arayüzünü uygular.
type LeadService struct {
	leadRepo   repositories.ILeadRepository
	links      ILinkService
	cardRepo   repositories.ICardRepository
	userRepo   repositories.IUserRepository
	engagement IEngagementService
	mailer     IMailService
	validate   *validator.Validate
}

// NewLeadService yeni bir LeadService örneği oluşturur.
func NewLeadService() ILeadService {
	return &LeadService{
		leadRepo:   repositories.NewLeadRepository(),
		links:      NewLinkService(),
		cardRepo:   repositories.NewCardRepository(),
		userRepo:   repositories.NewUserRepository(),
		engagement: NewEngagementService(),
		mailer:     NewMailService(),
		validate:   validator.New(),
	}
}

// SubmitLead public formdan gelen talebi kaydeder. Kart lead modunda değilse
// reddedilir. Kayıt sonrası sahibine bildirim gönderilir ve lead sayacı
// best-effort olarak artırılır.
func (s *LeadService) SubmitLead(ctx context.Context, cardKey string, form LeadForm, requestIP, userAgent string) error {
	if err := s.validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", ErrLeadInvalidInput, err)
	}

	link, err := s.links.GetLinkByKey(ctx, cardKey)
	if err != nil {
		return ErrLeadCardNotFound
	}
	card, err := s.cardRepo.FindCardByLinkID(ctx, link.ID)
	if err != nil || !card.IsEnabled {
		return ErrLeadCardNotFound
	}
	if card.Detail.CTAMode != models.CTAModeLead {
		return ErrLeadNotAccepting
	}

	lead := &models.Lead{
		CardID:    card.ID,
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Message:   form.Message,
		IPAddress: utils.BestEffortClientIP(ctx, requestIP),
		UserAgent: userAgent,
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		configslog.Log.Error("Lead kaydedilemedi", zap.Uint("card_id", card.ID), zap.Error(err))
		return ErrLeadCreationFailed
	}

	if owner, ownerErr := s.userRepo.FindByID(ctx, card.OwnerUserID); ownerErr == nil {
		s.mailer.SendLeadNotificationAsync(*lead, *card, owner.Email)
	} else {
		configslog.Log.Warn("Lead bildirimi için kart sahibi bulunamadı",
			zap.Uint("card_id", card.ID), zap.Error(ownerErr))
	}

	s.engagement.RecordEngagementAsync(card.ID, models.MetricLead, AnonymousUserID)
	configslog.SLog.Infof("Yeni lead: kart %d, e-posta %s", card.ID, lead.Email)
	return nil
}

// GetLeadsForCardPaginated kart sahibinin (veya sistem kullanıcısının)
// talepleri listelemesini sağlar.
func (s *LeadService) GetLeadsForCardPaginated(ctx context.Context, cardID uint, requestingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	card, err := s.cardRepo.GetCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLeadCardNotFound
		}
		return nil, err
	}
	if card.OwnerUserID != requestingUserID {
		requestingUser, userErr := s.userRepo.FindByID(ctx, requestingUserID)
		if userErr != nil || !requestingUser.IsSystem {
			return nil, ErrLeadForbidden
		}
	}

	params.Validate()
	leads, totalCount, err := s.leadRepo.FindAllByCardIDPaginated(cardID, params)
	if err != nil {
		configslog.Log.Error("Lead listesi alınamadı", zap.Uint("card_id", cardID), zap.Error(err))
		return nil, err
	}
	return paginatedResult(leads, totalCount, params), nil
}

var _ ILeadService = (*LeadService)(nil)
