package services

import (
	"context"
	"errors"
	"fmt"

	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/pkg/queryparams"
	"kart.link/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TicketServiceError özel servis hataları
type TicketServiceError string

func (e TicketServiceError) Error() string { return string(e) }

const (
	ErrTicketNotFound       TicketServiceError = "destek talebi bulunamadı"
	ErrTicketCreationFailed TicketServiceError = "destek talebi oluşturulamadı"
	ErrTicketForbidden      TicketServiceError = "bu talebe erişim yetkiniz yok"
	ErrTicketInvalidInput   TicketServiceError = "lütfen formdaki zorunlu alanları doldurun"
)

// TicketForm destek formundan gelen veridir; validator ile doğrulanır.
type TicketForm struct {
	Category string `form:"category" validate:"required,oneof=billing technical account other"`
	Subject  string `form:"subject" validate:"required,min=3,max=150"`
	Message  string `form:"message" validate:"required,min=10,max=5000"`
}

// ITicketService destek talepleri için arayüz.
type ITicketService interface {
	CreateTicket(ctx context.Context, userID uint, form TicketForm) (*models.Ticket, error)
	GetTicketByID(ctx context.Context, id uint, requestingUserID uint) (*models.Ticket, error)
	GetTicketsForUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAllTicketsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateTicketStatus(ctx context.Context, id uint, updatingUserID uint, status string) error
}

// TicketService ITicketService arayüzünü uygular.
type TicketService struct {
	repo     repositories.ITicketRepository
	userRepo repositories.IUserRepository
	mailer   IMailService
	validate *validator.Validate
}

// NewTicketService yeni bir TicketService örneği oluşturur.
func NewTicketService() ITicketService {
	return &TicketService{
		repo:     repositories.NewTicketRepository(),
		userRepo: repositories.NewUserRepository(),
		mailer:   NewMailService(),
		validate: validator.New(),
	}
}

// CreateTicket talebi doğrular, kaydeder ve destek kutusuna bildirim gönderir.
func (s *TicketService) CreateTicket(ctx context.Context, userID uint, form TicketForm) (*models.Ticket, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı", ErrTicketInvalidInput)
	}
	if err := s.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTicketInvalidInput, err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrTicketCreationFailed
	}

	ticket := &models.Ticket{
		UserID:    userID,
		Reference: uuid.NewString(),
		Category:  form.Category,
		Subject:   form.Subject,
		Message:   form.Message,
		Status:    models.TicketStatusOpen,
	}
	ctxWithUser := models.ContextWithUserID(ctx, userID)
	if err := s.repo.Create(ctxWithUser, ticket); err != nil {
		configslog.Log.Error("Destek talebi kaydedilemedi", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrTicketCreationFailed
	}

	s.mailer.SendTicketNotificationAsync(*ticket, *user)
	configslog.SLog.Infof("Destek talebi oluşturuldu: #%s (Kullanıcı: %d)", ticket.Reference, userID)
	return ticket, nil
}

// GetTicketByID talebi sahibine veya sistem kullanıcısına döndürür.
func (s *TicketService) GetTicketByID(ctx context.Context, id uint, requestingUserID uint) (*models.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if ticket.UserID != requestingUserID {
		requestingUser, userErr := s.userRepo.FindByID(ctx, requestingUserID)
		if userErr != nil || !requestingUser.IsSystem {
			return nil, ErrTicketForbidden
		}
	}
	return ticket, nil
}

// GetTicketsForUserPaginated kullanıcının taleplerini listeler.
func (s *TicketService) GetTicketsForUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	tickets, totalCount, err := s.repo.FindAllByUserIDPaginated(userID, params)
	if err != nil {
		configslog.Log.Error("Destek talepleri alınamadı", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return paginatedResult(tickets, totalCount, params), nil
}

// GetAllTicketsPaginated tüm talepleri listeler (dashboard).
func (s *TicketService) GetAllTicketsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	tickets, totalCount, err := s.repo.GetAllPaginated(params)
	if err != nil {
		configslog.Log.Error("Destek talebi listesi alınamadı", zap.Error(err))
		return nil, err
	}
	return paginatedResult(tickets, totalCount, params), nil
}

// UpdateTicketStatus talep durumunu günceller (yalnızca sistem kullanıcısı).
func (s *TicketService) UpdateTicketStatus(ctx context.Context, id uint, updatingUserID uint, status string) error {
	if status != models.TicketStatusOpen && status != models.TicketStatusAnswered && status != models.TicketStatusClosed {
		return fmt.Errorf("%w: geçersiz durum", ErrTicketInvalidInput)
	}
	updatingUser, err := s.userRepo.FindByID(ctx, updatingUserID)
	if err != nil || !updatingUser.IsSystem {
		return ErrTicketForbidden
	}
	err = s.repo.Update(ctx, id, map[string]interface{}{"status": status}, updatingUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTicketNotFound
		}
		configslog.Log.Error("Talep durumu güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

var _ ITicketService = (*TicketService)(nil)
