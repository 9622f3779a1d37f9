package services

import (
	"context"
	"errors"
	"fmt"

	"kart.link/configs"
	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/repositories"

	"go.uber.org/zap"
)

// AffiliateServiceError özel servis hataları
type AffiliateServiceError string

func (e AffiliateServiceError) Error() string { return string(e) }

const (
	ErrAffiliateUserNotFound AffiliateServiceError = "kullanıcı bulunamadı"
)

// AffiliateSummary kullanıcının referans programı özetidir.
type AffiliateSummary struct {
	ReferralCode  string
	ReferralURL   string
	ReferredCount int64
	ReferredBy    *models.User
}

// IAffiliateService referans programı için arayüz.
type IAffiliateService interface {
	GetSummary(ctx context.Context, userID uint) (*AffiliateSummary, error)
}

// AffiliateService IAffiliateService arayüzünü uygular.
type AffiliateService struct {
	userRepo repositories.IUserRepository
}

// NewAffiliateService yeni bir AffiliateService örneği oluşturur.
func NewAffiliateService() IAffiliateService {
	return &AffiliateService{userRepo: repositories.NewUserRepository()}
}

// GetSummary referans kodunu, paylaşım linkini ve davet edilen kullanıcı
// sayısını döndürür.
func (s *AffiliateService) GetSummary(ctx context.Context, userID uint) (*AffiliateSummary, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAffiliateUserNotFound
		}
		return nil, err
	}

	count, err := s.userRepo.CountReferredBy(ctx, userID)
	if err != nil {
		configslog.Log.Error("Referans sayısı alınamadı", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	summary := &AffiliateSummary{
		ReferralCode:  user.ReferralCode,
		ReferralURL:   fmt.Sprintf("%s/auth/register?ref=%s", configs.GetAppBaseURL(), user.ReferralCode),
		ReferredCount: count,
	}
	if user.ReferredByUserID != nil {
		if referrer, refErr := s.userRepo.FindByID(ctx, *user.ReferredByUserID); refErr == nil {
			summary.ReferredBy = referrer
		}
	}
	return summary, nil
}

var _ IAffiliateService = (*AffiliateService)(nil)
