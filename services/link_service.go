package services

import (
	"context"
	"errors"

	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/repositories"
	"kart.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LinkServiceError özel servis hataları
type LinkServiceError string

func (e LinkServiceError) Error() string { return string(e) }

const (
	ErrLinkNotFound            LinkServiceError = "link bulunamadı"
	ErrLinkKeyGenerationFailed LinkServiceError = "benzersiz link anahtarı üretilemedi"
)

// ILinkService paylaşım linki çözümleme işlemleri için arayüz. Link yaşam
// döngüsü (oluşturma, hedef bağlama, silme) kart transaction'larının içinde
// yönetildiğinden burada yalnızca okuma tarafı bulunur.
type ILinkService interface {
	GetLinkByKey(ctx context.Context, key string) (*models.Link, error)
}

// LinkService ILinkService arayüzünü uygular.
type LinkService struct {
	repo repositories.ILinkRepository
}

// NewLinkService yeni bir LinkService örneği oluşturur.
func NewLinkService() ILinkService {
	return &LinkService{repo: repositories.NewLinkRepository()}
}

// GenerateUniqueLinkKey verilen transaction içinde benzersiz bir paylaşım
// anahtarı üretir. Çakışma durumunda sınırlı sayıda yeniden dener.
func GenerateUniqueLinkKey(ctx context.Context, linkRepo repositories.ILinkRepository) (string, error) {
	const maxKeyAttempts = 5
	for i := 0; i < maxKeyAttempts; i++ {
		keyAttempt, err := utils.GenerateSecureRandomString(models.LinkKeyLength)
		if err != nil {
			return "", ErrLinkKeyGenerationFailed
		}
		exists, err := linkRepo.KeyExists(ctx, keyAttempt)
		if err != nil {
			configslog.Log.Error("Link key benzersizlik kontrolü hatası", zap.Error(err))
			return "", ErrLinkKeyGenerationFailed
		}
		if !exists {
			return keyAttempt, nil
		}
		configslog.Log.Warn("Link key çakışması, yeniden deneniyor...", zap.String("key", keyAttempt))
	}
	return "", ErrLinkKeyGenerationFailed
}

// GetLinkByKey public anahtar ile linki alır.
func (s *LinkService) GetLinkByKey(ctx context.Context, key string) (*models.Link, error) {
	if len(key) != models.LinkKeyLength {
		return nil, ErrLinkNotFound
	}
	link, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		configslog.Log.Error("GetLinkByKey: repository hatası", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return link, nil
}

var _ ILinkService = (*LinkService)(nil)
