package services

import (
	"context"
	"errors"
	"fmt"

	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/pkg/queryparams"
	"kart.link/repositories"

	"go.uber.org/zap"
)

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUsrNotFound      UserServiceError = "kullanıcı bulunamadı"
	ErrUsrInvalidStatus UserServiceError = "geçersiz hesap durumu"
	ErrUsrProtected     UserServiceError = "sistem kullanıcısının durumu değiştirilemez"
)

// IUserService yönetim panelindeki kullanıcı işlemleri için arayüz.
type IUserService interface {
	GetAllUsersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateUserStatus(ctx context.Context, userID uint, updatingUserID uint, status string) error
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

// GetAllUsersPaginated tüm kullanıcıları listeler (dashboard).
func (s *UserService) GetAllUsersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	users, totalCount, err := s.repo.GetAllPaginated(params)
	if err != nil {
		configslog.Log.Error("Kullanıcı listesi alınamadı", zap.Error(err))
		return nil, err
	}
	return paginatedResult(users, totalCount, params), nil
}

// UpdateUserStatus hesabı aktifleştirir veya askıya alır.
func (s *UserService) UpdateUserStatus(ctx context.Context, userID uint, updatingUserID uint, status string) error {
	if status != models.UserStatusActive && status != models.UserStatusSuspended {
		return fmt.Errorf("%w: %s", ErrUsrInvalidStatus, status)
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUsrNotFound
		}
		return err
	}
	if user.IsSystem {
		return ErrUsrProtected
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{"status": status}, updatingUserID); err != nil {
		configslog.Log.Error("Kullanıcı durumu güncellenemedi", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Kullanıcı %d durumu '%s' yapıldı (Güncelleyen: %d)", userID, status, updatingUserID)
	return nil
}

var _ IUserService = (*UserService)(nil)
