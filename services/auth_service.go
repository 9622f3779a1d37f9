package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials   AuthServiceError = "e-posta veya şifre hatalı"
	ErrEmailTaken           AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrUserNotFound         AuthServiceError = "kullanıcı bulunamadı"
	ErrAccountSuspended     AuthServiceError = "hesabınız askıya alınmış, destek ile iletişime geçin"
	ErrWeakPassword         AuthServiceError = "şifre en az 8 karakter olmalıdır"
	ErrRegistrationFailed   AuthServiceError = "kayıt işlemi tamamlanamadı"
	ErrPasswordUpdateFailed AuthServiceError = "şifre güncellenemedi"
)

// IAuthService kimlik işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, name, email, password, referralCode string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo repositories.IUserRepository
	planRepo repositories.IPlanRepository
	mailer   IMailService
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return &AuthService{
		userRepo: repositories.NewUserRepository(),
		planRepo: repositories.NewPlanRepository(),
		mailer:   NewMailService(),
	}
}

// Register yeni kullanıcı kaydı oluşturur. Kullanıcı FREE plan ile başlar;
// referralCode doluysa ve geçerliyse referans ilişkisi kaydedilir.
func (s *AuthService) Register(ctx context.Context, name, email, password, referralCode string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: isim ve geçerli e-posta zorunludur", ErrRegistrationFailed)
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		configslog.Log.Error("Register: e-posta kontrolü başarısız", zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	freePlan, err := s.planRepo.FindByName(ctx, models.PlanNameFree)
	if err != nil {
		configslog.Log.Error("Register: FREE plan bulunamadı (seed eksik olabilir)", zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrRegistrationFailed
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Status:       models.UserStatusActive,
		PlanID:       freePlan.ID,
		ReferralCode: newReferralCode(),
	}

	// Referans kodu geçersizse kayıt engellenmez, ilişki sessizce atlanır.
	if referralCode != "" {
		if referrer, refErr := s.userRepo.FindByReferralCode(ctx, strings.TrimSpace(referralCode)); refErr == nil {
			user.ReferredByUserID = &referrer.ID
		} else {
			configslog.SLog.Infof("Geçersiz referans kodu ile kayıt: %s", referralCode)
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		configslog.Log.Error("Register: kullanıcı oluşturulamadı", zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	s.mailer.SendWelcomeAsync(user.Name, user.Email)
	configslog.SLog.Infof("Yeni kullanıcı kaydı: %s (ID: %d)", user.Email, user.ID)
	return user, nil
}

// Login e-posta/şifre doğrulaması yapar ve kullanıcıyı döndürür.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		configslog.Log.Error("Login: kullanıcı sorgusu başarısız", zap.Error(err))
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, ErrAccountSuspended
	}
	return user, nil
}

// GetUserByID profil sayfası için kullanıcıyı döndürür.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdatePassword mevcut şifre doğrulandıktan sonra yeni şifreyi yazar.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrPasswordUpdateFailed
	}
	err = s.userRepo.Update(ctx, userID, map[string]interface{}{"password_hash": string(hash)}, userID)
	if err != nil {
		configslog.Log.Error("UpdatePassword: güncelleme başarısız", zap.Uint("user_id", userID), zap.Error(err))
		return ErrPasswordUpdateFailed
	}
	configslog.SLog.Infof("Şifre güncellendi: kullanıcı %d", userID)
	return nil
}

// newReferralCode uuid'den kısa, okunabilir bir referans kodu türetir.
func newReferralCode() string {
	return strings.Split(uuid.NewString(), "-")[0]
}

var _ IAuthService = (*AuthService)(nil)
