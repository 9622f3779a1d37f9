package repositories

import (
	"context"
	"errors"
	"strings"

	"kart.link/configs/configsdatabase"
	"kart.link/models"
	"kart.link/pkg/queryparams"
	"kart.link/pkg/turkishsearch"

	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByReferralCode(ctx context.Context, code string) (*models.User, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error
	GetAllPaginated(params queryparams.ListParams) ([]models.User, int64, error)
	CountReferredBy(ctx context.Context, userID uint) (int64, error)
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	base *BaseRepository[models.User]
	db   *gorm.DB
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryTx(configsdatabase.GetDB())
}

// NewUserRepositoryTx verilen transaction üzerinde çalışan repository döndürür.
func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	base := NewBaseRepository[models.User](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "email", "status"})
	return &UserRepository{base: base, db: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.base.Create(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Plan").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Plan").
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error {
	return r.base.Update(ctx, id, data, updatedBy)
}

// GetAllPaginated kullanıcıları isim/e-posta araması ve durum filtresiyle listeler.
func (r *UserRepository) GetAllPaginated(params queryparams.ListParams) ([]models.User, int64, error) {
	var results []models.User
	var totalCount int64

	query := r.db.Model(&models.User{}).Preload("Plan")
	if params.Name != "" {
		nameFragment, nameArgs := turkishsearch.SQLFilter("name", params.Name)
		emailFragment, emailArgs := turkishsearch.SQLFilter("email", params.Name)
		query = query.Where(nameFragment+" OR "+emailFragment, nameArgs[0], emailArgs[0])
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	allowedSortColumns := map[string]bool{"id": true, "created_at": true, "name": true, "email": true}
	sortBy := params.SortBy
	if !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	err := query.
		Order(sortBy + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

// CountReferredBy verilen kullanıcının referansıyla kaydolan kullanıcı sayısını döndürür.
func (r *UserRepository) CountReferredBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("referred_by_user_id = ?", userID).
		Count(&count).Error
	return count, err
}

var _ IUserRepository = (*UserRepository)(nil)
