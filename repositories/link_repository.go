package repositories

import (
	"context"
	"errors"

	"kart.link/configs/configsdatabase"
	"kart.link/models"

	"gorm.io/gorm"
)

// ILinkRepository paylaşım linki veritabanı işlemleri için arayüz.
type ILinkRepository interface {
	Create(ctx context.Context, link *models.Link) error
	FindByKey(ctx context.Context, key string) (*models.Link, error)
	KeyExists(ctx context.Context, key string) (bool, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
	Delete(ctx context.Context, id uint) error
}

// LinkRepository ILinkRepository arayüzünü uygular.
type LinkRepository struct {
	base *BaseRepository[models.Link]
	db   *gorm.DB
}

// NewLinkRepository yeni bir LinkRepository örneği oluşturur.
func NewLinkRepository() ILinkRepository {
	return NewLinkRepositoryTx(configsdatabase.GetDB())
}

// NewLinkRepositoryTx verilen transaction üzerinde çalışan repository döndürür.
func NewLinkRepositoryTx(tx *gorm.DB) ILinkRepository {
	return &LinkRepository{base: NewBaseRepository[models.Link](tx), db: tx}
}

func (r *LinkRepository) Create(ctx context.Context, link *models.Link) error {
	if link == nil {
		return errors.New("oluşturulacak link nil olamaz")
	}
	return r.base.Create(ctx, link)
}

func (r *LinkRepository) FindByKey(ctx context.Context, key string) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *LinkRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Link{}).Where("key = ?", key).Count(&count).Error
	return count > 0, err
}

func (r *LinkRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	return r.base.Update(ctx, id, data, updatedByUserID)
}

func (r *LinkRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ ILinkRepository = (*LinkRepository)(nil)
