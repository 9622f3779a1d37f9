package repositories

import (
	"context"
	"errors"

	"kart.link/configs/configsdatabase"
	"kart.link/models"

	"gorm.io/gorm"
)

// ISubscriptionRepository yerel abonelik kayıtları için arayüz.
type ISubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	FindActiveByUserID(ctx context.Context, userID uint) (*models.Subscription, error)
	FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*models.Subscription, error)
	Save(ctx context.Context, sub *models.Subscription) error
}

// SubscriptionRepository ISubscriptionRepository arayüzünü uygular.
type SubscriptionRepository struct {
	base *BaseRepository[models.Subscription]
	db   *gorm.DB
}

// NewSubscriptionRepository yeni bir SubscriptionRepository örneği oluşturur.
func NewSubscriptionRepository() ISubscriptionRepository {
	return NewSubscriptionRepositoryTx(configsdatabase.GetDB())
}

// NewSubscriptionRepositoryTx verilen transaction üzerinde çalışan repository döndürür.
func NewSubscriptionRepositoryTx(tx *gorm.DB) ISubscriptionRepository {
	return &SubscriptionRepository{base: NewBaseRepository[models.Subscription](tx), db: tx}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	return r.base.Create(ctx, sub)
}

// FindActiveByUserID kullanıcının aktif (veya deneme) aboneliğini döndürür.
func (r *SubscriptionRepository) FindActiveByUserID(ctx context.Context, userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").
		Where("user_id = ? AND status IN ?", userID,
			[]string{models.SubscriptionStatusActive, models.SubscriptionStatusTrialing}).
		Order("created_at DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("stripe_subscription_id = ?", stripeSubID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) Save(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

var _ ISubscriptionRepository = (*SubscriptionRepository)(nil)
