package repositories

import (
	"context"
	"errors"

	"kart.link/configs/configsdatabase"
	"kart.link/models"
	"kart.link/pkg/queryparams"

	"gorm.io/gorm"
)

// IPlanRepository abonelik planı okuma işlemleri için arayüz. Planlar seeder
// ile yönetilir; bu katman yalnızca okur.
type IPlanRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Plan, error)
	FindByName(ctx context.Context, name string) (*models.Plan, error)
	FindByStripePriceID(ctx context.Context, priceID string) (*models.Plan, error)
	GetAllPaginated(params queryparams.ListParams) ([]models.Plan, int64, error)
}

// PlanRepository IPlanRepository arayüzünü uygular.
type PlanRepository struct {
	base *BaseRepository[models.Plan]
	db   *gorm.DB
}

// NewPlanRepository yeni bir PlanRepository örneği oluşturur.
func NewPlanRepository() IPlanRepository {
	base := NewBaseRepository[models.Plan](configsdatabase.GetDB())
	base.SetAllowedSortColumns([]string{"id", "created_at", "name"})
	return &PlanRepository{base: base, db: configsdatabase.GetDB()}
}

func (r *PlanRepository) FindByID(ctx context.Context, id uint) (*models.Plan, error) {
	return r.base.FindByID(ctx, id)
}

func (r *PlanRepository) FindByName(ctx context.Context, name string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) FindByStripePriceID(ctx context.Context, priceID string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).Where("stripe_price_id = ?", priceID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetAllPaginated tüm planları listeler (yükseltme seçenekleri için).
func (r *PlanRepository) GetAllPaginated(params queryparams.ListParams) ([]models.Plan, int64, error) {
	return r.base.GetAll(params)
}

var _ IPlanRepository = (*PlanRepository)(nil)
