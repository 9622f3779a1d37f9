package repositories

import (
	"context"

	"kart.link/configs/configsdatabase"
	"kart.link/models"
	"kart.link/pkg/queryparams"

	"gorm.io/gorm"
)

// ILeadRepository lead kayıtları için arayüz.
type ILeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	FindAllByCardIDPaginated(cardID uint, params queryparams.ListParams) ([]models.Lead, int64, error)
}

// LeadRepository ILeadRepository arayüzünü uygular.
type LeadRepository struct {
	base *BaseRepository[models.Lead]
	db   *gorm.DB
}

// NewLeadRepository yeni bir LeadRepository örneği oluşturur.
func NewLeadRepository() ILeadRepository {
	return NewLeadRepositoryTx(configsdatabase.GetDB())
}

// NewLeadRepositoryTx verilen transaction üzerinde çalışan repository döndürür.
func NewLeadRepositoryTx(tx *gorm.DB) ILeadRepository {
	return &LeadRepository{base: NewBaseRepository[models.Lead](tx), db: tx}
}

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return r.base.Create(ctx, lead)
}

// FindAllByCardIDPaginated kartın lead kayıtlarını yeniden eskiye listeler.
func (r *LeadRepository) FindAllByCardIDPaginated(cardID uint, params queryparams.ListParams) ([]models.Lead, int64, error) {
	var results []models.Lead
	var totalCount int64

	query := r.db.Model(&models.Lead{}).Where("card_id = ?", cardID)
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	err := query.
		Order("created_at DESC").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

var _ ILeadRepository = (*LeadRepository)(nil)
