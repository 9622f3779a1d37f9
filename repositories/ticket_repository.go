package repositories

import (
	"context"
	"strings"

	"kart.link/configs/configsdatabase"
	"kart.link/models"
	"kart.link/pkg/queryparams"

	"gorm.io/gorm"
)

// ITicketRepository destek talebi veritabanı işlemleri için arayüz.
type ITicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, id uint) (*models.Ticket, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error
	FindAllByUserIDPaginated(userID uint, params queryparams.ListParams) ([]models.Ticket, int64, error)
	GetAllPaginated(params queryparams.ListParams) ([]models.Ticket, int64, error)
}

// TicketRepository ITicketRepository arayüzünü uygular.
type TicketRepository struct {
	base *BaseRepository[models.Ticket]
	db   *gorm.DB
}

// NewTicketRepository yeni bir TicketRepository örneği oluşturur.
func NewTicketRepository() ITicketRepository {
	base := NewBaseRepository[models.Ticket](configsdatabase.GetDB())
	base.SetAllowedSortColumns([]string{"id", "created_at", "status", "category"})
	return &TicketRepository{base: base, db: configsdatabase.GetDB()}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.base.Create(ctx, ticket)
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	return r.base.FindByID(ctx, id)
}

func (r *TicketRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error {
	return r.base.Update(ctx, id, data, updatedBy)
}

// FindAllByUserIDPaginated kullanıcının kendi taleplerini listeler.
func (r *TicketRepository) FindAllByUserIDPaginated(userID uint, params queryparams.ListParams) ([]models.Ticket, int64, error) {
	return r.paginatedTickets(userID, params)
}

// GetAllPaginated tüm talepleri listeler (dashboard).
func (r *TicketRepository) GetAllPaginated(params queryparams.ListParams) ([]models.Ticket, int64, error) {
	return r.paginatedTickets(0, params)
}

func (r *TicketRepository) paginatedTickets(userID uint, params queryparams.ListParams) ([]models.Ticket, int64, error) {
	var results []models.Ticket
	var totalCount int64

	query := r.db.Model(&models.Ticket{}).Preload("User")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
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
	allowed := map[string]bool{"id": true, "created_at": true, "status": true, "category": true}
	sortBy := params.SortBy
	if !allowed[sortBy] {
		sortBy = "created_at"
	}

	err := query.
		Order(sortBy + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

var _ ITicketRepository = (*TicketRepository)(nil)
