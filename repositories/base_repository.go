package repositories

import (
	"context"
	"errors"
	"strings"

	"kart.link/models"
	"kart.link/pkg/queryparams"

	"gorm.io/gorm"
)

// ErrNotFound repository katmanının ortak "kayıt yok" hatasıdır.
// Servis katmanı bunu kendi hata tipine çevirir.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tüm modeller için ortak CRUD işlemlerini tanımlar.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, model *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error
	Delete(ctx context.Context, id uint) error
	GetAll(params queryparams.ListParams) ([]T, int64, error)
	GetCount() (int64, error)
	SetAllowedSortColumns(columns []string)
}

// BaseRepository IBaseRepository'nin GORM implementasyonudur.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]bool
}

// NewBaseRepository verilen bağlantı (veya transaction) üzerinde çalışan
// bir base repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:                 db,
		allowedSortColumns: map[string]bool{"id": true, "created_at": true},
	}
}

// SetAllowedSortColumns sıralamada kullanılabilecek sütunları sınırlar
// (SQL injection'a karşı allowlist).
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	allowed := make(map[string]bool, len(columns))
	for _, col := range columns {
		allowed[col] = true
	}
	r.allowedSortColumns = allowed
}

// Create kaydı oluşturur; BaseModel hook'ları context'teki kullanıcıyı işler.
func (r *BaseRepository[T]) Create(ctx context.Context, model *T) error {
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID kaydı birincil anahtar ile bulur.
func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var model T
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// Update verilen alanları günceller ve updated_by bilgisini işler.
func (r *BaseRepository[T]) Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error {
	if len(data) == 0 {
		return nil
	}
	if updatedBy != 0 {
		data["updated_by"] = updatedBy
	}
	result := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete kaydı soft-delete eder; deleted_by context'teki kullanıcıdan yazılır.
func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) error {
	deletedBy := models.UserIDFromContext(ctx)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if deletedBy != 0 {
			if err := tx.Model(new(T)).Where("id = ?", id).
				UpdateColumn("deleted_by", deletedBy).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(new(T), id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetAll kayıtları sayfalayarak listeler.
func (r *BaseRepository[T]) GetAll(params queryparams.ListParams) ([]T, int64, error) {
	var results []T
	var totalCount int64

	query := r.db.Model(new(T))
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	sortBy := params.SortBy
	if !r.allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}

	err := query.
		Order(sortBy + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

// GetCount toplam kayıt sayısını döndürür (soft-delete hariç).
func (r *BaseRepository[T]) GetCount() (int64, error) {
	var count int64
	err := r.db.Model(new(T)).Count(&count).Error
	return count, err
}

var _ IBaseRepository[models.Card] = (*BaseRepository[models.Card])(nil)
