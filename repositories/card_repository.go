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

// ICardRepository kartvizit veritabanı işlemleri için arayüz.
type ICardRepository interface {
	CreateCard(ctx context.Context, card *models.Card) error
	GetCardByID(ctx context.Context, id uint) (*models.Card, error)
	GetCardBySlug(ctx context.Context, slug string) (*models.Card, error)
	FindCardByLinkID(ctx context.Context, linkID uint) (*models.Card, error)
	SlugExists(ctx context.Context, slug string, excludeCardID uint) (bool, error)
	UpdateCard(ctx context.Context, card *models.Card) error
	UpdateDetail(ctx context.Context, detail *models.CardDetail) error
	DeleteCard(ctx context.Context, id uint) error
	GetAllCardsPaginated(params queryparams.ListParams) ([]models.Card, int64, error)
	FindAllCardsByUserIDPaginated(userID uint, params queryparams.ListParams) ([]models.Card, int64, error)
	CountCardsByUserID(ctx context.Context, userID uint) (int64, error)
}

// CardRepository ICardRepository arayüzünü uygular.
type CardRepository struct {
	base *BaseRepository[models.Card]
	db   *gorm.DB
}

// NewCardRepository yeni bir CardRepository örneği oluşturur.
func NewCardRepository() ICardRepository {
	return NewCardRepositoryTx(configsdatabase.GetDB())
}

// NewCardRepositoryTx verilen transaction üzerinde çalışan repository döndürür.
func NewCardRepositoryTx(tx *gorm.DB) ICardRepository {
	base := NewBaseRepository[models.Card](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at", "is_enabled", "slug"})
	return &CardRepository{base: base, db: tx}
}

// CreateCard kartı ve cascade ile detayını oluşturur.
func (r *CardRepository) CreateCard(ctx context.Context, card *models.Card) error {
	return r.base.Create(ctx, card)
}

// GetCardByID kartı ID ile bulur (Detail ve Link ile). Kart ID benzersiz
// anahtardır; birden fazla eşleşme mümkün değildir, nokta sorgusu yapılır.
func (r *CardRepository) GetCardByID(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Detail").Preload("Link").First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// GetCardBySlug kartı kullanıcı slug'ı ile bulur.
func (r *CardRepository) GetCardBySlug(ctx context.Context, slug string) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Detail").Preload("Link").
		Where("slug = ?", slug).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// FindCardByLinkID paylaşım linki üzerinden kartı bulur.
func (r *CardRepository) FindCardByLinkID(ctx context.Context, linkID uint) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Detail").Preload("Link").
		Where("link_id = ?", linkID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// SlugExists slug'ın başka bir kart tarafından kullanılıp kullanılmadığını
// kontrol eder. excludeCardID güncelleme sırasında kartın kendisini dışlar.
func (r *CardRepository) SlugExists(ctx context.Context, slug string, excludeCardID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Card{}).Where("slug = ?", slug)
	if excludeCardID != 0 {
		query = query.Where("id <> ?", excludeCardID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// UpdateCard kart ana kaydını Save ile günceller (hook'lar çalışır).
func (r *CardRepository) UpdateCard(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// UpdateDetail kart detayını Save ile günceller.
func (r *CardRepository) UpdateDetail(ctx context.Context, detail *models.CardDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

// DeleteCard kartı soft-delete eder. Link silme servis katmanının sorumluluğundadır.
func (r *CardRepository) DeleteCard(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// GetAllCardsPaginated tüm kartları listeler (dashboard için, Detail JOIN ile arama).
func (r *CardRepository) GetAllCardsPaginated(params queryparams.ListParams) ([]models.Card, int64, error) {
	return r.paginatedCards(0, params)
}

// FindAllCardsByUserIDPaginated kullanıcının kartlarını listeler.
func (r *CardRepository) FindAllCardsByUserIDPaginated(userID uint, params queryparams.ListParams) ([]models.Card, int64, error) {
	if userID == 0 {
		return nil, 0, errors.New("geçersiz kullanıcı ID")
	}
	return r.paginatedCards(userID, params)
}

// paginatedCards ortak listeleme sorgusu. userID=0 tüm kartlar demektir.
func (r *CardRepository) paginatedCards(userID uint, params queryparams.ListParams) ([]models.Card, int64, error) {
	var results []models.Card
	var totalCount int64

	query := r.db.Model(&models.Card{}).
		Joins("JOIN card_details ON card_details.card_id = cards.id AND card_details.deleted_at IS NULL")
	if userID != 0 {
		query = query.Where("cards.owner_user_id = ?", userID)
	}

	// İsim/şirket/slug araması (Türkçe karakter duyarsız)
	if params.Name != "" {
		firstFragment, firstArgs := turkishsearch.SQLFilter("card_details.first_name", params.Name)
		lastFragment, lastArgs := turkishsearch.SQLFilter("card_details.last_name", params.Name)
		companyFragment, companyArgs := turkishsearch.SQLFilter("card_details.company", params.Name)
		slugFragment, slugArgs := turkishsearch.SQLFilter("cards.slug", params.Name)
		query = query.Where(
			firstFragment+" OR "+lastFragment+" OR "+companyFragment+" OR "+slugFragment,
			firstArgs[0], lastArgs[0], companyArgs[0], slugArgs[0],
		)
	}
	if params.Status == "enabled" {
		query = query.Where("cards.is_enabled = ?", true)
	} else if params.Status == "disabled" {
		query = query.Where("cards.is_enabled = ?", false)
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
	allowedSortColumns := map[string]string{
		"id":         "cards.id",
		"created_at": "cards.created_at",
		"is_enabled": "cards.is_enabled",
		"slug":       "cards.slug",
		"first_name": "card_details.first_name",
		"last_name":  "card_details.last_name",
		"company":    "card_details.company",
	}
	orderColumn := "cards.created_at"
	if dbCol, ok := allowedSortColumns[params.SortBy]; ok {
		orderColumn = dbCol
	}

	err := query.
		Order(orderColumn + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Preload("Detail").
		Preload("Link").
		Select("cards.*").
		Find(&results).Error
	return results, totalCount, err
}

// CountCardsByUserID kullanıcının kart sayısını döndürür (kota kontrolü).
func (r *CardRepository) CountCardsByUserID(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.New("geçersiz kullanıcı ID")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).
		Where("owner_user_id = ?", userID).Count(&count).Error
	return count, err
}

var _ ICardRepository = (*CardRepository)(nil)
