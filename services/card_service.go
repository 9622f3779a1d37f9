package services

import (
	"context"
	"errors"
	"fmt"

	"kart.link/configs"
	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/pkg/queryparams"
	"kart.link/repositories"
	"kart.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardServiceError özel servis hataları
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound       CardServiceError = "kartvizit bulunamadı"
	ErrCardCreationFailed CardServiceError = "kartvizit oluşturulamadı"
	ErrCardUpdateFailed   CardServiceError = "kartvizit güncellenemedi"
	ErrCardDeletionFailed CardServiceError = "kartvizit silinemedi"
	ErrCardForbidden      CardServiceError = "bu işlem için yetkiniz yok"
	ErrCrdInvalidInput    CardServiceError = "geçersiz girdi verisi"
	ErrCardQuotaExceeded  CardServiceError = "plan kart kotanız dolu, yükseltme yapabilirsiniz"
	ErrSlugTaken          CardServiceError = "bu kart adresi (slug) zaten kullanımda, lütfen farklı bir adres seçin"
	ErrSlugInvalid        CardServiceError = "kart adresi yalnızca küçük harf, rakam ve tire içerebilir"

	ErrCrdLinkCreationFailed CardServiceError = "kartvizit için paylaşım linki oluşturulamadı"
	ErrCrdLinkDeletionFailed CardServiceError = "kartvizit linki silinemedi"
)

// ValidationError alan bazlı doğrulama hatasıdır; kullanıcıya hangi form
// alanının sorunlu olduğu söylenir.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ICardService kartvizit işlemleri için arayüz.
type ICardService interface {
	CreateCard(ctx context.Context, ownerUserID uint, slug string, detailData models.CardDetail) (*models.Card, error)
	GetCardByID(ctx context.Context, id uint, requestingUserID uint) (*models.Card, error)
	GetCardByKey(ctx context.Context, key string) (*models.Card, error)
	GetCardBySlug(ctx context.Context, slug string) (*models.Card, error)
	GetCardsForUserPaginated(ctx context.Context, ownerUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAllCardsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateCard(ctx context.Context, id uint, updatingUserID uint, slug string, detailData models.CardDetail, isEnabled bool) error
	DeleteCard(ctx context.Context, id uint, deletingUserID uint) error
	GetCardCountForUser(ctx context.Context, ownerUserID uint) (int64, error)
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo     repositories.ICardRepository
	linkRepo repositories.ILinkRepository
	userRepo repositories.IUserRepository
	db       *gorm.DB
}

// NewCardService yeni bir CardService örneği oluşturur.
func NewCardService() ICardService {
	return &CardService{
		repo:     repositories.NewCardRepository(),
		linkRepo: repositories.NewLinkRepository(),
		userRepo: repositories.NewUserRepository(),
		db:       configs.GetDB(),
	}
}

// --- Doğrulama ---

// ValidateCardDetail kart içeriğini doğrular. maxSocialLinks plan limitinden gelir.
// Hatalar alan adıyla birlikte döner ki form tarafında ilgili bölüm işaretlenebilsin.
func ValidateCardDetail(detail models.CardDetail, maxSocialLinks int) error {
	if detail.FirstName == "" || detail.LastName == "" {
		return &ValidationError{Field: "first_name", Message: "isim ve soyisim zorunludur"}
	}
	if len([]rune(detail.Bio)) > models.BioMaxLength {
		return &ValidationError{Field: "bio", Message: fmt.Sprintf("hakkında metni en fazla %d karakter olabilir", models.BioMaxLength)}
	}
	if maxSocialLinks > 0 && detail.PopulatedSocialLinkCount() > maxSocialLinks {
		return &ValidationError{
			Field:   "social_links",
			Message: fmt.Sprintf("planınız en fazla %d sosyal link alanına izin veriyor", maxSocialLinks),
		}
	}
	return validateCTAConfig(detail)
}

// validateCTAConfig aksiyon alanının tek modlu (tagged union) kuralını uygular:
// seçilen moda ait olmayan alt alanlar dolu olamaz.
func validateCTAConfig(detail models.CardDetail) error {
	mode := detail.CTAMode
	if mode == "" {
		mode = models.CTAModeNone
	}
	if !mode.IsValid() {
		return &ValidationError{Field: "cta_mode", Message: "geçersiz aksiyon türü"}
	}

	if mode != models.CTAModeBooking && detail.BookingURL != "" {
		return &ValidationError{Field: "booking_url", Message: "randevu linki yalnızca randevu modunda doldurulabilir"}
	}
	if mode != models.CTAModeButton && (detail.ButtonLabel != "" || detail.ButtonURL != "") {
		return &ValidationError{Field: "button_url", Message: "buton alanları yalnızca buton modunda doldurulabilir"}
	}
	if mode != models.CTAModeAd && (detail.AdImageURL != "" || detail.AdTargetURL != "") {
		return &ValidationError{Field: "ad_image_url", Message: "reklam alanları yalnızca reklam modunda doldurulabilir"}
	}
	if mode != models.CTAModeLead && detail.LeadPrompt != "" {
		return &ValidationError{Field: "lead_prompt", Message: "form metni yalnızca lead modunda doldurulabilir"}
	}

	switch mode {
	case models.CTAModeBooking:
		if detail.BookingURL == "" {
			return &ValidationError{Field: "booking_url", Message: "randevu modu için randevu linki zorunludur"}
		}
	case models.CTAModeButton:
		if detail.ButtonLabel == "" || detail.ButtonURL == "" {
			return &ValidationError{Field: "button_url", Message: "buton modu için etiket ve URL zorunludur"}
		}
	case models.CTAModeAd:
		if detail.AdImageURL == "" || detail.AdTargetURL == "" {
			return &ValidationError{Field: "ad_image_url", Message: "reklam modu için görsel ve hedef URL zorunludur"}
		}
	}
	return nil
}

// normalizeSlug slug'ı türetir/doğrular. Boş bırakılırsa isimden üretilir.
func normalizeSlug(slug string, detail models.CardDetail) (string, error) {
	if slug == "" {
		slug = utils.Slugify(detail.FirstName + " " + detail.LastName)
	} else {
		slug = utils.Slugify(slug)
	}
	if !utils.IsValidSlug(slug) {
		return "", ErrSlugInvalid
	}
	return slug, nil
}

// --- Servis Metodları ---

// CreateCard yeni bir kartviziti, detayını ve paylaşım linkini TEK BİR
// TRANSACTION içinde oluşturur. Plan kotası ve slug benzersizliği
// transaction içinde kontrol edilir.
func (s *CardService) CreateCard(ctx context.Context, ownerUserID uint, slug string, detailData models.CardDetail) (*models.Card, error) {
	if ownerUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrCrdInvalidInput)
	}

	owner, err := s.userRepo.FindByID(ctx, ownerUserID)
	if err != nil {
		configslog.Log.Error("CreateCard: kullanıcı bulunamadı", zap.Uint("user_id", ownerUserID), zap.Error(err))
		return nil, ErrCardCreationFailed
	}

	if err := ValidateCardDetail(detailData, owner.Plan.MaxSocialLinks); err != nil {
		return nil, err
	}
	normalizedSlug, err := normalizeSlug(slug, detailData)
	if err != nil {
		return nil, err
	}

	var createdCard *models.Card
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, ownerUserID)
		linkRepoTx := repositories.NewLinkRepositoryTx(tx)
		cardRepoTx := repositories.NewCardRepositoryTx(tx)

		// a. Plan kotası (transaction içinde, eş zamanlı create'lere karşı)
		cardCount, err := cardRepoTx.CountCardsByUserID(txCtx, ownerUserID)
		if err != nil {
			return ErrCardCreationFailed
		}
		if owner.Plan.MaxCards > 0 && cardCount >= int64(owner.Plan.MaxCards) {
			return ErrCardQuotaExceeded
		}

		// b. Slug benzersizliği
		taken, err := cardRepoTx.SlugExists(txCtx, normalizedSlug, 0)
		if err != nil {
			return ErrCardCreationFailed
		}
		if taken {
			return ErrSlugTaken
		}

		// c. Paylaşım anahtarı üret ve linki oluştur (TargetID henüz 0)
		linkKey, err := GenerateUniqueLinkKey(txCtx, linkRepoTx)
		if err != nil {
			return ErrCrdLinkCreationFailed
		}
		link := models.Link{
			Key:           linkKey,
			CreatorUserID: ownerUserID,
		}
		if err := linkRepoTx.Create(txCtx, &link); err != nil {
			return ErrCrdLinkCreationFailed
		}

		// d. Kart ve detayını oluştur
		card := models.Card{
			LinkID:      link.ID,
			OwnerUserID: ownerUserID,
			Slug:        normalizedSlug,
			IsEnabled:   true,
			Detail:      detailData,
		}
		if err := cardRepoTx.CreateCard(txCtx, &card); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			return ErrCardCreationFailed
		}

		// e. Linkin hedefini karta bağla
		if err := linkRepoTx.Update(txCtx, link.ID, map[string]interface{}{"target_id": card.ID}, ownerUserID); err != nil {
			return ErrCrdLinkCreationFailed
		}

		card.Link = link
		card.Link.TargetID = card.ID
		createdCard = &card
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Kartvizit oluşturuldu: ID %d, Slug: %s, Key: %s (Sahip: %d)",
		createdCard.ID, createdCard.Slug, createdCard.Link.Key, ownerUserID)
	return createdCard, nil
}

// GetCardByID belirli bir kartviziti ID ve kullanıcı yetkisine göre getirir.
func (s *CardService) GetCardByID(ctx context.Context, id uint, requestingUserID uint) (*models.Card, error) {
	card, err := s.repo.GetCardByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("GetCardByID: repository hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	requestingUser, userErr := s.userRepo.FindByID(ctx, requestingUserID)
	if userErr != nil {
		return nil, ErrCardForbidden
	}
	if !requestingUser.IsSystem && card.OwnerUserID != requestingUserID {
		configslog.Log.Warn("Yetkisiz kartvizit erişim denemesi",
			zap.Uint("card_id", id), zap.Uint("user_id", requestingUserID), zap.Uint("owner_id", card.OwnerUserID))
		return nil, ErrCardForbidden
	}
	return card, nil
}

// GetCardByKey public paylaşım anahtarı ile yayındaki kartviziti getirir.
func (s *CardService) GetCardByKey(ctx context.Context, key string) (*models.Card, error) {
	if len(key) != models.LinkKeyLength {
		return nil, ErrCardNotFound
	}
	link, err := s.linkRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("GetCardByKey: link sorgusu hatası", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	card, err := s.repo.GetCardByID(ctx, link.TargetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Error("Tutarsız veri: link var ama kartvizit yok",
				zap.Uint("link_id", link.ID), zap.Uint("target_id", link.TargetID))
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if !card.IsEnabled {
		configslog.SLog.Infof("Pasif kartvizit erişim denemesi: key=%s card_id=%d", key, card.ID)
		return nil, ErrCardNotFound
	}
	return card, nil
}

// GetCardBySlug kullanıcı slug'ı ile yayındaki kartviziti getirir (public).
func (s *CardService) GetCardBySlug(ctx context.Context, slug string) (*models.Card, error) {
	if slug == "" {
		return nil, ErrCardNotFound
	}
	card, err := s.repo.GetCardBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("GetCardBySlug: repository hatası", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	if !card.IsEnabled {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// GetCardsForUserPaginated kullanıcıya ait kartvizitleri sayfalayarak getirir.
func (s *CardService) GetCardsForUserPaginated(ctx context.Context, ownerUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if ownerUserID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	params.Validate()
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}

	cards, totalCount, err := s.repo.FindAllCardsByUserIDPaginated(ownerUserID, params)
	if err != nil {
		configslog.Log.Error("Kullanıcı kartvizitleri alınırken hata", zap.Uint("owner_user_id", ownerUserID), zap.Error(err))
		return nil, err
	}
	return paginatedResult(cards, totalCount, params), nil
}

// GetAllCardsPaginated tüm kartları listeler (dashboard).
func (s *CardService) GetAllCardsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}
	cards, totalCount, err := s.repo.GetAllCardsPaginated(params)
	if err != nil {
		configslog.Log.Error("Kartvizit listesi alınırken hata", zap.Error(err))
		return nil, err
	}
	return paginatedResult(cards, totalCount, params), nil
}

func paginatedResult(data interface{}, totalCount int64, params queryparams.ListParams) *queryparams.PaginatedResult {
	return &queryparams.PaginatedResult{
		Data: data,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}
}

// UpdateCard mevcut bir kartviziti, detayını ve slug'ını günceller.
// Slug değişiyorsa benzersizlik kontrolü transaction içinde yapılır.
func (s *CardService) UpdateCard(ctx context.Context, id uint, updatingUserID uint, slug string, detailData models.CardDetail, isEnabled bool) error {
	if id == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya güncelleyen kullanıcı ID", ErrCrdInvalidInput)
	}

	updatingUser, err := s.userRepo.FindByID(ctx, updatingUserID)
	if err != nil {
		return ErrCardForbidden
	}
	if err := ValidateCardDetail(detailData, updatingUser.Plan.MaxSocialLinks); err != nil {
		return err
	}
	normalizedSlug, err := normalizeSlug(slug, detailData)
	if err != nil {
		return err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, updatingUserID)
		cardRepoTx := repositories.NewCardRepositoryTx(tx)

		// a. Mevcut kaydı kilitli olarak al
		var existingCard models.Card
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Detail").First(&existingCard, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			configslog.Log.Error("UpdateCard: kayıt bulunamadı (kilitli)", zap.Uint("id", id), zap.Error(err))
			return err
		}

		// b. Yetki kontrolü
		if !updatingUser.IsSystem && existingCard.OwnerUserID != updatingUserID {
			return ErrCardForbidden
		}

		// c. Slug değişiyorsa benzersizlik kontrolü
		if normalizedSlug != existingCard.Slug {
			taken, err := cardRepoTx.SlugExists(txCtx, normalizedSlug, existingCard.ID)
			if err != nil {
				return ErrCardUpdateFailed
			}
			if taken {
				return ErrSlugTaken
			}
			existingCard.Slug = normalizedSlug
		}
		existingCard.IsEnabled = isEnabled
		// OwnerUserID değiştirilmez.

		// d. Detay alanlarını kopyala (ID ve CardID korunur)
		existingDetail := existingCard.Detail
		detailID, cardID := existingDetail.ID, existingDetail.CardID
		baseModel := existingDetail.BaseModel
		existingDetail = detailData
		existingDetail.BaseModel = baseModel
		existingDetail.ID = detailID
		existingDetail.CardID = cardID

		if err := cardRepoTx.UpdateDetail(txCtx, &existingDetail); err != nil {
			configslog.Log.Error("Kartvizit detayı güncellenirken hata", zap.Uint("detail_id", existingDetail.ID), zap.Error(err))
			return ErrCardUpdateFailed
		}
		existingCard.Detail = existingDetail
		if err := cardRepoTx.UpdateCard(txCtx, &existingCard); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			configslog.Log.Error("Kartvizit güncellenirken hata", zap.Uint("id", id), zap.Error(err))
			return ErrCardUpdateFailed
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	configslog.SLog.Infof("Kartvizit güncellendi: ID %d (Güncelleyen: %d)", id, updatingUserID)
	return nil
}

// DeleteCard bir kartviziti ve ilişkili paylaşım linkini siler.
func (s *CardService) DeleteCard(ctx context.Context, id uint, deletingUserID uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya silen kullanıcı ID", ErrCrdInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, deletingUserID)
		cardRepoTx := repositories.NewCardRepositoryTx(tx)
		linkRepoTx := repositories.NewLinkRepositoryTx(tx)
		userRepoTx := repositories.NewUserRepositoryTx(tx)

		var cardToDelete models.Card
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Link").First(&cardToDelete, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			configslog.Log.Error("DeleteCard: kayıt bulunamadı (kilitli)", zap.Uint("id", id), zap.Error(err))
			return err
		}

		requestingUser, userErr := userRepoTx.FindByID(txCtx, deletingUserID)
		if userErr != nil {
			return ErrCardForbidden
		}
		if !requestingUser.IsSystem && cardToDelete.OwnerUserID != deletingUserID {
			return ErrCardForbidden
		}

		if err := cardRepoTx.DeleteCard(txCtx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCardNotFound
			}
			configslog.Log.Error("Kartvizit silinirken transaction hatası", zap.Uint("id", id), zap.Error(err))
			return ErrCardDeletionFailed
		}
		if cardToDelete.LinkID != 0 {
			if err := linkRepoTx.Delete(txCtx, cardToDelete.LinkID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
				configslog.Log.Error("Link silinirken transaction hatası", zap.Uint("link_id", cardToDelete.LinkID), zap.Error(err))
				return ErrCrdLinkDeletionFailed
			}
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	configslog.SLog.Infof("Kartvizit ve linki silindi: Card ID %d (Silen: %d)", id, deletingUserID)
	return nil
}

// GetCardCountForUser kullanıcıya ait kartvizit sayısını alır.
func (s *CardService) GetCardCountForUser(ctx context.Context, ownerUserID uint) (int64, error) {
	count, err := s.repo.CountCardsByUserID(ctx, ownerUserID)
	if err != nil {
		configslog.Log.Error("Kullanıcı kartvizit sayısı alınırken hata", zap.Uint("owner_user_id", ownerUserID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

var _ ICardService = (*CardService)(nil)
