package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/repositories"

	"go.uber.org/zap"
)

// EngagementServiceError özel servis hataları
type EngagementServiceError string

func (e EngagementServiceError) Error() string { return string(e) }

const (
	ErrEngagementCardNotFound  EngagementServiceError = "kartvizit bulunamadı"        // Kalıcı, retry edilmez
	ErrEngagementInvalidMetric EngagementServiceError = "geçersiz etkileşim metriği"  // Kalıcı, retry edilmez
	ErrStatsUnavailable        EngagementServiceError = "sayaç deposuna ulaşılamıyor" // Geçici, retry edilir
	ErrStatsConflict           EngagementServiceError = "sayaç güncelleme çakışması"  // Geçici, retry edilir
	ErrStatsForbidden          EngagementServiceError = "bu istatistiklere erişim yetkiniz yok"
)

// Retry politikası: geçici hatalarda en fazla maxIncrementAttempts deneme,
// her denemede üstel bekleme, deneme başına attemptTimeout.
const (
	maxIncrementAttempts = 3
	attemptTimeout       = 3 * time.Second
	retryBaseDelay       = 100 * time.Millisecond
)

// AnonymousUserID oturumu olmayan ziyaretçiler için kimlik değeri.
// Anonim ziyaretçiler sayılır; yalnızca kartın sahibi sayım dışıdır.
const AnonymousUserID uint = 0

// CardStats panel istatistik sayfasının veri modelidir.
type CardStats struct {
	CardID  uint
	Totals  map[models.Metric]int64
	Daily   []models.CardStatBucket // Seçili metriğin son N gün kovası
	Monthly []models.CardStatBucket // Seçili metriğin son N ay kovası
	Metric  models.Metric           // Seri verisinin metriği
}

// IEngagementService kartvizit etkileşim sayaçları için arayüz.
//
// RecordEngagement en iyi çaba (best-effort) telemetri işlemidir: çağıran
// taraf asıl kullanıcı aksiyonunu (yönlendirme, indirme, paylaşım) sayacın
// sonucunu beklemeden sürdürür. Buna karşın işlemin kendisi artırımı tek
// transaction içinde atomik yapar; eş zamanlı ziyaretçiler altında artış
// kaybolmaz ve gün/ay kovalarının toplamı her zaman genel toplamla tutarlıdır.
type IEngagementService interface {
	RecordEngagement(ctx context.Context, cardID uint, metric models.Metric, actingUserID uint) error
	RecordEngagementAsync(cardID uint, metric models.Metric, actingUserID uint)
	GetCardStats(ctx context.Context, cardID uint, requestingUserID uint, metric models.Metric) (*CardStats, error)
}

// EngagementService IEngagementService arayüzünü uygular.
type EngagementService struct {
	cardRepo  repositories.ICardRepository
	statsRepo repositories.IStatsRepository
	userRepo  repositories.IUserRepository
	now       func() time.Time
	sleep     func(time.Duration) // Testlerde beklemeyi kısaltmak için
}

// NewEngagementService yeni bir EngagementService örneği oluşturur.
func NewEngagementService() IEngagementService {
	return &EngagementService{
		cardRepo:  repositories.NewCardRepository(),
		statsRepo: repositories.NewStatsRepository(),
		userRepo:  repositories.NewUserRepository(),
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// RecordEngagement verilen kartın metriğini toplam + ay + gün kovalarında artırır.
//
// Davranış:
//  1. Kart benzersiz ID ile bulunur; yoksa ErrEngagementCardNotFound
//     (kalıcı hata, yeniden denenmez).
//  2. İşlemi yapan ziyaretçi kartın sahibiyse hiçbir sayaç değişmez ve
//     başarı döner (sahibin kendi kartını görüntülemesi bilinçli bir no-op'tur).
//  3. Artırım StatsRepository üzerinden atomik upsert ile yapılır. Geçici
//     hatalar (kart sorgusunda da, artırımda da) sınırlı sayıda, üstel
//     beklemeli olarak yeniden denenir; kart bir kez çözüldükten sonra
//     sonraki denemeler yalnızca artırımı tekrarlar.
func (s *EngagementService) RecordEngagement(ctx context.Context, cardID uint, metric models.Metric, actingUserID uint) error {
	if !metric.IsValid() {
		return fmt.Errorf("%w: %s", ErrEngagementInvalidMetric, metric)
	}

	at := s.now()
	var card *models.Card
	var lastErr error
	for attempt := 1; attempt <= maxIncrementAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		err := func() error {
			if card == nil {
				found, lookupErr := s.cardRepo.GetCardByID(attemptCtx, cardID)
				if lookupErr != nil {
					if errors.Is(lookupErr, repositories.ErrNotFound) {
						return ErrEngagementCardNotFound
					}
					return lookupErr
				}
				card = found
			}
			// Sahip kendi kartıyla etkileşime girdiyse sayaçlar değişmez.
			if actingUserID != AnonymousUserID && actingUserID == card.OwnerUserID {
				return nil
			}
			return s.statsRepo.IncrementEngagement(attemptCtx, card.ID, metric, at)
		}()
		cancel()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrEngagementCardNotFound) {
			return ErrEngagementCardNotFound
		}

		lastErr = classifyStatsError(err)
		if !isTransientStatsError(lastErr) {
			configslog.Log.Error("RecordEngagement: kalıcı sayaç hatası",
				zap.Uint("card_id", cardID), zap.String("metric", string(metric)), zap.Error(err))
			return lastErr
		}
		if attempt < maxIncrementAttempts {
			configslog.Log.Warn("RecordEngagement: geçici hata, yeniden denenecek",
				zap.Uint("card_id", cardID), zap.String("metric", string(metric)),
				zap.Int("attempt", attempt), zap.Error(err))
			s.sleep(retryBaseDelay << (attempt - 1))
		}
	}

	configslog.Log.Error("RecordEngagement: deneme hakkı tükendi",
		zap.Uint("card_id", cardID), zap.String("metric", string(metric)),
		zap.Int("attempts", maxIncrementAttempts), zap.Error(lastErr))
	return lastErr
}

// RecordEngagementAsync sayımı istekten bağımsız bir goroutine'de yapar.
// Public handler'lar asıl aksiyonu geciktirmemek için bunu kullanır;
// hata yalnızca loglanır, hiçbir zaman kullanıcıya yansımaz.
func (s *EngagementService) RecordEngagementAsync(cardID uint, metric models.Metric, actingUserID uint) {
	go func() {
		// İstek context'i yanıtla birlikte iptal olacağı için bağımsız context kullanılır.
		ctx, cancel := context.WithTimeout(context.Background(), maxIncrementAttempts*(attemptTimeout+retryBaseDelay*4))
		defer cancel()
		if err := s.RecordEngagement(ctx, cardID, metric, actingUserID); err != nil {
			configslog.Log.Warn("Etkileşim sayımı başarısız (yutuldu)",
				zap.Uint("card_id", cardID), zap.String("metric", string(metric)), zap.Error(err))
		}
	}()
}

// GetCardStats kart sahibine (veya sistem kullanıcısına) istatistikleri döndürür.
func (s *EngagementService) GetCardStats(ctx context.Context, cardID uint, requestingUserID uint, metric models.Metric) (*CardStats, error) {
	if !metric.IsValid() {
		metric = models.MetricView
	}

	card, err := s.cardRepo.GetCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEngagementCardNotFound
		}
		return nil, err
	}

	if card.OwnerUserID != requestingUserID {
		requestingUser, userErr := s.userRepo.FindByID(ctx, requestingUserID)
		if userErr != nil || !requestingUser.IsSystem {
			configslog.Log.Warn("Yetkisiz istatistik erişim denemesi",
				zap.Uint("card_id", cardID), zap.Uint("user_id", requestingUserID))
			return nil, ErrStatsForbidden
		}
	}

	totals, err := s.statsRepo.GetTotals(ctx, card.ID)
	if err != nil {
		configslog.Log.Error("GetCardStats: toplamlar alınamadı", zap.Uint("card_id", cardID), zap.Error(err))
		return nil, err
	}
	daily, err := s.statsRepo.GetBuckets(ctx, card.ID, metric, models.StatPeriodDay, 30)
	if err != nil {
		return nil, err
	}
	monthly, err := s.statsRepo.GetBuckets(ctx, card.ID, metric, models.StatPeriodMonth, 12)
	if err != nil {
		return nil, err
	}

	return &CardStats{
		CardID:  card.ID,
		Totals:  totals,
		Daily:   daily,
		Monthly: monthly,
		Metric:  metric,
	}, nil
}

// classifyStatsError veritabanı hatasını servis hata taksonomisine çevirir.
func classifyStatsError(err error) error {
	if err == nil {
		return nil
	}
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "deadlock"),
		strings.Contains(message, "could not serialize"),
		strings.Contains(message, "40001"),
		strings.Contains(message, "40p01"):
		return ErrStatsConflict
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		strings.Contains(message, "connection"),
		strings.Contains(message, "timeout"),
		strings.Contains(message, "broken pipe"):
		return ErrStatsUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrStatsUnavailable, err)
	}
}

// isTransientStatsError hatanın yeniden denenebilir olup olmadığını söyler.
func isTransientStatsError(err error) bool {
	return errors.Is(err, ErrStatsUnavailable) || errors.Is(err, ErrStatsConflict)
}

var _ IEngagementService = (*EngagementService)(nil)
