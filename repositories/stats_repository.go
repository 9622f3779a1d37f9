package repositories

import (
	"context"
	"errors"
	"time"

	"kart.link/configs/configsdatabase"
	"kart.link/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IStatsRepository etkileşim sayaçlarının veritabanı işlemleri için arayüz.
type IStatsRepository interface {
	// IncrementEngagement toplam, ay ve gün kovalarını TEK transaction
	// içinde atomik olarak 1 artırır. Okuma yapılmaz; artırım veritabanının
	// ON CONFLICT ... count = count + 1 upsert'i ile yapılır, böylece eş
	// zamanlı ziyaretçiler altında artış kaybı olmaz.
	IncrementEngagement(ctx context.Context, cardID uint, metric models.Metric, at time.Time) error

	GetTotals(ctx context.Context, cardID uint) (map[models.Metric]int64, error)
	GetBuckets(ctx context.Context, cardID uint, metric models.Metric, period string, limit int) ([]models.CardStatBucket, error)
}

// StatsRepository IStatsRepository arayüzünü uygular.
type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository yeni bir StatsRepository örneği oluşturur.
func NewStatsRepository() IStatsRepository {
	return NewStatsRepositoryTx(configsdatabase.GetDB())
}

// NewStatsRepositoryTx verilen bağlantı/transaction üzerinde çalışan repository döndürür.
func NewStatsRepositoryTx(tx *gorm.DB) IStatsRepository {
	return &StatsRepository{db: tx}
}

// statBucketConflict upsert'in çakışma hedefi olan benzersiz sütun kümesi.
var statBucketConflict = []clause.Column{
	{Name: "card_id"}, {Name: "metric"}, {Name: "period"}, {Name: "bucket"},
}

func (r *StatsRepository) IncrementEngagement(ctx context.Context, cardID uint, metric models.Metric, at time.Time) error {
	if cardID == 0 {
		return errors.New("geçersiz kart ID")
	}
	if !metric.IsValid() {
		return errors.New("bilinmeyen metrik: " + string(metric))
	}

	now := at.UTC()
	rows := []models.CardStatBucket{
		{CardID: cardID, Metric: metric, Period: models.StatPeriodTotal, Bucket: "", Count: 1},
		{CardID: cardID, Metric: metric, Period: models.StatPeriodMonth, Bucket: models.MonthBucket(now), Count: 1},
		{CardID: cardID, Metric: metric, Period: models.StatPeriodDay, Bucket: models.DayBucket(now), Count: 1},
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			err := tx.Clauses(clause.OnConflict{
				Columns: statBucketConflict,
				DoUpdates: clause.Assignments(map[string]interface{}{
					"count":      gorm.Expr("card_stat_buckets.count + 1"),
					"updated_at": now,
				}),
			}).Create(&rows[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTotals kartın tüm metriklerinin toplam sayaçlarını döndürür.
// Hiç etkileşim almamış metrikler 0 olarak yer alır.
func (r *StatsRepository) GetTotals(ctx context.Context, cardID uint) (map[models.Metric]int64, error) {
	var rows []models.CardStatBucket
	err := r.db.WithContext(ctx).
		Where("card_id = ? AND period = ?", cardID, models.StatPeriodTotal).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[models.Metric]int64, len(models.AllMetrics))
	for _, metric := range models.AllMetrics {
		totals[metric] = 0
	}
	for _, row := range rows {
		totals[row.Metric] = row.Count
	}
	return totals, nil
}

// GetBuckets verilen metrik ve periyodun kovalarını yeniden eskiye sıralı döndürür.
func (r *StatsRepository) GetBuckets(ctx context.Context, cardID uint, metric models.Metric, period string, limit int) ([]models.CardStatBucket, error) {
	if limit <= 0 {
		limit = 30
	}
	var rows []models.CardStatBucket
	err := r.db.WithContext(ctx).
		Where("card_id = ? AND metric = ? AND period = ?", cardID, metric, period).
		Order("bucket DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

var _ IStatsRepository = (*StatsRepository)(nil)
