package models

import (
	"time"
)

// Metric kartvizit üzerinde sayılan etkileşim türüdür.
type Metric string

const (
	MetricView      Metric = "view"       // Kart görüntüleme
	MetricLinkClick Metric = "link_click" // Kart üzerindeki link tıklaması
	MetricShare     Metric = "share"      // Paylaşım (link kopyalama / share sheet)
	MetricAdView    Metric = "ad_view"    // Reklam alanı gösterimi
	MetricLead      Metric = "lead"       // Lead formu gönderimi
	MetricSave      Metric = "save"       // vCard indirme (rehbere kaydet)
)

// AllMetrics kapalı metrik kümesi; istatistik sayfası bu sırayla raporlar.
var AllMetrics = []Metric{
	MetricView, MetricLinkClick, MetricShare, MetricAdView, MetricLead, MetricSave,
}

// IsValid metriğin bilinen değerlerden biri olup olmadığını kontrol eder.
func (m Metric) IsValid() bool {
	for _, known := range AllMetrics {
		if m == known {
			return true
		}
	}
	return false
}

// Sayaç periyotları. total kovasının Bucket alanı boş string'dir.
const (
	StatPeriodTotal = "total"
	StatPeriodMonth = "month" // Bucket: YYYY-MM
	StatPeriodDay   = "day"   // Bucket: YYYY-MM-DD
)

// CardStatBucket bir kartın tek bir metrik/periyot/kova sayacını tutar.
// (card_id, metric, period, bucket) üzerinde benzersiz index vardır;
// artırımlar ON CONFLICT ... count = count + 1 upsert'i ile atomik yapılır.
// Soft delete ve audit alanları sayaçlar için anlamsız olduğundan BaseModel kullanılmaz.
type CardStatBucket struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	CardID uint   `gorm:"not null;uniqueIndex:idx_stat_bucket,priority:1"`
	Metric Metric `gorm:"type:varchar(20);not null;uniqueIndex:idx_stat_bucket,priority:2"`
	Period string `gorm:"type:varchar(10);not null;uniqueIndex:idx_stat_bucket,priority:3"`
	Bucket string `gorm:"type:varchar(10);not null;default:'';uniqueIndex:idx_stat_bucket,priority:4"`
	Count  int64  `gorm:"not null;default:0"`
}

// MonthBucket verilen anın UTC takvim ayı anahtarını döndürür (YYYY-MM).
func MonthBucket(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// DayBucket verilen anın UTC takvim günü anahtarını döndürür (YYYY-MM-DD).
func DayBucket(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
