package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/pkg/queryparams"
	"kart.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// --- Sahte repository'ler ---

// fakeCardRepo kart sorgularını bellek içi haritadan yanıtlar. failures > 0
// olduğu sürece GetCardByID failErr ile başarısız olur.
type fakeCardRepo struct {
	cards    map[uint]*models.Card
	lookups  int
	failures int
	failErr  error
}

func (f *fakeCardRepo) GetCardByID(ctx context.Context, id uint) (*models.Card, error) {
	f.lookups++
	if f.failures > 0 {
		f.failures--
		return nil, f.failErr
	}
	card, ok := f.cards[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return card, nil
}

func (f *fakeCardRepo) CreateCard(ctx context.Context, card *models.Card) error { return nil }
func (f *fakeCardRepo) GetCardBySlug(ctx context.Context, slug string) (*models.Card, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeCardRepo) FindCardByLinkID(ctx context.Context, linkID uint) (*models.Card, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeCardRepo) SlugExists(ctx context.Context, slug string, excludeCardID uint) (bool, error) {
	return false, nil
}
func (f *fakeCardRepo) UpdateCard(ctx context.Context, card *models.Card) error          { return nil }
func (f *fakeCardRepo) UpdateDetail(ctx context.Context, detail *models.CardDetail) error { return nil }
func (f *fakeCardRepo) DeleteCard(ctx context.Context, id uint) error                     { return nil }
func (f *fakeCardRepo) GetAllCardsPaginated(params queryparams.ListParams) ([]models.Card, int64, error) {
	return nil, 0, nil
}
func (f *fakeCardRepo) FindAllCardsByUserIDPaginated(userID uint, params queryparams.ListParams) ([]models.Card, int64, error) {
	return nil, 0, nil
}
func (f *fakeCardRepo) CountCardsByUserID(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

// fakeStatsRepo artışları bellek içi kovalarda tutar. failures > 0 olduğu
// sürece her çağrı failErr ile başarısız olur; gerçek repodaki gibi üç kova
// tek "transaction" gibi birlikte artar.
type fakeStatsRepo struct {
	mu       sync.Mutex
	buckets  map[string]int64
	calls    int
	failures int
	failErr  error
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{buckets: make(map[string]int64)}
}

func bucketKey(cardID uint, metric models.Metric, period, bucket string) string {
	return fmt.Sprintf("%d|%s|%s|%s", cardID, metric, period, bucket)
}

func (f *fakeStatsRepo) IncrementEngagement(ctx context.Context, cardID uint, metric models.Metric, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return f.failErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	now := at.UTC()
	f.buckets[bucketKey(cardID, metric, models.StatPeriodTotal, "")]++
	f.buckets[bucketKey(cardID, metric, models.StatPeriodMonth, models.MonthBucket(now))]++
	f.buckets[bucketKey(cardID, metric, models.StatPeriodDay, models.DayBucket(now))]++
	return nil
}

func (f *fakeStatsRepo) GetTotals(ctx context.Context, cardID uint) (map[models.Metric]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make(map[models.Metric]int64, len(models.AllMetrics))
	for _, metric := range models.AllMetrics {
		totals[metric] = f.buckets[bucketKey(cardID, metric, models.StatPeriodTotal, "")]
	}
	return totals, nil
}

func (f *fakeStatsRepo) GetBuckets(ctx context.Context, cardID uint, metric models.Metric, period string, limit int) ([]models.CardStatBucket, error) {
	return nil, nil
}

func (f *fakeStatsRepo) count(cardID uint, metric models.Metric, period, bucket string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[bucketKey(cardID, metric, period, bucket)]
}

// periodSum verilen periyottaki tüm kovaların toplamını döndürür.
func (f *fakeStatsRepo) periodSum(cardID uint, metric models.Metric, period string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := bucketKey(cardID, metric, period, "")
	var sum int64
	for key, count := range f.buckets {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			sum += count
		}
	}
	return sum
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeUserRepo) FindByReferralCode(ctx context.Context, code string) (*models.User, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeUserRepo) Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error {
	return nil
}
func (f *fakeUserRepo) GetAllPaginated(params queryparams.ListParams) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (f *fakeUserRepo) CountReferredBy(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

// --- Test kurulumu ---

const (
	testCardID  uint = 42
	testOwnerID uint = 7
)

func newTestEngagementService(statsRepo *fakeStatsRepo) (*EngagementService, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	svc := &EngagementService{
		cardRepo: &fakeCardRepo{cards: map[uint]*models.Card{
			testCardID: {BaseModel: models.BaseModel{ID: testCardID}, OwnerUserID: testOwnerID, IsEnabled: true},
		}},
		statsRepo: statsRepo,
		userRepo:  &fakeUserRepo{users: map[uint]*models.User{}},
		now:       func() time.Time { return time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC) },
		sleep:     func(d time.Duration) { *sleeps = append(*sleeps, d) },
	}
	return svc, sleeps
}

// --- Testler ---

func TestRecordEngagement_IncrementsAllPeriods(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, _ := newTestEngagementService(statsRepo)

	err := svc.RecordEngagement(context.Background(), testCardID, models.MetricView, AnonymousUserID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, statsRepo.count(testCardID, models.MetricView, models.StatPeriodTotal, ""))
	assert.EqualValues(t, 1, statsRepo.count(testCardID, models.MetricView, models.StatPeriodMonth, "2025-03"))
	assert.EqualValues(t, 1, statsRepo.count(testCardID, models.MetricView, models.StatPeriodDay, "2025-03-15"))
}

func TestRecordEngagement_TwoCallsCountTwo(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, _ := newTestEngagementService(statsRepo)

	require.NoError(t, svc.RecordEngagement(context.Background(), testCardID, models.MetricShare, AnonymousUserID))
	require.NoError(t, svc.RecordEngagement(context.Background(), testCardID, models.MetricShare, AnonymousUserID))

	assert.EqualValues(t, 2, statsRepo.count(testCardID, models.MetricShare, models.StatPeriodTotal, ""))
	assert.EqualValues(t, 2, statsRepo.count(testCardID, models.MetricShare, models.StatPeriodDay, "2025-03-15"))
}

func TestRecordEngagement_OwnerIsNoOp(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, _ := newTestEngagementService(statsRepo)

	// Sahibin kendi kartını görüntülemesi başarı döner ama hiçbir sayaç değişmez.
	err := svc.RecordEngagement(context.Background(), testCardID, models.MetricView, testOwnerID)
	require.NoError(t, err)

	assert.Zero(t, statsRepo.calls)
	assert.EqualValues(t, 0, statsRepo.count(testCardID, models.MetricView, models.StatPeriodTotal, ""))
}

func TestRecordEngagement_AnonymousVisitorIsCounted(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, _ := newTestEngagementService(statsRepo)

	require.NoError(t, svc.RecordEngagement(context.Background(), testCardID, models.MetricView, AnonymousUserID))
	// Sahip olmayan başka bir kullanıcı da sayılır.
	require.NoError(t, svc.RecordEngagement(context.Background(), testCardID, models.MetricView, 99))

	assert.EqualValues(t, 2, statsRepo.count(testCardID, models.MetricView, models.StatPeriodTotal, ""))
}

func TestRecordEngagement_CardNotFound(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, sleeps := newTestEngagementService(statsRepo)

	err := svc.RecordEngagement(context.Background(), 9999, models.MetricView, AnonymousUserID)
	require.ErrorIs(t, err, ErrEngagementCardNotFound)

	// Kalıcı hata: sayaç denemesi ve bekleme olmamalı.
	assert.Zero(t, statsRepo.calls)
	assert.Empty(t, *sleeps)
}

func TestRecordEngagement_InvalidMetric(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, _ := newTestEngagementService(statsRepo)

	err := svc.RecordEngagement(context.Background(), testCardID, models.Metric("bogus"), AnonymousUserID)
	require.ErrorIs(t, err, ErrEngagementInvalidMetric)
	assert.Zero(t, statsRepo.calls)
}

func TestRecordEngagement_RetriesTransientThenSucceeds(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	statsRepo.failures = 2
	statsRepo.failErr = errors.New("pq: deadlock detected")
	svc, sleeps := newTestEngagementService(statsRepo)

	err := svc.RecordEngagement(context.Background(), testCardID, models.MetricLinkClick, AnonymousUserID)
	require.NoError(t, err)

	assert.Equal(t, 3, statsRepo.calls)
	assert.EqualValues(t, 1, statsRepo.count(testCardID, models.MetricLinkClick, models.StatPeriodTotal, ""))
	// Üstel bekleme: 100ms, 200ms.
	require.Len(t, *sleeps, 2)
	assert.Equal(t, 100*time.Millisecond, (*sleeps)[0])
	assert.Equal(t, 200*time.Millisecond, (*sleeps)[1])
}

func TestRecordEngagement_RetriesTransientLookupThenSucceeds(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, sleeps := newTestEngagementService(statsRepo)
	cardRepo := &fakeCardRepo{
		cards: map[uint]*models.Card{
			testCardID: {BaseModel: models.BaseModel{ID: testCardID}, OwnerUserID: testOwnerID, IsEnabled: true},
		},
		failures: 1,
		failErr:  errors.New("dial tcp: connection refused"),
	}
	svc.cardRepo = cardRepo

	err := svc.RecordEngagement(context.Background(), testCardID, models.MetricView, AnonymousUserID)
	require.NoError(t, err)

	// İlk deneme kart sorgusunda düşer; ikincisi kartı çözüp sayar.
	assert.Equal(t, 2, cardRepo.lookups)
	assert.Equal(t, 1, statsRepo.calls)
	assert.EqualValues(t, 1, statsRepo.count(testCardID, models.MetricView, models.StatPeriodTotal, ""))
	require.Len(t, *sleeps, 1)
	assert.Equal(t, 100*time.Millisecond, (*sleeps)[0])
}

func TestRecordEngagement_LookupExhaustsAttempts(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, sleeps := newTestEngagementService(statsRepo)
	svc.cardRepo = &fakeCardRepo{
		cards:    map[uint]*models.Card{},
		failures: 10,
		failErr:  errors.New("dial tcp: connection refused"),
	}

	err := svc.RecordEngagement(context.Background(), testCardID, models.MetricView, AnonymousUserID)
	require.ErrorIs(t, err, ErrStatsUnavailable)

	assert.Zero(t, statsRepo.calls)
	assert.Len(t, *sleeps, 2)
}

func TestRecordEngagement_GivesUpAfterMaxAttempts(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	statsRepo.failures = 10
	statsRepo.failErr = errors.New("dial tcp: connection refused")
	svc, sleeps := newTestEngagementService(statsRepo)

	err := svc.RecordEngagement(context.Background(), testCardID, models.MetricView, AnonymousUserID)
	require.ErrorIs(t, err, ErrStatsUnavailable)

	assert.Equal(t, 3, statsRepo.calls)
	assert.Len(t, *sleeps, 2) // Son denemeden sonra beklenmez
	assert.EqualValues(t, 0, statsRepo.count(testCardID, models.MetricView, models.StatPeriodTotal, ""))
}

func TestRecordEngagement_ConcurrentIncrementsAreLossless(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, _ := newTestEngagementService(statsRepo)

	const visitors = 50
	var wg sync.WaitGroup
	wg.Add(visitors)
	for i := 0; i < visitors; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.RecordEngagement(context.Background(), testCardID, models.MetricView, AnonymousUserID))
		}()
	}
	wg.Wait()

	assert.EqualValues(t, visitors, statsRepo.count(testCardID, models.MetricView, models.StatPeriodTotal, ""))
	// Gün ve ay kovalarının toplamı genel toplama eşit olmalı.
	assert.EqualValues(t, visitors, statsRepo.periodSum(testCardID, models.MetricView, models.StatPeriodDay))
	assert.EqualValues(t, visitors, statsRepo.periodSum(testCardID, models.MetricView, models.StatPeriodMonth))
}

func TestClassifyStatsError(t *testing.T) {
	assert.ErrorIs(t, classifyStatsError(errors.New("pq: deadlock detected")), ErrStatsConflict)
	assert.ErrorIs(t, classifyStatsError(errors.New("ERROR: could not serialize access (SQLSTATE 40001)")), ErrStatsConflict)
	assert.ErrorIs(t, classifyStatsError(errors.New("dial tcp: connection refused")), ErrStatsUnavailable)
	assert.ErrorIs(t, classifyStatsError(context.DeadlineExceeded), ErrStatsUnavailable)
	// Bilinmeyen hatalar geçici kabul edilir, deneme hakkı boşa harcanmaz.
	assert.True(t, isTransientStatsError(classifyStatsError(errors.New("something odd"))))
}

func TestGetCardStats_Authorization(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc, _ := newTestEngagementService(statsRepo)
	svc.userRepo = &fakeUserRepo{users: map[uint]*models.User{
		1: {BaseModel: models.BaseModel{ID: 1}, IsSystem: true},
		8: {BaseModel: models.BaseModel{ID: 8}},
	}}
	require.NoError(t, svc.RecordEngagement(context.Background(), testCardID, models.MetricView, AnonymousUserID))

	// Sahip erişebilir.
	stats, err := svc.GetCardStats(context.Background(), testCardID, testOwnerID, models.MetricView)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Totals[models.MetricView])
	assert.EqualValues(t, 0, stats.Totals[models.MetricShare])

	// Sistem kullanıcısı erişebilir.
	_, err = svc.GetCardStats(context.Background(), testCardID, 1, models.MetricView)
	require.NoError(t, err)

	// Başka bir kullanıcı erişemez.
	_, err = svc.GetCardStats(context.Background(), testCardID, 8, models.MetricView)
	require.ErrorIs(t, err, ErrStatsForbidden)
}
