package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricIsValid(t *testing.T) {
	for _, metric := range AllMetrics {
		assert.True(t, metric.IsValid(), "metrik geçerli olmalı: %s", metric)
	}
	assert.False(t, Metric("").IsValid())
	assert.False(t, Metric("views").IsValid())
	assert.False(t, Metric("VIEW").IsValid())
}

func TestMonthAndDayBucket(t *testing.T) {
	at := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03", MonthBucket(at))
	assert.Equal(t, "2025-03-15", DayBucket(at))
}

func TestBucketKeysUseUTC(t *testing.T) {
	// İstanbul'da 16 Mart 01:30, UTC'de hala 15 Mart 22:30'dur.
	ist := time.FixedZone("Europe/Istanbul", 3*60*60)
	at := time.Date(2025, 3, 16, 1, 30, 0, 0, ist)

	assert.Equal(t, "2025-03-15", DayBucket(at))
	assert.Equal(t, "2025-03", MonthBucket(at))
}

func TestBucketKeysAcrossMonthBoundary(t *testing.T) {
	endOfMonth := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	startOfNext := endOfMonth.Add(time.Second)

	assert.Equal(t, "2025-01", MonthBucket(endOfMonth))
	assert.Equal(t, "2025-02", MonthBucket(startOfNext))
	assert.Equal(t, "2025-01-31", DayBucket(endOfMonth))
	assert.Equal(t, "2025-02-01", DayBucket(startOfNext))
}
