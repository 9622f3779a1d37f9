package services

import (
	"strings"
	"testing"

	"kart.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetail() models.CardDetail {
	return models.CardDetail{
		FirstName: "Ayşe",
		LastName:  "Yılmaz",
		Title:     "Ürün Yöneticisi",
		Email:     "ayse@example.com",
		CTAMode:   models.CTAModeNone,
	}
}

func TestValidateCardDetail_RequiredFields(t *testing.T) {
	detail := validDetail()
	detail.FirstName = ""
	err := ValidateCardDetail(detail, 6)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "first_name", vErr.Field)
}

func TestValidateCardDetail_BioLimit(t *testing.T) {
	detail := validDetail()
	detail.Bio = strings.Repeat("a", models.BioMaxLength)
	assert.NoError(t, ValidateCardDetail(detail, 6))

	detail.Bio = strings.Repeat("a", models.BioMaxLength+1)
	err := ValidateCardDetail(detail, 6)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "bio", vErr.Field)
}

func TestValidateCardDetail_BioLimitCountsRunes(t *testing.T) {
	// Türkçe karakterler bayt değil karakter olarak sayılmalı.
	detail := validDetail()
	detail.Bio = strings.Repeat("ğ", models.BioMaxLength)
	assert.NoError(t, ValidateCardDetail(detail, 6))
}

func TestValidateCardDetail_SocialLinkQuota(t *testing.T) {
	detail := validDetail()
	detail.LinkedInURL = "https://linkedin.com/in/ayse"
	detail.TwitterURL = "https://x.com/ayse"
	detail.GitHubURL = "https://github.com/ayse"

	assert.NoError(t, ValidateCardDetail(detail, 3))

	err := ValidateCardDetail(detail, 2)
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "social_links", vErr.Field)

	// 0 limitsiz demek değil; negatif/0 limit kota kontrolünü kapatır.
	assert.NoError(t, ValidateCardDetail(detail, 0))
}

func TestValidateCardDetail_CTAModeRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.CardDetail)
	}{
		{"booking without url", func(d *models.CardDetail) { d.CTAMode = models.CTAModeBooking }},
		{"button without label", func(d *models.CardDetail) {
			d.CTAMode = models.CTAModeButton
			d.ButtonURL = "https://example.com"
		}},
		{"button without url", func(d *models.CardDetail) {
			d.CTAMode = models.CTAModeButton
			d.ButtonLabel = "Randevu Al"
		}},
		{"ad without target", func(d *models.CardDetail) {
			d.CTAMode = models.CTAModeAd
			d.AdImageURL = "https://cdn.example.com/banner.png"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detail := validDetail()
			tc.mutate(&detail)
			assert.Error(t, ValidateCardDetail(detail, 6))
		})
	}
}

func TestValidateCardDetail_CTAModeRejectsForeignFields(t *testing.T) {
	// Moda ait olmayan alt alanlar dolu olamaz (tek modlu aksiyon alanı).
	detail := validDetail()
	detail.CTAMode = models.CTAModeBooking
	detail.BookingURL = "https://calendly.com/ayse"
	detail.ButtonLabel = "Tıkla"
	err := ValidateCardDetail(detail, 6)
	require.Error(t, err)

	detail = validDetail()
	detail.CTAMode = models.CTAModeLead
	detail.LeadPrompt = "Size nasıl ulaşalım?"
	detail.AdImageURL = "https://cdn.example.com/banner.png"
	assert.Error(t, ValidateCardDetail(detail, 6))
}

func TestValidateCardDetail_CTAModeHappyPaths(t *testing.T) {
	detail := validDetail()
	detail.CTAMode = models.CTAModeBooking
	detail.BookingURL = "https://calendly.com/ayse"
	assert.NoError(t, ValidateCardDetail(detail, 6))

	detail = validDetail()
	detail.CTAMode = models.CTAModeButton
	detail.ButtonLabel = "Menüyü Gör"
	detail.ButtonURL = "https://example.com/menu"
	assert.NoError(t, ValidateCardDetail(detail, 6))

	detail = validDetail()
	detail.CTAMode = models.CTAModeAd
	detail.AdImageURL = "https://cdn.example.com/banner.png"
	detail.AdTargetURL = "https://example.com/kampanya"
	assert.NoError(t, ValidateCardDetail(detail, 6))

	detail = validDetail()
	detail.CTAMode = models.CTAModeLead
	detail.LeadPrompt = "Size nasıl ulaşalım?"
	assert.NoError(t, ValidateCardDetail(detail, 6))

	// Boş mod none kabul edilir.
	detail = validDetail()
	detail.CTAMode = ""
	assert.NoError(t, ValidateCardDetail(detail, 6))
}

func TestValidateCardDetail_UnknownCTAMode(t *testing.T) {
	detail := validDetail()
	detail.CTAMode = models.CTAMode("popup")
	err := ValidateCardDetail(detail, 6)
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "cta_mode", vErr.Field)
}

func TestNormalizeSlug(t *testing.T) {
	detail := validDetail()

	// Boş slug isimden türetilir ve Türkçe karakterler sadeleştirilir.
	slug, err := normalizeSlug("", detail)
	require.NoError(t, err)
	assert.Equal(t, "ayse-yilmaz", slug)

	slug, err = normalizeSlug("Çiğdem Özkan ", detail)
	require.NoError(t, err)
	assert.Equal(t, "cigdem-ozkan", slug)
}
