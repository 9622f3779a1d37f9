package utils

import (
	"strings"
	"testing"

	"kart.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVCard(t *testing.T) {
	detail := models.CardDetail{
		FirstName:   "Ayşe",
		LastName:    "Yılmaz",
		Title:       "Ürün Yöneticisi",
		Company:     "Örnek A.Ş.",
		Email:       "ayse@example.com",
		PhoneNumber: "+90 555 123 4567",
		Website:     "https://ayse.example.com",
	}
	card := BuildVCard(detail)

	assert.True(t, strings.HasPrefix(card, "BEGIN:VCARD\r\n"))
	assert.True(t, strings.HasSuffix(card, "END:VCARD\r\n"))
	assert.Contains(t, card, "VERSION:3.0\r\n")
	assert.Contains(t, card, "N:Yılmaz;Ayşe;;;\r\n")
	assert.Contains(t, card, "FN:Ayşe Yılmaz\r\n")
	assert.Contains(t, card, "ORG:Örnek A.Ş.\r\n")
	assert.Contains(t, card, "TEL;TYPE=WORK,VOICE:+90 555 123 4567\r\n")
	assert.Contains(t, card, "EMAIL;TYPE=WORK:ayse@example.com\r\n")

	// Tüm satırlar CRLF ile bitmeli.
	for _, line := range strings.Split(strings.TrimSuffix(card, "\r\n"), "\r\n") {
		require.NotContains(t, line, "\n")
	}
}

func TestBuildVCard_EscapesSpecialChars(t *testing.T) {
	detail := models.CardDetail{
		FirstName: "Ali",
		LastName:  "Veli",
		Company:   "Acme; Inc, Ltd",
		Bio:       "İlk satır\nikinci satır",
	}
	card := BuildVCard(detail)

	assert.Contains(t, card, `ORG:Acme\; Inc\, Ltd`)
	assert.Contains(t, card, `NOTE:İlk satır\nikinci satır`)
}

func TestBuildVCard_SkipsEmptyFields(t *testing.T) {
	card := BuildVCard(models.CardDetail{FirstName: "Ali", LastName: "Veli"})

	assert.NotContains(t, card, "ORG:")
	assert.NotContains(t, card, "TEL;")
	assert.NotContains(t, card, "EMAIL;")
	assert.NotContains(t, card, "URL:")
	assert.NotContains(t, card, "NOTE:")
}
