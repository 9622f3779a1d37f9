package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ayşe Yılmaz", "ayse-yilmaz"},
		{"  Çiğdem  Özkan  ", "cigdem-ozkan"},
		{"IŞIL İREM", "isil-irem"},
		{"hello_world!", "hello-world"},
		{"--zaten-slug--", "zaten-slug"},
		{"a", "a"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "girdi: %q", tc.in)
	}
}

func TestSlugify_LengthCap(t *testing.T) {
	long := Slugify(strings.Repeat("abc ", 40))
	assert.LessOrEqual(t, len(long), 60)
	assert.True(t, IsValidSlug(long))
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("ayse-yilmaz"))
	assert.True(t, IsValidSlug("k2"))

	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("a"))              // Çok kısa
	assert.False(t, IsValidSlug("-tire-ile"))      // Tire ile başlayamaz
	assert.False(t, IsValidSlug("Büyük-Harf"))     // Küçük harf zorunlu
	assert.False(t, IsValidSlug("bosluk yasak"))   // Boşluk yasak
	assert.False(t, IsValidSlug(strings.Repeat("a", 61)))
}
