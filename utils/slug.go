package utils

import (
	"regexp"
	"strings"

	"kart.link/pkg/turkishsearch"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashRuns     = regexp.MustCompile(`-{2,}`)
	slugValidPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,59}$`)
)

// Slugify serbest metni URL'de kullanılabilir bir slug'a çevirir.
// Türkçe karakterler sadeleştirilir, geçersiz karakterler tire olur.
func Slugify(s string) string {
	s = turkishsearch.Normalize(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalidChars.ReplaceAllString(s, "-")
	s = slugDashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 60 {
		s = strings.Trim(s[:60], "-")
	}
	return s
}

// IsValidSlug slug'ın kurallara uyup uymadığını kontrol eder
// (küçük harf, rakam, tire; 2-60 karakter; tire ile başlayamaz).
func IsValidSlug(s string) bool {
	return slugValidPattern.MatchString(s)
}
