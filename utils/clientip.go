package utils

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// publicIPLookupURL istek IP'si kullanılamadığında başvurulan servis.
const publicIPLookupURL = "https://api.ipify.org"

var ipLookupClient = &http.Client{Timeout: 3 * time.Second}

// IsUsableClientIP IP'nin CRM'e iletilmeye uygun olup olmadığını kontrol eder.
// Boş, loopback ve özel ağ adresleri kullanılamaz sayılır.
func IsUsableClientIP(ip string) bool {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return false
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() && !parsed.IsPrivate() && !parsed.IsUnspecified()
}

// BestEffortClientIP isteğin IP'sini döndürür; IP kullanılamaz durumdaysa
// (lokal geliştirme, proxy arkası boş değer) public IP servisine başvurur.
// Hata durumunda eldeki değer olduğu gibi döner; çağıran taraf için kritik değildir.
func BestEffortClientIP(ctx context.Context, requestIP string) string {
	if IsUsableClientIP(requestIP) {
		return requestIP
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, publicIPLookupURL, nil)
	if err != nil {
		return requestIP
	}
	resp, err := ipLookupClient.Do(req)
	if err != nil {
		return requestIP
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return requestIP
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return requestIP
	}
	looked := strings.TrimSpace(string(body))
	if net.ParseIP(looked) == nil {
		return requestIP
	}
	return looked
}
