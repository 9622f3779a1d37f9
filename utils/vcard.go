package utils

import (
	"fmt"
	"strings"

	"kart.link/models"
)

// vCard alanlarında satır sonları ve ayraçlar kaçışlanmalıdır (RFC 6350).
var vcardEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\n", "\\n",
	",", "\\,",
	";", "\\;",
)

func vcardEscape(s string) string {
	return vcardEscaper.Replace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// BuildVCard kartvizit detayından vCard 3.0 çıktısı üretir.
// "Rehbere kaydet" indirmesi bu çıktıyı text/vcard olarak döndürür.
func BuildVCard(detail models.CardDetail) string {
	var b strings.Builder
	writeLine := func(format string, args ...interface{}) {
		b.WriteString(fmt.Sprintf(format, args...))
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCARD")
	writeLine("VERSION:3.0")
	writeLine("N:%s;%s;;;", vcardEscape(detail.LastName), vcardEscape(detail.FirstName))
	fullName := strings.TrimSpace(detail.FirstName + " " + detail.LastName)
	writeLine("FN:%s", vcardEscape(fullName))
	if detail.Company != "" {
		writeLine("ORG:%s", vcardEscape(detail.Company))
	}
	if detail.Title != "" {
		writeLine("TITLE:%s", vcardEscape(detail.Title))
	}
	if detail.PhoneNumber != "" {
		writeLine("TEL;TYPE=WORK,VOICE:%s", vcardEscape(detail.PhoneNumber))
	}
	if detail.Email != "" {
		writeLine("EMAIL;TYPE=WORK:%s", vcardEscape(detail.Email))
	}
	if detail.Website != "" {
		writeLine("URL:%s", vcardEscape(detail.Website))
	}
	if detail.Address != "" {
		writeLine("ADR;TYPE=WORK:;;%s;;;;", vcardEscape(detail.Address))
	}
	if detail.Bio != "" {
		writeLine("NOTE:%s", vcardEscape(detail.Bio))
	}
	writeLine("END:VCARD")

	return b.String()
}
