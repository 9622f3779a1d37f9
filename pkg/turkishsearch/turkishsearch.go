package turkishsearch

import "strings"

// türkçe karakter eşlemesi: aramada I/ı, İ/i, ğ, ş, ç, ö, ü farkları silinir.
var replacer = strings.NewReplacer(
	"ı", "i", "İ", "i", "I", "i",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// Normalize aramada kullanılacak şekilde metni küçük harfe çevirir ve
// Türkçe karakterleri sadeleştirir.
func Normalize(s string) string {
	return strings.ToLower(replacer.Replace(s))
}

// SQLFilter verilen sütun için Türkçe karakter duyarsız ILIKE fragmanı üretir.
// Postgres tarafında translate ile aynı sadeleştirme uygulanır.
func SQLFilter(column string, value string) (string, []interface{}) {
	fragment := "translate(lower(" + column + "), 'ıİIğĞüÜşŞöÖçÇ', 'iiigguussoocc') ILIKE ?"
	return fragment, []interface{}{"%" + Normalize(value) + "%"}
}
