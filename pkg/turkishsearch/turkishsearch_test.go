package turkishsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "isil yilmaz", Normalize("IŞIL YILMAZ"))
	assert.Equal(t, "cigdem ozgur", Normalize("Çiğdem Özgür"))
	assert.Equal(t, "istanbul", Normalize("İstanbul"))
	assert.Equal(t, "abc", Normalize("abc"))
}

func TestSQLFilter(t *testing.T) {
	fragment, args := SQLFilter("users.name", "Şükrü")
	assert.Contains(t, fragment, "translate(lower(users.name)")
	assert.Contains(t, fragment, "ILIKE ?")
	assert.Equal(t, []interface{}{"%sukru%"}, args)
}
