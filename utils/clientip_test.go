package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUsableClientIP(t *testing.T) {
	assert.True(t, IsUsableClientIP("203.0.113.42"))
	assert.True(t, IsUsableClientIP("2001:db8::1"))

	assert.False(t, IsUsableClientIP(""))
	assert.False(t, IsUsableClientIP("  "))
	assert.False(t, IsUsableClientIP("127.0.0.1"))   // Loopback
	assert.False(t, IsUsableClientIP("::1"))         // IPv6 loopback
	assert.False(t, IsUsableClientIP("10.0.0.5"))    // Özel ağ
	assert.False(t, IsUsableClientIP("192.168.1.1")) // Özel ağ
	assert.False(t, IsUsableClientIP("172.16.0.9"))  // Özel ağ
	assert.False(t, IsUsableClientIP("0.0.0.0"))     // Unspecified
	assert.False(t, IsUsableClientIP("not-an-ip"))
}
