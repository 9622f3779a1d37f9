package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const randomAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSecureRandomString crypto/rand ile verilen uzunlukta
// alfanümerik bir anahtar üretir (link anahtarları, referans kodları).
func GenerateSecureRandomString(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("geçersiz anahtar uzunluğu")
	}
	result := make([]byte, length)
	max := big.NewInt(int64(len(randomAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = randomAlphabet[n.Int64()]
	}
	return string(result), nil
}
