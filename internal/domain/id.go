package domain

import (
	"crypto/rand"
	"math/big"
)

const (
	ownerTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	ownerTokenLength   = 21

	shortIDAlphabet = "1234567890"
	shortIDLength   = 5
)

// NewOwnerToken returns the opaque identifier stored in the shopper's
// device_identifier cookie. One token correlates to at most one cart.
func NewOwnerToken() string {
	return randomString(ownerTokenAlphabet, ownerTokenLength)
}

// GenerateID returns a short numeric id used for cart documents and cart
// line-item variant ids.
func GenerateID() string {
	return randomString(shortIDAlphabet, shortIDLength)
}

func randomString(alphabet string, length int) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			b[i] = alphabet[0]
			continue
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}
