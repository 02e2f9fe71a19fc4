package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}

// GenerateRandomString returns a URL-safe, base64 encoded securely generated
// random string of length s.
func GenerateRandomString(s int) (string, error) {
	if s <= 0 {
		return "", errInvalidLength
	}
	b := make([]byte, s)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:s], nil
}
