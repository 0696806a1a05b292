package utils

import (
	"crypto/rand"
	"encoding/hex"
)

const tokenByteLength = 32

// GenerateSecureToken returns a random hex token used for refresh tokens
// and mail-verification links.
func GenerateSecureToken() (string, error) {
	b := make([]byte, tokenByteLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
