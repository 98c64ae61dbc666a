package auth

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = time.Hour

// NewResetToken generates a URL-safe random token with 256 bits of entropy.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
