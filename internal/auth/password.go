package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted, slow digest of the password. bcrypt embeds
// the algorithm identifier, cost and salt in the encoded string, so stored
// hashes can be upgraded later without a schema change.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a stored digest with a candidate password in
// constant time. Returns nil on match.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// dummyHash is compared against when the user does not exist, so the
// unknown-user and wrong-password paths take the same time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

// CheckDummyPassword burns a bcrypt comparison without revealing anything.
func CheckDummyPassword(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
