// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost stays above the floor of 10 required for stored credentials.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func VerifyPassword(password, encodedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	return err == nil
}

var dummyHash []byte

func init() {
	hash, err := bcrypt.GenerateFromPassword(
		[]byte("dummy_password_for_timing_attack_prevention"),
		bcryptCost,
	)
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
	}
	dummyHash = hash
}

// VerifyPasswordTimingSafe burns a comparison against a dummy hash when no
// stored hash exists, so "unknown user" and "wrong password" take the same
// time and return the same answer.
func VerifyPasswordTimingSafe(password string, encodedHash *string) bool {
	if encodedHash == nil || *encodedHash == "" {
		//nolint:errcheck // comparison result deliberately discarded
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return VerifyPassword(password, *encodedHash)
}

// NeedsRehash reports whether a stored hash was produced with a weaker cost
// than the current policy.
func NeedsRehash(encodedHash string) bool {
	cost, err := bcrypt.Cost([]byte(encodedHash))
	if err != nil {
		return true
	}
	return cost < bcryptCost
}

func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

