package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches what existing deployments were hashed with.
const DefaultBcryptCost = 10

// predigest reduces a password of any length to a fixed-size hex string
// before the slow hash. bcrypt only looks at the first 72 bytes of its
// input; hashing the SHA-256 hex digest instead keeps long passwords
// fully significant. Stored hashes are only compatible with verifiers
// that apply the same pre-digest.
func predigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword(predigest(password), cost)
	return string(b), err
}

// VerifyPassword reports whether password produced hash. A malformed hash
// read back from storage is a verification failure, not an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), predigest(password)) == nil
}
