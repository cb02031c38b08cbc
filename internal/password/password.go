// Package password hashes and verifies login passwords with scrypt, a
// deliberately slow, memory-hard KDF. Stored hashes are encoded as
// "hex(salt):hex(derivedKey)" with a fresh random salt per hash, so the same
// plaintext never produces the same stored value twice.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLen = 16
	keyLen  = 64

	// scrypt cost parameters
	scryptN = 16384
	scryptR = 8
	scryptP = 1
)

// Hash derives a stored hash from a plaintext password using a fresh random
// salt. The plaintext is never stored or logged.
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(plain), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// Verify reports whether plain matches the stored hash. It fails closed: a
// malformed stored value (missing separator, empty salt or digest, bad hex)
// always verifies false rather than raising, so corrupt rows can never be
// treated as "no password required".
func Verify(plain, stored string) bool {
	saltHex, digestHex, ok := strings.Cut(stored, ":")
	if !ok || saltHex == "" || digestHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	key, err := scrypt.Key([]byte(plain), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return false
	}

	// Constant-time comparison to resist timing attacks.
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(key)), []byte(digestHex)) == 1
}
