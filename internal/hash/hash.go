package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Password returns the hex-encoded SHA-256 digest of password. The
// digest is unsalted, so equal passwords always produce equal digests.
func Password(password string) string {
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}
