package services

import (
	"crypto/md5"
	"encoding/hex"
)

// Fingerprint returns the hex content digest used as the dedup key. This is
// a 128-bit dedup fingerprint, not a security boundary.
func Fingerprint(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}
