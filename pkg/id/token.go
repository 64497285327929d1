package id

import (
	"crypto/rand"
	"encoding/hex"
)

// ClaimToken generates an opaque, unguessable token for claim invitations.
// 32 random bytes, hex encoded.
func ClaimToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
