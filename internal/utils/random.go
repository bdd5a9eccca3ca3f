package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// RandomHex returns n crypto-random bytes, hex encoded.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// UnusablePassword returns a secret nobody knows. Bootstrap admins created
// without a password get one and must go through the reset flow.
func UnusablePassword() (string, error) {
	return RandomHex(32)
}

// objectName is the stored name of an upload: a timestamp plus a random
// suffix, so uploads landing in the same nanosecond get distinct keys.
func objectName(ext string) (string, error) {
	suffix, err := RandomHex(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), suffix, ext), nil
}
