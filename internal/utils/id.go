package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateShortID derives a stable short identifier from a name and mod time.
func GenerateShortID(name string, modTime time.Time) string {
	data := fmt.Sprintf("%s-%d", name, modTime.Unix())
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:4])
}
