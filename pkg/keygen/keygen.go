package keygen

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// tokenKeyBytes yields a 40-character hex key, long enough that keys
// are unguessable and short enough to index.
const tokenKeyBytes = 20

// TokenKey generates an opaque bearer token key
func TokenKey() (string, error) {
	buf := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ImageObjectName generates a storage object name for an uploaded image,
// keeping the original file extension. Uploads never reuse the client
// file name.
func ImageObjectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}
