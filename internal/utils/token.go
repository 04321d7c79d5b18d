package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateResetToken returns a random opaque token for password reset links.
func GenerateResetToken() string {
	return uuid.NewString()
}

// GenerateUploadName returns a collision-free file name that keeps the
// original extension.
func GenerateUploadName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}
