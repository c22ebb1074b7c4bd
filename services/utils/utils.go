package utils

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const thumbnailSuffix = "-thumb.png"

// WithUploadURL returns the public file and thumbnail addresses of a stored
// filename.
func WithUploadURL(base, filename string) (string, string) {
	return base + filename, base + filename + thumbnailSuffix
}

// StripUploadURL recovers the raw storage key from a public address.
func StripUploadURL(base, filename string) string {
	if base == "" {
		return filename
	}
	return strings.TrimPrefix(filename, base)
}

// WithTimeout bounds a single store or storage operation. A non-positive
// timeout leaves ctx unchanged.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
