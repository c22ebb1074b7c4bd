// Package storage talks to the service that holds the physical media files.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/techagentng/mediahub/config"
)

// FileDeletedMessage is the only upload server reply accepted as success.
const FileDeletedMessage = "File deleted"

// FileStore removes a stored file by its raw storage key. token is the
// caller's bearer token, forwarded verbatim where the backend needs it.
type FileStore interface {
	Delete(ctx context.Context, filename, token string) error
}

// New picks the backend named by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (FileStore, error) {
	switch cfg.StorageDriver {
	case "", config.StorageDriverHTTP:
		return NewUploadServer(cfg.UploadServer, cfg.StorageTimeout, log), nil
	case config.StorageDriverS3:
		return NewS3Store(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
