package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type messageResponse struct {
	Message string `json:"message"`
}

// UploadServer deletes files through the upload service's
// DELETE /delete/{filename} endpoint.
type UploadServer struct {
	client *resty.Client
	log    zerolog.Logger
}

func NewUploadServer(baseURL string, timeout time.Duration, log zerolog.Logger) *UploadServer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &UploadServer{
		client: client,
		log:    log.With().Str("component", "upload-server").Logger(),
	}
}

func (u *UploadServer) Delete(ctx context.Context, filename, token string) error {
	var result messageResponse
	resp, err := u.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&result).
		SetError(&result).
		ForceContentType("application/json").
		Delete("/delete/" + url.PathEscape(filename))
	if err != nil {
		return errors.Wrap(err, "call upload server")
	}

	u.log.Debug().
		Str("filename", filename).
		Int("status", resp.StatusCode()).
		Str("message", result.Message).
		Msg("delete file")

	if result.Message != FileDeletedMessage {
		return fmt.Errorf("upload server replied %d %q", resp.StatusCode(), result.Message)
	}
	return nil
}
