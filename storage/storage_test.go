package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/mediahub/config"
)

func uploadServer(t *testing.T, status int, message string, seen *http.Request) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = *r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUploadServerDelete(t *testing.T) {
	var seen http.Request
	srv := uploadServer(t, http.StatusOK, FileDeletedMessage, &seen)

	store := NewUploadServer(srv.URL, time.Second, zerolog.Nop())
	err := store.Delete(context.Background(), "x.jpg", "secret-token")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, seen.Method)
	assert.Equal(t, "/delete/x.jpg", seen.URL.Path)
	assert.Equal(t, "Bearer secret-token", seen.Header.Get("Authorization"))
}

func TestUploadServerDeleteRejectsOtherMessages(t *testing.T) {
	var seen http.Request
	srv := uploadServer(t, http.StatusOK, "File not found", &seen)

	store := NewUploadServer(srv.URL, time.Second, zerolog.Nop())
	assert.Error(t, store.Delete(context.Background(), "x.jpg", "t"))
}

func TestUploadServerDeleteErrorStatus(t *testing.T) {
	var seen http.Request
	srv := uploadServer(t, http.StatusUnauthorized, "Unauthorized", &seen)

	store := NewUploadServer(srv.URL, time.Second, zerolog.Nop())
	assert.Error(t, store.Delete(context.Background(), "x.jpg", "t"))
}

func TestUploadServerUnreachable(t *testing.T) {
	store := NewUploadServer("http://127.0.0.1:1", 200*time.Millisecond, zerolog.Nop())
	assert.Error(t, store.Delete(context.Background(), "x.jpg", "t"))
}

type fakeDeleter struct {
	keys []string
	err  error
}

func (f *fakeDeleter) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreDeletesFileAndThumbnail(t *testing.T) {
	deleter := &fakeDeleter{}
	store := NewS3StoreWithClient("media", deleter, zerolog.Nop())

	require.NoError(t, store.Delete(context.Background(), "x.jpg", ""))
	assert.Equal(t, []string{"x.jpg", "x.jpg-thumb.png"}, deleter.keys)

	deleter.err = errors.New("access denied")
	assert.Error(t, store.Delete(context.Background(), "x.jpg", ""))
}

func TestNewSelectsDriver(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, &config.Config{StorageDriver: config.StorageDriverHTTP, UploadServer: "http://upload"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &UploadServer{}, store)

	_, err = New(ctx, &config.Config{StorageDriver: config.StorageDriverS3}, zerolog.Nop())
	assert.ErrorIs(t, err, errS3NotConfigured)

	_, err = New(ctx, &config.Config{StorageDriver: "ftp"}, zerolog.Nop())
	assert.Error(t, err)
}
