package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/techagentng/mediahub/config"
)

var errS3NotConfigured = errors.New("s3 storage is not configured; set MEDIAHUB_S3_BUCKET and credentials")

// ObjectDeleter is the subset of the S3 client used here.
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store deletes the file object and its generated thumbnail from a bucket.
// The bearer token is not used.
type S3Store struct {
	bucket string
	client ObjectDeleter
	log    zerolog.Logger
}

func NewS3Store(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*S3Store, error) {
	bucket := strings.TrimSpace(cfg.S3Bucket)
	if bucket == "" || cfg.S3AccessKeyID == "" || cfg.S3SecretKey == "" {
		return nil, errS3NotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, "")),
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})
	return NewS3StoreWithClient(bucket, client, log), nil
}

func NewS3StoreWithClient(bucket string, client ObjectDeleter, log zerolog.Logger) *S3Store {
	return &S3Store{
		bucket: bucket,
		client: client,
		log:    log.With().Str("component", "s3-storage").Logger(),
	}
}

func (s *S3Store) Delete(ctx context.Context, filename, _ string) error {
	for _, key := range []string{filename, filename + "-thumb.png"} {
		if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		}); err != nil {
			return fmt.Errorf("delete object %s: %w", key, err)
		}
	}
	s.log.Debug().Str("filename", filename).Msg("delete file")
	return nil
}
