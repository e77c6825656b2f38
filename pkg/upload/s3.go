package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/logging"
)

// UploadTimeout bounds a single object upload.
const UploadTimeout = 30 * time.Second

// S3Uploader pushes render artifacts to a bucket
type S3Uploader struct {
	client  s3iface.S3API
	bucket  string
	prefix  string
	timeout time.Duration
}

// NewS3Uploader creates a session from cfg. Static credentials are used when
// both keys are present, otherwise the default AWS credential chain applies.
func NewS3Uploader(cfg config.S3Config) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, errors.New("s3 bucket must be provided")
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}
	return NewS3UploaderWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix), nil
}

// NewS3UploaderWithClient wraps an existing client
func NewS3UploaderWithClient(client s3iface.S3API, bucket, prefix string) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		timeout: UploadTimeout,
	}
}

// ObjectKey builds "<prefix>/<scene>/<timestamp>/<file name>"
func (u *S3Uploader) ObjectKey(scene string, at time.Time, localPath string) string {
	return ObjectKey(u.prefix, scene, at, localPath)
}

// ObjectKey builds "<prefix>/<scene>/<timestamp>/<file name>", skipping an empty prefix
func ObjectKey(prefix, scene string, at time.Time, localPath string) string {
	parts := []string{}
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, scene, at.UTC().Format("20060102_150405"), filepath.Base(localPath))
	return path.Join(parts...)
}

// ContentType guesses the MIME type of a render artifact from its name
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".ppm":
		return "image/x-portable-pixmap"
	case ".zst":
		return "application/zstd"
	case ".sz":
		return "application/x-snappy-framed"
	default:
		return "application/octet-stream"
	}
}

// Upload stores data under key
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logging.LoggerFromContext(ctx).Info("uploaded artifact",
		logging.String("bucket", u.bucket),
		logging.String("key", key),
		logging.Int64("bytes", size),
	)
	return nil
}

// UploadFile reads localPath and uploads it under key
func (u *S3Uploader) UploadFile(ctx context.Context, key, localPath string) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", localPath, err)
	}
	return u.Upload(ctx, key, data)
}
