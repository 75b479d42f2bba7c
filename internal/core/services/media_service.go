package services

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/platform/config"
)

// mediaService uploads local files to an S3-compatible bucket and returns
// their public URL.
type mediaService struct {
	BaseService
	cfg *config.Config
}

// NewMediaService creates a new media storage service.
func NewMediaService(cfg *config.Config) portssvc.MediaStorageSvc {
	return &mediaService{cfg: cfg}
}

var _ portssvc.MediaStorageSvc = (*mediaService)(nil)

func (s *mediaService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.S3AccessKey,
			s.cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.S3Endpoint)
		}
	}), nil
}

// storageKey builds a date-partitioned object key, keeping the original
// file extension so content type survives round trips.
func storageKey(keyPrefix string, localPath string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s", keyPrefix, d.Year(), d.Month(), d.Day(), uuid.NewString(), filepath.Ext(localPath))
}

func (s *mediaService) Upload(ctx context.Context, localPath string, keyPrefix string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open upload file: %w", err)
	}
	defer file.Close()

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	key := storageKey(keyPrefix, localPath)
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.S3Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return s.publicURL(key), nil
}

func (s *mediaService) publicURL(key string) string {
	base := s.cfg.MediaPublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.cfg.S3Bucket, s.cfg.S3Region)
	}
	return strings.TrimRight(base, "/") + "/" + key
}
