package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StorageService persists uploaded files (avatars, documents) and produces
// the public URLs embedded in profiles and redirect targets.
type StorageService interface {
	Save(ctx context.Context, fileKey string, data []byte, contentType string) error
	Delete(ctx context.Context, fileKey string) error
	PublicFileURL(fileKey string) string
}

// LocalStorageService stores files under a directory on the local filesystem.
type LocalStorageService struct {
	rootDir       string
	publicBaseURL string
}

// NewLocalStorageService creates a filesystem-backed storage service rooted at rootDir.
func NewLocalStorageService(rootDir, publicBaseURL string) (StorageService, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("storage root directory is required")
	}
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStorageService{
		rootDir:       rootDir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *LocalStorageService) Save(ctx context.Context, fileKey string, data []byte, contentType string) error {
	fullPath, err := s.resolve(fileKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorageService) Delete(ctx context.Context, fileKey string) error {
	fullPath, err := s.resolve(fileKey)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorageService) PublicFileURL(fileKey string) string {
	return s.publicBaseURL + "/" + strings.TrimPrefix(filepath.ToSlash(fileKey), "/")
}

// resolve joins fileKey under the root and rejects path traversal.
func (s *LocalStorageService) resolve(fileKey string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(fileKey))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid file key: %s", fileKey)
	}
	return filepath.Join(s.rootDir, cleaned), nil
}

// S3StorageService stores files in an S3-compatible bucket (AWS, MinIO, R2).
type S3StorageService struct {
	client        *s3.Client
	bucket        string
	endpoint      string
	publicBaseURL string
}

// S3Config holds the settings needed to reach an S3-compatible endpoint.
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	AccessKeySecret string
	UsePathStyle    bool
	PublicBaseURL   string
}

// NewS3StorageService creates a storage service backed by an S3-compatible bucket.
func NewS3StorageService(ctx context.Context, conf S3Config) (StorageService, error) {
	if conf.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.UsePathStyle
	})

	publicBase := conf.PublicBaseURL
	if publicBase == "" {
		publicBase = strings.TrimSuffix(conf.Endpoint, "/") + "/" + conf.Bucket
	}

	return &S3StorageService{
		client:        client,
		bucket:        conf.Bucket,
		endpoint:      conf.Endpoint,
		publicBaseURL: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

func (s *S3StorageService) Save(ctx context.Context, fileKey string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fileKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to s3: %w", err)
	}
	return nil
}

func (s *S3StorageService) Delete(ctx context.Context, fileKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}

func (s *S3StorageService) PublicFileURL(fileKey string) string {
	return s.publicBaseURL + "/" + strings.TrimPrefix(fileKey, "/")
}
