// Package storage implements the FileStore port on top of AWS S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"brandexpo/config"
	"brandexpo/internal/domain"
)

type s3Store struct {
	client                  *s3.Client
	region                  string
	productImagesBucket     string
	businessDocumentsBucket string
}

// NewS3Store creates a FileStore backed by two S3 buckets, one for product
// images and one for business registration documents.
func NewS3Store(cfg config.S3Config) domain.FileStore {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		),
	}
	return &s3Store{
		client:                  s3.NewFromConfig(awsCfg),
		region:                  cfg.Region,
		productImagesBucket:     cfg.ProductImagesBucket,
		businessDocumentsBucket: cfg.BusinessDocumentsBucket,
	}
}

// UploadProductImage stores an image under a fresh random key in the user's
// namespace, so repeated uploads never overwrite each other.
func (s *s3Store) UploadProductImage(ctx context.Context, userID, filename string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), extension(filename))
	return s.put(ctx, s.productImagesBucket, key, filename, body)
}

// UploadBusinessRegistration stores the registration document under a fixed
// per-user key; a new upload replaces the previous document.
func (s *s3Store) UploadBusinessRegistration(ctx context.Context, userID, filename string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/business-registration%s", userID, extension(filename))
	return s.put(ctx, s.businessDocumentsBucket, key, filename, body)
}

func (s *s3Store) put(ctx context.Context, bucket, key, filename string, body io.Reader) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if ct := mime.TypeByExtension(extension(filename)); ct != "" {
		input.ContentType = aws.String(ct)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object %q: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.region, key), nil
}

func extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
