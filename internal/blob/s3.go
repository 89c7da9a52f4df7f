package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config points at an S3-compatible bucket
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// S3Store stores media in an S3-compatible bucket
type S3Store struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Store creates an S3Store with static credentials
func NewS3Store(cfg S3Config) *S3Store {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return &S3Store{client: s3.New(opts), cfg: cfg}
}

// Put uploads the object
func (s *S3Store) Put(ctx context.Context, path string, data []byte, contentType string) error {
	key := strings.TrimPrefix(path, "/")
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// PublicURL joins the configured public base with the storage path
func (s *S3Store) PublicURL(path string) string {
	if s.cfg.PublicBaseURL == "" {
		return ""
	}
	return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
