package objstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/assessmentinc/submission-relay/internal/config"
)

// S3Store uploads submission files to an S3 bucket.
type S3Store struct {
	api    s3iface.S3API
	bucket string
}

// NewS3Store returns an uploader bound to the configured bucket.
// Credentials come from the standard AWS credential chain.
func NewS3Store(cfg config.StorageConfig) (*S3Store, error) {
	awsConfig := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.Endpoint != "" {
		awsConfig = awsConfig.WithEndpoint(cfg.Endpoint)
	}
	if cfg.ForcePathStyle {
		awsConfig = awsConfig.WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &S3Store{
		api:    s3.New(sess),
		bucket: cfg.Bucket,
	}, nil
}

// Put uploads body under key. Objects are never deleted here, a failed
// invocation leaves already-uploaded files in place.
func (s *S3Store) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
