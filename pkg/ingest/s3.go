// Package ingest fetches source files for decoding from an S3-
// compatible object store and tracks which ones have already been
// processed in Redis, adapted from the deployment patterns this
// project's storage and cache layers were built around.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/aminofox/uasklv/pkg/config"
	"github.com/aminofox/uasklv/pkg/logger"
)

// S3Source fetches object bytes from a single S3-compatible bucket.
type S3Source struct {
	client *s3.Client
	bucket string
	log    logger.Logger
}

// NewS3Source builds an S3Source from cfg. A static access key/secret
// in cfg takes precedence over the default credential chain, matching
// how this project's other AWS-backed adapters resolve credentials.
func NewS3Source(ctx context.Context, cfg config.S3Config, log logger.Logger) (*S3Source, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("ingest: loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Source{client: client, bucket: cfg.Bucket, log: log}, nil
}

// Fetch downloads the full object body for key, defaulting to the
// source's configured bucket when bucket is empty.
func (s *S3Source) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" {
		bucket = s.bucket
	}
	s.log.Debug("fetching object", logger.String("bucket", bucket), logger.String("key", key))

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: fetching s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, out.Body); err != nil {
		return nil, fmt.Errorf("ingest: reading s3://%s/%s: %w", bucket, key, err)
	}
	return buf.Bytes(), nil
}
