// Package s3 uploads rendered CSV tables to an S3-compatible backend (AWS S3
// or MinIO). Streamed tables are buffered in memory and uploaded whole on
// Close; S3 has no append, so the memory bound moves to the object size.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

// Config holds explicit construction parameters (mostly for tests). For prod
// we rely primarily on environment variables.
type Config struct {
	Region    string
	Bucket    string
	Prefix    string // optional object key prefix, e.g. "runs/latest"
	Endpoint  string // optional; enables custom endpoint (e.g. MinIO)
	PathStyle bool
}

// Environment variables:
//   PLANTFORGE_SINK_S3_BUCKET=<bucket> (required)
//   PLANTFORGE_SINK_S3_REGION=<region> (default us-east-1)
//   PLANTFORGE_SINK_S3_PREFIX=<key prefix> (optional)
//   PLANTFORGE_SINK_S3_ENDPOINT=<url> (optional, for MinIO)
//   PLANTFORGE_SINK_S3_PATH_STYLE=true|false (default false)
//   AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

// Client is the narrow slice of the S3 API the sink uses; satisfied by
// *s3.Client and by test doubles.
type Client interface {
	PutObject(ctx context.Context, input *awss3.PutObjectInput, opts ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Store is the S3 sink.
type Store struct {
	client Client
	bucket string
	prefix string
}

// New creates an S3 sink from Config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// NewWithClient constructs a sink over a caller-supplied client (tests).
func NewWithClient(client Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// OpenFromEnv constructs an S3 sink from process environment.
func OpenFromEnv(ctx context.Context) (*Store, error) {
	bucket := os.Getenv("PLANTFORGE_SINK_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("PLANTFORGE_SINK_S3_BUCKET required for s3 driver")
	}
	cfg := Config{
		Bucket:    bucket,
		Region:    os.Getenv("PLANTFORGE_SINK_S3_REGION"),
		Prefix:    os.Getenv("PLANTFORGE_SINK_S3_PREFIX"),
		Endpoint:  os.Getenv("PLANTFORGE_SINK_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("PLANTFORGE_SINK_S3_PATH_STYLE"), "true"),
	}
	return New(ctx, cfg)
}

func (s *Store) keyFor(name string) string {
	return path.Join(s.prefix, name+".csv")
}

func (s *Store) upload(ctx context.Context, name string, payload []byte) error {
	key := s.keyFor(name)
	contentType := "text/csv"
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// WriteTable renders the table and uploads it under "<prefix>/<name>.csv".
func (s *Store) WriteTable(ctx context.Context, table *domain.Table) error {
	payload, err := table.MarshalCSV()
	if err != nil {
		return err
	}
	return s.upload(ctx, table.Name, payload)
}

type tableWriter struct {
	ctx   context.Context
	store *Store
	table *domain.Table
}

func (w *tableWriter) Append(row []string) error { return w.table.AppendRow(row) }

func (w *tableWriter) Close() error {
	payload, err := w.table.MarshalCSV()
	if err != nil {
		return err
	}
	return w.store.upload(w.ctx, w.table.Name, payload)
}

// OpenTable buffers streamed rows and uploads the rendered CSV on Close.
func (s *Store) OpenTable(ctx context.Context, name string, columns []string) (core.TableWriter, error) {
	return &tableWriter{ctx: ctx, store: s, table: domain.NewTable(name, columns)}, nil
}

// Close is a no-op; the SDK client holds no resources needing release.
func (s *Store) Close() error { return nil }
