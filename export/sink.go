package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alphadex-cli/alphadex/filesystem"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink stores a finished export under name and returns where it went.
type Sink interface {
	Put(ctx context.Context, name string, body io.Reader) (location string, err error)
}

// LocalSink writes exports below a directory.
type LocalSink struct {
	Dir string
}

func (l LocalSink) Put(_ context.Context, name string, body io.Reader) (string, error) {
	path := filepath.Join(l.Dir, filepath.FromSlash(name))
	if err := filesystem.API().MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if err := filesystem.API().WriteReader(path, body); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ObjectPutter is the part of the S3 client the sink uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads exports to a bucket.
type S3Sink struct {
	client ObjectPutter
	bucket string
}

func NewS3Sink(client ObjectPutter, bucket string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket}
}

// S3SinkFromEnv builds a sink from the default AWS credential chain.
// An empty region leaves region resolution to the SDK.
func S3SinkFromEnv(ctx context.Context, bucket, region string) (*S3Sink, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewS3Sink(s3.NewFromConfig(cfg), bucket), nil
}

func (s *S3Sink) Put(ctx context.Context, name string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("upload s3://%s/%s: %w", s.bucket, name, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, name), nil
}
