package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client builds a path-style client for an S3-compatible endpoint
// (MinIO, Yandex Object Storage, AWS) using static credentials.
func NewS3Client(ctx context.Context, accessKey, secretKey, region, endpoint string) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

type S3Store struct {
	client   S3API
	bucket   string
	endpoint string
}

func NewS3Store(client S3API, bucket, endpoint string) *S3Store {
	return &S3Store{client: client, bucket: bucket, endpoint: endpoint}
}

func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		in.ContentLength = aws.Int64(size)
	}

	out, err := s.client.PutObject(ctx, in)
	if err != nil {
		return classifyS3("put", key, err)
	}
	if out == nil || out.ETag == nil {
		return fmt.Errorf("put %s: empty etag in response", key)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3("get", key, err)
	}
	return out.Body, nil
}

func (s *S3Store) URL(key string) string {
	return JoinURL(s.endpoint, s.bucket, key)
}

func (s *S3Store) KeyFromURL(url string) string {
	return KeyFromURL(url, s.bucket)
}

func classifyS3(op, key string, err error) error {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return fmt.Errorf("%s %s: %w", op, key, ErrNotFound)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%s %s: %w", op, key, ErrNotFound)
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%s %s: %w: %v", op, key, ErrPermissionDenied, err)
		}
		return fmt.Errorf("%s %s: %w", op, key, err)
	}

	var sendErr *smithyhttp.RequestSendError
	var netErr net.Error
	if errors.As(err, &sendErr) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w: %v", op, key, ErrUnavailable, err)
	}

	return fmt.Errorf("%s %s: %w", op, key, err)
}
