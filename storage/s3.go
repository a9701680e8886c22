package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
)

// S3Source reads and publishes dataset snapshots in an S3-compatible bucket.
type S3Source struct {
	client *minio.Client
	bucket string
	object string
}

func NewS3Source(endpoint, accessKey, secretKey string, useSSL bool, bucket, object string) (*S3Source, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing S3 endpoint or credentials")
	}
	if bucket == "" || object == "" {
		return nil, fmt.Errorf("missing S3 bucket or object name")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Println("Using S3 dataset source:", endpoint)
	return &S3Source{client: client, bucket: bucket, object: object}, nil
}

// FetchDataset downloads and decodes the configured object. The codec is
// chosen from the object's extension.
func (s *S3Source) FetchDataset(ctx context.Context) (*data.Dataset, error) {
	format, err := data.FormatFor(s.object)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer obj.Close()

	ds, err := data.Decode(obj, format)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, s.object, err)
	}
	log.Printf("Loaded dataset from s3://%s/%s", s.bucket, s.object)
	return ds, nil
}

func (s *S3Source) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// PutSnapshot uploads a snapshot under key. An empty key means the
// configured dataset object.
func (s *S3Source) PutSnapshot(ctx context.Context, key string, r io.Reader, size int64) error {
	if key == "" {
		key = s.object
	}
	contentType := "application/octet-stream"
	if format, err := data.FormatFor(key); err == nil && format == data.FormatJSON {
		contentType = "application/json"
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to store object in S3: %w", err)
	}
	log.Printf("Stored snapshot s3://%s/%s (%d bytes)", s.bucket, key, info.Size)
	return nil
}
