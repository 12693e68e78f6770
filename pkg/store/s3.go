package store

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/matzehuels/pathmaker/pkg/config"
	"github.com/matzehuels/pathmaker/pkg/errors"
)

// S3Store keeps each map as an object in an S3-compatible bucket.
// The bucket is created on first use if it does not exist.
type S3Store struct {
	client *minio.Client
	bucket string
	region string
	prefix string

	initOnce sync.Once
	initErr  error
}

// NewS3Store creates a client for the configured endpoint. No request is
// made until the first operation.
func NewS3Store(cfg config.S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "s3 endpoint is required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "init s3 client")
	}

	prefix := strings.Trim(strings.TrimSpace(cfg.Prefix), "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Store{client: client, bucket: bucket, region: region, prefix: prefix}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	if s.initErr != nil {
		return errors.Wrap(errors.ErrCodeStorage, s.initErr, "ensure bucket %s", s.bucket)
	}
	return nil
}

func (s *S3Store) objectKey(name string) string { return s.prefix + name }

func isNoSuchKey(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}

// Get downloads the map object.
func (s *S3Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := errors.ValidateMapName(name); err != nil {
		return nil, err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	var data []byte
	err := retry(ctx, func() error {
		obj, err := s.client.GetObject(ctx, s.bucket, s.objectKey(name), minio.GetObjectOptions{})
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "s3 get %s", name))
		}
		defer obj.Close()

		v, err := io.ReadAll(obj)
		if err != nil {
			if isNoSuchKey(err) {
				return errors.New(errors.ErrCodeNotFound, "map %s not found", name)
			}
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "s3 get %s", name))
		}
		data = v
		return nil
	})
	return data, err
}

// Put uploads the map object.
func (s *S3Store) Put(ctx context.Context, name string, data []byte) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	return retry(ctx, func() error {
		_, err := s.client.PutObject(ctx, s.bucket, s.objectKey(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "text/plain",
		})
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "s3 put %s", name))
		}
		return nil
	})
}

// Delete removes the map object. S3 deletes are idempotent, so the object
// is looked up first to report missing maps.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	return retry(ctx, func() error {
		key := s.objectKey(name)
		if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
			if isNoSuchKey(err) {
				return errors.New(errors.ErrCodeNotFound, "map %s not found", name)
			}
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "s3 stat %s", name))
		}
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "s3 delete %s", name))
		}
		return nil
	})
}

// List returns the object names under the prefix in lexical order.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	names := make([]string, 0, 32)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, obj.Err, "s3 list")
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing; the minio client holds no persistent connections.
func (s *S3Store) Close() error { return nil }

// Backend returns "s3:" followed by the bucket.
func (s *S3Store) Backend() string { return "s3:" + s.bucket }

// Ensure S3Store implements Store.
var _ Store = (*S3Store)(nil)
