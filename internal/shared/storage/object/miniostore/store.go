// Package miniostore backs object.Store with a MinIO (S3-compatible) bucket.
package miniostore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const presignTTL = time.Hour

// Options carries the connection settings for the bucket.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store uploads and serves leaf images from a single bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// New connects to the endpoint and ensures the bucket exists.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("miniostore: endpoint is required")
	}
	if opts.Bucket == "" {
		opts.Bucket = "agroadvisor-uploads"
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("miniostore: create client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("miniostore: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("miniostore: create bucket: %w", err)
		}
	}

	return &Store{client: client, bucket: opts.Bucket}, nil
}

// Put streams the reader into the bucket and returns the object name.
func (s *Store) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("miniostore: upload %s: %w", objectName, err)
	}
	return objectName, nil
}

// PresignedURL returns a short-lived download link for the object.
func (s *Store) PresignedURL(ctx context.Context, objectName string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, presignTTL, nil)
	if err != nil {
		return "", fmt.Errorf("miniostore: presign %s: %w", objectName, err)
	}
	return u.String(), nil
}

// Remove deletes the object from the bucket.
func (s *Store) Remove(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("miniostore: remove %s: %w", objectName, err)
	}
	return nil
}
