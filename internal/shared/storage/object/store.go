// Package object abstracts leaf-image archival so callers do not bind to a
// concrete object store. Disease predictions keep a pointer to the uploaded
// image when a store is configured; when none is, archival is skipped.
package object

import (
	"context"
	"io"
)

// Store writes uploaded images to durable storage and hands back a stable
// object name plus a time-limited download URL.
type Store interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	PresignedURL(ctx context.Context, objectName string) (string, error)
	Remove(ctx context.Context, objectName string) error
}
