// Package storage stores photo attachments in an S3-compatible object store
// and resolves their public URLs.
package storage

import (
	"context"
	"io"
)

// ObjectStore writes binary attachment payloads under namespaced keys.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	PublicURL(key string) string
}
