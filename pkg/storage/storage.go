// Package storage persists uploaded media under slash-separated keys such as
// "posts/cat.gif".
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotExist = errors.New("storage: object does not exist")

// Storage is implemented by the disk and S3 backends.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	// URL is the public address of key.
	URL(key string) string
}
