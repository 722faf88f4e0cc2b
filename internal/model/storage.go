package model

import (
	"context"
	"io"
)

// Storage holds reference file bytes keyed by object key.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}
