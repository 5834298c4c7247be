// Package assets abstracts where the e-book file lives. Two backends are
// provided: the local filesystem and an S3-compatible object store.
package assets

import (
	"context"
	"io"
)

// Asset is an opened, ready-to-stream copy of the product file. The caller
// owns Content and must close it.
type Asset struct {
	Content     io.ReadCloser
	Size        int64
	ContentType string
}

// Store opens the product file. A missing file yields common.ErrorNotFound.
type Store interface {
	Open(ctx context.Context) (*Asset, error)
}
