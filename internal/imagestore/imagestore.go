// Package imagestore defines where inspection item images live. The returned
// storage key is the opaque reference recorded on the item; nothing outside
// the store interprets it.
package imagestore

import (
	"context"
	"io"
)

type Store interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}
