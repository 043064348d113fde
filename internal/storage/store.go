// AngelaMos | 2026
// store.go

package storage

import (
	"context"
	"io"
)

// Store abstracts blob persistence so handlers never touch the filesystem
// directly. A ref is an opaque string the store can later resolve.
type Store interface {
	Save(ctx context.Context, dir, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}
