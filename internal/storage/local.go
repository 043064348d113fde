// AngelaMos | 2026
// local.go

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/washtrack/washtrack/internal/core"
)

// LocalStore writes blobs under a single root directory. Refs are paths
// relative to the root, so they stay portable across deployments.
type LocalStore struct {
	root     string
	maxBytes int64
}

func NewLocalStore(root string, maxBytes int64) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}

	return &LocalStore{root: abs, maxBytes: maxBytes}, nil
}

func (s *LocalStore) Save(
	ctx context.Context,
	dir, filename string,
	r io.Reader,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := sanitizeFilename(filename)
	if name == "" {
		return "", core.FileUploadError("invalid file name")
	}

	// Prefix with a fresh uuid so concurrent uploads of the same name
	// never clobber each other.
	rel := filepath.Join(sanitizeDir(dir), uuid.NewString()[:8]+"_"+name)
	full := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	limited := io.LimitReader(r, s.maxBytes+1)
	written, err := io.Copy(f, limited)
	if err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if written > s.maxBytes {
		_ = os.Remove(full)
		return "", core.FileUploadError("file exceeds the maximum allowed size")
	}

	return filepath.ToSlash(rel), nil
}

func (s *LocalStore) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove upload: %w", err)
	}

	return nil
}

// resolve rejects refs that would escape the root.
func (s *LocalStore) resolve(ref string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(ref))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid blob ref %q", ref)
	}
	return full, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if len(out) > 100 {
		out = out[len(out)-100:]
	}
	return out
}

func sanitizeDir(dir string) string {
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	if dir == "" || strings.Contains(dir, "..") {
		return "misc"
	}
	return dir
}
