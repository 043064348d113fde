// AngelaMos | 2026
// local_test.go

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, maxBytes int64) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), maxBytes)
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	return store
}

func TestSaveAndRemove(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, 1024)
	ctx := context.Background()

	ref, err := store.Save(ctx, "receipts", "bill.pdf", strings.NewReader("pdfdata"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(ref, "receipts/") {
		t.Errorf("ref = %q, want receipts/ prefix", ref)
	}
	if !strings.HasSuffix(ref, "bill.pdf") {
		t.Errorf("ref = %q, want bill.pdf suffix", ref)
	}

	full := filepath.Join(store.root, filepath.FromSlash(ref))
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "pdfdata" {
		t.Errorf("content = %q, want pdfdata", data)
	}

	if err := store.Remove(ctx, ref); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Errorf("file still present after remove")
	}

	// Removing twice is a no-op.
	if err := store.Remove(ctx, ref); err != nil {
		t.Errorf("second remove: %v", err)
	}
}

func TestSaveRejectsOversize(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, 4)

	_, err := store.Save(context.Background(), "receipts", "big.bin",
		strings.NewReader("too large"))
	if err == nil {
		t.Fatal("expected size error")
	}
}

func TestSaveSanitizesNames(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, 1024)

	ref, err := store.Save(context.Background(), "../..", "../../etc/passwd",
		strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(ref, "..") {
		t.Errorf("ref %q contains traversal", ref)
	}
	if !strings.HasPrefix(ref, "misc/") {
		t.Errorf("ref = %q, want misc/ fallback dir", ref)
	}
}

func TestRemoveRejectsTraversal(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, 1024)

	if err := store.Remove(context.Background(), "../outside"); err == nil {
		t.Fatal("expected traversal rejection")
	}
}
