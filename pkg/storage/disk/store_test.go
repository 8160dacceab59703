package disk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rendypratama/invoicehub-backend/pkg/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), config.UploadsConfig{
		Dir:        t.TempDir(),
		PublicPath: "/uploads",
	}, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSaveAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Save(ctx, "widget.PNG", strings.NewReader("binary-bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(ref, "/uploads/image-") {
		t.Fatalf("unexpected reference %q", ref)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Fatalf("expected lowercased extension, got %q", ref)
	}

	name := strings.TrimPrefix(ref, "/uploads/")
	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "binary-bytes" {
		t.Fatalf("unexpected stored content %q", data)
	}

	if err := store.Delete(ctx, ref); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), name)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, got %v", err)
	}

	// a second delete is a no-op
	if err := store.Delete(ctx, ref); err != nil {
		t.Fatalf("repeat delete should not fail: %v", err)
	}
}

func TestDeleteRejectsForeignReferences(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, ref := range []string{
		"/etc/passwd",
		"/uploads/../escape",
		"/uploads/nested/name",
		"",
	} {
		if err := store.Delete(ctx, ref); err == nil {
			t.Fatalf("expected delete of %q to be rejected", ref)
		}
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "a.jpg", strings.NewReader("1"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := store.Save(ctx, "a.jpg", strings.NewReader("2"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique names, got %q twice", first)
	}
}
