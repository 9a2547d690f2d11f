package sizes

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestAggregateCumulativeSizes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), 50)
	writeFile(t, filepath.Join(root, "sub", "deep", "c.txt"), 25)
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir empty: %v", err)
	}

	totals, err := Aggregate(context.Background(), root, nil, nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	want := map[string]int64{
		root:                               175,
		filepath.Join(root, "sub"):         75,
		filepath.Join(root, "sub", "deep"): 25,
		filepath.Join(root, "empty"):       0,
	}
	for path, size := range want {
		if got := totals[path]; got != size {
			t.Fatalf("size of %s = %d, want %d", path, got, size)
		}
	}
	if len(totals) != len(want) {
		t.Fatalf("got %d directories, want %d", len(totals), len(want))
	}
}

func TestAggregateSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real.bin"), 64)
	if err := os.Symlink(filepath.Join(root, "real.bin"), filepath.Join(root, "link.bin")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(root, filepath.Join(root, "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	totals, err := Aggregate(context.Background(), root, nil, nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if got := totals[root]; got != 64 {
		t.Fatalf("root size = %d, want 64 (symlinks must not count)", got)
	}
}

func TestAggregateUnreadableSubtree(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), 50)
	locked := filepath.Join(root, "sub", "c")
	writeFile(t, filepath.Join(locked, "hidden.bin"), 999)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	var errPaths []string
	totals, err := Aggregate(context.Background(), root, nil, func(path string, err error) {
		errPaths = append(errPaths, path)
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if got := totals[filepath.Join(root, "sub")]; got != 50 {
		t.Fatalf("sub size = %d, want 50 (unreadable child contributes zero)", got)
	}
	if got := totals[root]; got != 150 {
		t.Fatalf("root size = %d, want 150", got)
	}
	if got := totals[locked]; got != 0 {
		t.Fatalf("locked dir size = %d, want 0", got)
	}
	if len(errPaths) != 1 || errPaths[0] != locked {
		t.Fatalf("error paths = %v, want [%s]", errPaths, locked)
	}
}

func TestAggregateCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "f"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Aggregate(ctx, root, nil, nil); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
