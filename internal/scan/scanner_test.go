package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sztaroszta/dirscope/internal/entry"
	"github.com/sztaroszta/dirscope/internal/probe"
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

func quietOptions() *Options {
	return DefaultOptions().WithProber(probe.Noop{})
}

func buildFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), 50)
	writeFile(t, filepath.Join(root, "sub", "deep", "c.bin"), 25)
	writeFile(t, filepath.Join(root, "zed", "d.md"), 10)
	return root
}

func relPaths(r *entry.Report) []string {
	paths := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		paths[i] = e.RelPath
	}
	return paths
}

func TestRunRootInvalid(t *testing.T) {
	s := NewScanner(quietOptions())
	if _, err := s.Run(context.Background(), filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrRootInvalid) {
		t.Fatalf("missing root error = %v, want ErrRootInvalid", err)
	}

	file := filepath.Join(t.TempDir(), "f.txt")
	writeFile(t, file, 1)
	if _, err := NewScanner(quietOptions()).Run(context.Background(), file); !errors.Is(err, ErrRootInvalid) {
		t.Fatalf("file root error = %v, want ErrRootInvalid", err)
	}
}

func TestRunDeterministicOrder(t *testing.T) {
	root := buildFixture(t)

	first, err := NewScanner(quietOptions()).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	second, err := NewScanner(quietOptions()).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}

	a, b := relPaths(first), relPaths(second)
	if len(a) != len(b) {
		t.Fatalf("entry counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order differs at %d: %q vs %q", i, a[i], b[i])
		}
	}

	want := []string{"a.txt", "sub", "sub/b.txt", "sub/deep", "sub/deep/c.bin", "zed", "zed/d.md"}
	for i, rel := range want {
		if a[i] != rel {
			t.Fatalf("entry %d = %q, want %q (got %v)", i, a[i], rel, a)
		}
	}
}

func TestRunSizeInvariant(t *testing.T) {
	root := buildFixture(t)
	report, err := NewScanner(quietOptions()).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	// Each directory's size must equal the sum of its immediate
	// children's sizes.
	childSums := make(map[string]int64)
	byRel := make(map[string]entry.Entry)
	for _, e := range report.Entries {
		byRel[e.RelPath] = e
		parent := filepath.ToSlash(filepath.Dir(e.RelPath))
		childSums[parent] += e.Size
	}
	for rel, e := range byRel {
		if e.IsDir {
			if got := childSums[rel]; got != e.Size {
				t.Fatalf("dir %s size = %d, children sum = %d", rel, e.Size, got)
			}
		}
	}
	if childSums["."] != report.TotalSize {
		t.Fatalf("total size = %d, top-level sum = %d", report.TotalSize, childSums["."])
	}
	if report.TotalSize != 185 {
		t.Fatalf("total size = %d, want 185", report.TotalSize)
	}
}

func TestRunLevelsUniform(t *testing.T) {
	root := buildFixture(t)
	report, err := NewScanner(quietOptions()).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if report.MaxDepth != 3 {
		t.Fatalf("max depth = %d, want 3", report.MaxDepth)
	}
	for _, e := range report.Entries {
		if len(e.Levels) != report.MaxDepth {
			t.Fatalf("entry %s levels = %v, want length %d", e.RelPath, e.Levels, report.MaxDepth)
		}
		if e.Levels[0] != filepath.Base(root) {
			t.Fatalf("entry %s level 1 = %q, want root name", e.RelPath, e.Levels[0])
		}
	}
}

func TestRunStatistics(t *testing.T) {
	root := buildFixture(t)
	report, err := NewScanner(quietOptions()).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if report.Processed != 7 || report.Files != 4 || report.Dirs != 3 {
		t.Fatalf("counts = %d/%d/%d, want 7/4/3", report.Processed, report.Files, report.Dirs)
	}
	if report.ErrorCount() != 0 {
		t.Fatalf("errors = %d, want 0", report.ErrorCount())
	}
	if report.Elapsed <= 0 {
		t.Fatalf("elapsed = %v, want > 0", report.Elapsed)
	}
	if report.Interrupted {
		t.Fatalf("unexpected interrupted flag")
	}
	for _, e := range report.Entries {
		if e.Modified.IsZero() {
			t.Fatalf("entry %s has zero mtime", e.RelPath)
		}
	}
}

func TestRunEmptyRoot(t *testing.T) {
	report, err := NewScanner(quietOptions()).Run(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if report.Processed != 0 || report.TotalSize != 0 || report.ErrorCount() != 0 {
		t.Fatalf("empty root stats = %d/%d/%d, want zeros",
			report.Processed, report.TotalSize, report.ErrorCount())
	}
	if len(report.Entries) != 0 {
		t.Fatalf("empty root entries = %d", len(report.Entries))
	}
}

func TestRunUnreadableSubtree(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), 50)
	locked := filepath.Join(root, "sub", "c")
	if err := os.MkdirAll(locked, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	report, err := NewScanner(quietOptions()).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if report.TotalSize != 150 {
		t.Fatalf("total size = %d, want 150", report.TotalSize)
	}
	if report.ErrorCount() != 1 {
		t.Fatalf("errors = %d, want 1 (%v)", report.ErrorCount(), report.Errors)
	}
	if report.Errors[0].Kind != entry.ErrAccessDenied {
		t.Fatalf("error kind = %v, want access-denied", report.Errors[0].Kind)
	}

	byRel := make(map[string]entry.Entry)
	for _, e := range report.Entries {
		byRel[e.RelPath] = e
	}
	if sub := byRel["sub"]; sub.Size != 50 {
		t.Fatalf("sub size = %d, want 50", sub.Size)
	}
	if c, ok := byRel["sub/c"]; !ok || c.Size != 0 {
		t.Fatalf("locked dir entry = %+v, want recorded with zero size", c)
	}
	if report.MaxDepth != 3 {
		t.Fatalf("max depth = %d, want 3", report.MaxDepth)
	}
}

func TestRunCancellationPrefix(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 30; i++ {
		writeFile(t, filepath.Join(root, "dir", string(rune('a'+i%26))+"-"+string(rune('0'+i/26))+".dat"), 8)
	}

	full, err := NewScanner(quietOptions()).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("full scan: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	opts := quietOptions().WithProgressFunc(func(processed int64, path string) {
		cancel()
	})
	partial, err := NewScanner(opts).Run(ctx, root)
	if err != nil {
		t.Fatalf("partial scan: %v", err)
	}

	if !partial.Interrupted {
		t.Fatalf("expected interrupted report")
	}
	if len(partial.Entries) == 0 || len(partial.Entries) >= len(full.Entries) {
		t.Fatalf("partial entries = %d, full = %d, want strict prefix", len(partial.Entries), len(full.Entries))
	}
	fullRels := relPaths(full)
	for i, rel := range relPaths(partial) {
		if rel != fullRels[i] {
			t.Fatalf("prefix mismatch at %d: %q vs %q", i, rel, fullRels[i])
		}
	}
	if partial.Processed != int64(len(partial.Entries)) {
		t.Fatalf("processed = %d, entries = %d", partial.Processed, len(partial.Entries))
	}
}

func TestRunProbeAbsent(t *testing.T) {
	root := buildFixture(t)
	report, err := NewScanner(quietOptions()).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, e := range report.Entries {
		if e.Kind != "" || len(e.Tags) != 0 {
			t.Fatalf("entry %s has attributes %q %v with no-op probe", e.RelPath, e.Kind, e.Tags)
		}
		if e.Size < 0 || e.Modified.IsZero() {
			t.Fatalf("entry %s missing core data", e.RelPath)
		}
	}
}

func TestRunExcludePatterns(t *testing.T) {
	root := buildFixture(t)
	opts := quietOptions()
	if err := opts.AddExcludePattern(`/sub(/|$)`); err != nil {
		t.Fatalf("exclude pattern: %v", err)
	}

	report, err := NewScanner(opts).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	for _, e := range report.Entries {
		if e.RelPath == "sub" || filepath.Dir(e.RelPath) == "sub" {
			t.Fatalf("excluded entry present: %s", e.RelPath)
		}
	}
	if report.TotalSize != 110 {
		t.Fatalf("total size = %d, want 110 (excluded subtree must not count)", report.TotalSize)
	}
}

func TestScannerProgressSnapshot(t *testing.T) {
	root := buildFixture(t)
	s := NewScanner(quietOptions())
	if _, err := s.Run(context.Background(), root); err != nil {
		t.Fatalf("scan: %v", err)
	}
	p := s.Progress()
	if p.Processed != 7 || p.Files != 4 || p.Dirs != 3 {
		t.Fatalf("progress = %+v", p)
	}
	if p.TotalBytes != 185 {
		t.Fatalf("progress bytes = %d, want 185", p.TotalBytes)
	}
}
