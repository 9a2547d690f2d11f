// Package scan implements the two-pass inventory engine: a bottom-up size
// aggregation over the whole tree followed by a deterministic top-down
// walk that decorates every entry with metadata.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sztaroszta/dirscope/internal/entry"
	"github.com/sztaroszta/dirscope/internal/pathutil"
	"github.com/sztaroszta/dirscope/internal/sizes"
)

// ErrRootInvalid is returned before any traversal when the supplied root
// does not exist or is not a directory.
var ErrRootInvalid = errors.New("scan root is not a directory")

// Scanner coordinates the size pass and the walk for a single scan.
type Scanner struct {
	opts *Options

	// Progress counters, read concurrently by Progress().
	processed  int64
	files      int64
	dirs       int64
	errorCount int64
	totalBytes int64
	current    atomic.Value
}

// Progress is a point-in-time snapshot of a running scan.
type Progress struct {
	Processed   int64
	Files       int64
	Dirs        int64
	Errors      int64
	TotalBytes  int64
	CurrentPath string
}

// NewScanner creates a new scanner.
func NewScanner(opts *Options) *Scanner {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Scanner{opts: opts}
}

// Run executes a full scan of root and returns the report. The root is
// validated before any traversal; a missing or non-directory root is the
// only fatal error. Cooperative cancellation through ctx yields a partial
// report with Interrupted set, not an error.
func (s *Scanner) Run(ctx context.Context, root string) (*entry.Report, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRootInvalid, root)
	}
	abs = pathutil.Normalize(abs)

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootInvalid, abs)
	}

	report := &entry.Report{
		Root:    abs,
		Started: time.Now(),
	}
	s.opts.Logger.Info("scan started", zap.String("root", abs))

	var skip sizes.SkipFunc
	if len(s.opts.ExcludePatterns) > 0 {
		skip = s.opts.ShouldExclude
	}

	// Pass one: resolve every directory's cumulative size up front so
	// the walk never re-reads a subtree. Read failures here surface
	// again during the walk, which owns error recording.
	totals, aggErr := sizes.Aggregate(ctx, abs, skip, func(path string, err error) {
		s.opts.Logger.Debug("size pass read failure", zap.String("path", path), zap.Error(err))
	})
	if aggErr != nil {
		report.Interrupted = true
		s.finalize(report, totals)
		return report, nil
	}

	// Pass two: top-down decorated walk.
	s.walk(ctx, abs, totals, report)
	s.finalize(report, totals)

	s.opts.Logger.Info("scan finished",
		zap.Int64("processed", report.Processed),
		zap.Int64("errors", report.ErrorCount()),
		zap.Int64("bytes", report.TotalSize),
		zap.Bool("interrupted", report.Interrupted),
		zap.Duration("elapsed", report.Elapsed))

	return report, nil
}

// Progress returns current scan progress (safe for concurrent access).
func (s *Scanner) Progress() Progress {
	p := Progress{
		Processed:  atomic.LoadInt64(&s.processed),
		Files:      atomic.LoadInt64(&s.files),
		Dirs:       atomic.LoadInt64(&s.dirs),
		Errors:     atomic.LoadInt64(&s.errorCount),
		TotalBytes: atomic.LoadInt64(&s.totalBytes),
	}
	if v := s.current.Load(); v != nil {
		p.CurrentPath = v.(string)
	}
	return p
}

func (s *Scanner) finalize(report *entry.Report, totals map[string]int64) {
	report.TotalSize = totals[report.Root]
	report.NormalizeLevels()
	report.Elapsed = time.Since(report.Started)
}

func (s *Scanner) recordError(report *entry.Report, path string, err error) {
	report.Errors = append(report.Errors, entry.ScanError{
		Path:    path,
		Kind:    entry.KindOfError(err),
		Message: err.Error(),
	})
	atomic.AddInt64(&s.errorCount, 1)
	s.opts.Logger.Debug("entry read failure", zap.String("path", path), zap.Error(err))
}
