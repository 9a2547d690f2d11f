package scan

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/sztaroszta/dirscope/internal/probe"
)

// ProgressFunc is notified periodically during the walk. Notifications
// are best-effort and one-directional; consumers own all rendering.
type ProgressFunc func(processed int64, currentPath string)

// Options configures the scanning behavior.
type Options struct {
	// Prober answers extended-metadata lookups. Nil disables probing.
	Prober probe.Prober

	// ExcludePatterns are regular expressions for paths to skip. They
	// apply identically to the size pass and the walk.
	ExcludePatterns []*regexp.Regexp

	// OnProgress, when set, is invoked from the walk goroutine every
	// few entries.
	OnProgress ProgressFunc

	// Logger receives per-entry diagnostics. Defaults to a nop logger.
	Logger *zap.Logger
}

// DefaultOptions returns sensible defaults for scanning.
func DefaultOptions() *Options {
	return &Options{
		Prober: probe.Default(),
		Logger: zap.NewNop(),
	}
}

// WithProber sets the metadata prober.
func (o *Options) WithProber(p probe.Prober) *Options {
	o.Prober = p
	return o
}

// WithLogger sets the diagnostic logger.
func (o *Options) WithLogger(l *zap.Logger) *Options {
	if l != nil {
		o.Logger = l
	}
	return o
}

// WithProgressFunc sets the progress notification callback.
func (o *Options) WithProgressFunc(f ProgressFunc) *Options {
	o.OnProgress = f
	return o
}

// AddExcludePattern adds a pattern to exclude.
func (o *Options) AddExcludePattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	o.ExcludePatterns = append(o.ExcludePatterns, re)
	return nil
}

// ShouldExclude checks if a path matches any exclude pattern.
func (o *Options) ShouldExclude(path string) bool {
	for _, re := range o.ExcludePatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
