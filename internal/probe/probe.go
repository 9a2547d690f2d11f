// Package probe looks up extended descriptive metadata (human-readable
// kind, user-assigned tags) for filesystem entries. Lookups are
// best-effort: a failing or missing backend never blocks the scan's core
// size, path, and timestamp data.
package probe

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the platform metadata mechanism cannot
// serve a lookup (tool missing, filesystem without attribute support).
var ErrUnavailable = errors.New("extended metadata unavailable")

// Attributes holds the extended metadata for a single entry.
type Attributes struct {
	Kind string
	Tags []string
}

// Prober answers metadata lookups for individual paths. Calls are
// independent and share no mutable state, so a Prober is safe to use
// concurrently.
type Prober interface {
	Name() string
	Probe(ctx context.Context, path string) (Attributes, error)
}

// Noop is the fallback prober for platforms without a metadata backend.
// It always succeeds with absent attributes.
type Noop struct{}

func (Noop) Name() string { return "none" }

func (Noop) Probe(ctx context.Context, path string) (Attributes, error) {
	return Attributes{}, nil
}

// ByName returns the prober for an explicit backend selection. The empty
// string and "auto" pick the platform default.
func ByName(name string) (Prober, error) {
	switch name {
	case "", "auto":
		return Default(), nil
	case "mdls":
		return NewMDLS(), nil
	case "xattr":
		return newXattr()
	case "none", "off":
		return Noop{}, nil
	default:
		return nil, errors.New("unknown probe backend: " + name)
	}
}
