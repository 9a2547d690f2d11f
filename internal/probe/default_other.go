//go:build !darwin && !linux && !freebsd && !netbsd

package probe

// Default returns the no-op prober on platforms without a metadata
// backend.
func Default() Prober {
	return Noop{}
}
