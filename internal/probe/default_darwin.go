//go:build darwin

package probe

// Default returns the platform prober: Spotlight via mdls, falling back
// to raw extended attributes if the tool is missing.
func Default() Prober {
	if m := NewMDLS(); m.Available() {
		return m
	}
	if p, err := newXattr(); err == nil {
		return p
	}
	return Noop{}
}
