//go:build !linux && !darwin && !freebsd && !netbsd

package probe

func newXattr() (Prober, error) {
	return nil, ErrUnavailable
}
