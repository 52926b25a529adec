package universe

import (
	"fmt"
	"io"
)

//Load reads the "<rows> <cols>" header followed by the live cell pairs
func Load(src io.Reader, toroidal bool) (*Universe, error) {
	s := newWordScanner(src)
	var dims [2]int
	for i := range dims {
		v, ok, err := scanInt(s)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: header needs rows and cols", ErrMalformedInput)
		}
		dims[i] = v
	}
	u, err := New(dims[0], dims[1], toroidal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if err = u.populate(s); err != nil {
		return nil, err
	}
	return u, nil
}
