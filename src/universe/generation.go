package universe

import (
	"errors"
	"fmt"
	"time"
)

var ErrMismatch = errors.New("universes differ in shape or topology")

//Stats describes one computed generation
type Stats struct {
	LiveCells     int
	Changed       bool
	IterationTime time.Duration
}

//NextState applies the B3/S23 rule to a cell with n live neighbours
func NextState(alive bool, n int) bool {
	return (alive && (n == 2 || n == 3)) || (!alive && n == 3)
}

//Advance computes the next generation of cur into next
//cur is only read and next is only written, so next must not alias cur
func Advance(cur *Universe, next *Universe) (st Stats, err error) {
	if cur == next {
		return st, fmt.Errorf("%w: next generation aliases the current one", ErrMismatch)
	}
	if cur.area.Rows != next.area.Rows || cur.area.Cols != next.area.Cols || cur.toroidal != next.toroidal {
		return st, fmt.Errorf("%w: %dx%d to %dx%d", ErrMismatch, cur.area.Rows, cur.area.Cols, next.area.Rows, next.area.Cols)
	}
	start := time.Now()
	cur.walkArea(func(r int, c int, e Cell) {
		nextState := NextState(bool(e), cur.Census(r, c))
		if nextState {
			st.LiveCells++
		}
		st.Changed = st.Changed || nextState != bool(e)
		next.area.Entities[r][c] = Cell(nextState)
	})
	st.IterationTime = time.Since(start)
	return st, nil
}
