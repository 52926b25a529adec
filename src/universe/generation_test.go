package universe

import (
	"errors"
	"testing"
)

func TestNextState(t *testing.T) {
	for n := 0; n <= 8; n++ {
		if got, want := NextState(true, n), n == 2 || n == 3; got != want {
			t.Errorf("live cell with %d neighbours: got %v", n, got)
		}
		if got, want := NextState(false, n), n == 3; got != want {
			t.Errorf("dead cell with %d neighbours: got %v", n, got)
		}
	}
}

func advance(t *testing.T, u *Universe, generations int) *Universe {
	t.Helper()
	next := mustNew(t, u.Rows(), u.Cols(), u.Toroidal())
	for i := 0; i < generations; i++ {
		if _, err := Advance(u, next); err != nil {
			t.Fatal(err)
		}
		u, next = next, u
	}
	return u
}

func TestBlockStillLife(t *testing.T) {
	block := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	want := mustNew(t, 4, 4, false, block...)
	for _, g := range []int{1, 2, 7, 50} {
		u := advance(t, mustNew(t, 4, 4, false, block...), g)
		if !u.Equal(want) {
			t.Fatalf("block changed after %d generations", g)
		}
	}
}

func TestBlinker(t *testing.T) {
	for _, toroidal := range []bool{false, true} {
		horizontal := mustNew(t, 5, 5, toroidal, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
		vertical := mustNew(t, 5, 5, toroidal, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

		u := advance(t, mustNew(t, 5, 5, toroidal, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3}), 1)
		if !u.Equal(vertical) {
			t.Fatalf("toroidal=%v: blinker should be vertical after 1 generation", toroidal)
		}
		u = advance(t, u, 1)
		if !u.Equal(horizontal) {
			t.Fatalf("toroidal=%v: blinker should be horizontal after 2 generations", toroidal)
		}
	}
}

func TestGliderWrapsAround(t *testing.T) {
	glider := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	//a glider moves one cell diagonally every 4 generations, so it is back after 4*size
	u := advance(t, mustNew(t, 6, 6, true, glider...), 24)
	if !u.Equal(mustNew(t, 6, 6, true, glider...)) {
		t.Fatal("glider should return to its start on a 6x6 torus after 24 generations")
	}
	//on a bounded grid the glider freezes into a block in the corner
	b := advance(t, mustNew(t, 6, 6, false, glider...), 24)
	if !b.Equal(mustNew(t, 6, 6, false, [2]int{4, 4}, [2]int{4, 5}, [2]int{5, 4}, [2]int{5, 5})) {
		t.Fatal("glider should end as a block in the bounded corner")
	}
}

func TestAdvanceStats(t *testing.T) {
	cur := mustNew(t, 5, 5, false, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	next := mustNew(t, 5, 5, false)
	st, err := Advance(cur, next)
	if err != nil {
		t.Fatal(err)
	}
	if st.LiveCells != 3 || !st.Changed {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if cur.LiveCells() != 3 {
		t.Fatal("the current generation must not be modified")
	}
}

//stale cells in the next buffer must not leak into the new generation
func TestAdvanceOverwritesNext(t *testing.T) {
	cur := mustNew(t, 3, 3, false)
	next := mustNew(t, 3, 3, false, [2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2})
	st, err := Advance(cur, next)
	if err != nil {
		t.Fatal(err)
	}
	if st.LiveCells != 0 || next.LiveCells() != 0 || st.Changed {
		t.Fatalf("unexpected stats %+v, next live cells %d", st, next.LiveCells())
	}
}

func TestAdvanceMismatch(t *testing.T) {
	u := mustNew(t, 3, 3, false)
	tests := map[string]*Universe{
		"same buffer": u,
		"rows":        mustNew(t, 4, 3, false),
		"cols":        mustNew(t, 3, 4, false),
		"topology":    mustNew(t, 3, 3, true),
	}
	for name, next := range tests {
		if _, err := Advance(u, next); !errors.Is(err, ErrMismatch) {
			t.Errorf("%s: got %v, want ErrMismatch", name, err)
		}
	}
}
