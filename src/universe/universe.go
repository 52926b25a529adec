package universe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

var (
	ErrInvalidSize    = errors.New("universe dimensions must be positive")
	ErrOutOfRange     = errors.New("cell is out of range")
	ErrMalformedInput = errors.New("malformed input")
)

type Cell bool

//Area is the field where cells are living
//Entities rows share one contiguous buffer indexed by row*Cols+col
type Area struct {
	Rows     int
	Cols     int
	Entities [][]Cell
}

//Universe holds one generation of cells and the edge topology
type Universe struct {
	area     Area
	toroidal bool
}

//New creates the rows x cols universe with all cells dead
func New(rows int, cols int, toroidal bool) (*Universe, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	if cols > math.MaxInt/rows {
		return nil, fmt.Errorf("%w: %dx%d cells overflow", ErrInvalidSize, rows, cols)
	}
	return &Universe{area: createArea(rows, cols), toroidal: toroidal}, nil
}

//Release drops the backing storage, the universe must not be used afterwards
func (u *Universe) Release() {
	u.area.Entities = nil
}

func (u *Universe) Rows() int {
	return u.area.Rows
}

func (u *Universe) Cols() int {
	return u.area.Cols
}

func (u *Universe) Toroidal() bool {
	return u.toroidal
}

//Area returns the universe area, callers must treat it as read only
func (u *Universe) Area() Area {
	return u.area
}

//Get returns the state of the cell at r, c
func (u *Universe) Get(r int, c int) (bool, error) {
	if !u.valid(r, c) {
		return false, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfRange, r, c, u.area.Rows, u.area.Cols)
	}
	return bool(u.area.Entities[r][c]), nil
}

//Set sets the state of the cell at r, c
func (u *Universe) Set(r int, c int, alive bool) error {
	if !u.valid(r, c) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfRange, r, c, u.area.Rows, u.area.Cols)
	}
	u.area.Entities[r][c] = Cell(alive)
	return nil
}

//Clear kills all cells
func (u *Universe) Clear() {
	u.walkArea(func(r int, c int, _ Cell) {
		u.area.Entities[r][c] = false
	})
}

//LiveCells calculates the count of live cells
func (u *Universe) LiveCells() int {
	liveCells := 0
	u.walkArea(func(r int, c int, e Cell) {
		if e {
			liveCells++
		}
	})
	return liveCells
}

//Walk calls cb for each cell in row-major order
func (u *Universe) Walk(cb func(r int, c int, alive bool)) {
	u.walkArea(func(r int, c int, e Cell) {
		cb(r, c, bool(e))
	})
}

//Equal reports whether both universes have the same shape, topology and cells
func (u *Universe) Equal(o *Universe) bool {
	if u.area.Rows != o.area.Rows || u.area.Cols != o.area.Cols || u.toroidal != o.toroidal {
		return false
	}
	for r := range u.area.Entities {
		for c := range u.area.Entities[r] {
			if u.area.Entities[r][c] != o.area.Entities[r][c] {
				return false
			}
		}
	}
	return true
}

//Populate reads "row col" pairs until the end of input and marks each cell alive
//cells settled before a malformed pair stay alive
func (u *Universe) Populate(src io.Reader) error {
	return u.populate(newWordScanner(src))
}

func (u *Universe) populate(s *bufio.Scanner) error {
	for {
		r, ok, err := scanInt(s)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		c, ok, err := scanInt(s)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: row %d without a column", ErrMalformedInput, r)
		}
		if !u.valid(r, c) {
			return fmt.Errorf("%w: cell (%d, %d) outside %dx%d", ErrMalformedInput, r, c, u.area.Rows, u.area.Cols)
		}
		u.area.Entities[r][c] = true
	}
}

//Census counts the live neighbours of the cell at r, c
func (u *Universe) Census(r int, c int) int {
	liveNeighbours := 0
	for dr := -1; dr < 2; dr++ {
		for dc := -1; dc < 2; dc++ {
			//skip my position
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if u.toroidal {
				nr = wrap(r, dr, u.area.Rows)
				nc = wrap(c, dc, u.area.Cols)
			} else if !u.valid(nr, nc) {
				//skip coordinates outside the area
				continue
			}
			if u.area.Entities[nr][nc] {
				liveNeighbours++
			}
		}
	}
	return liveNeighbours
}

//Print writes the universe as rows of 'o' (alive) and '.' (dead)
func (u *Universe) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, l := range u.area.Entities {
		for _, e := range l {
			if e {
				bw.WriteByte('o')
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

//walkArea walk the entire area and calls the cb function for each cell
func (u *Universe) walkArea(cb func(r int, c int, entity Cell)) {
	for r := range u.area.Entities {
		for c := range u.area.Entities[r] {
			cb(r, c, u.area.Entities[r][c])
		}
	}
}

func (u *Universe) valid(r int, c int) bool {
	return r >= 0 && c >= 0 && r < u.area.Rows && c < u.area.Cols
}

//wrap shifts coord by delta on a ring of size cells, the result is always in [0, size)
func wrap(coord int, delta int, size int) int {
	return ((coord+delta)%size + size) % size
}

func newWordScanner(src io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(src)
	s.Split(bufio.ScanWords)
	return s
}

//scanInt reads the next integer token, ok is false on the end of input
func scanInt(s *bufio.Scanner) (v int, ok bool, err error) {
	if !s.Scan() {
		if err = s.Err(); err != nil {
			return 0, false, fmt.Errorf("read input: %w", err)
		}
		return 0, false, nil
	}
	v, err = strconv.Atoi(s.Text())
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q is not an integer", ErrMalformedInput, s.Text())
	}
	return v, true, nil
}

//createArea allocates the new area over one contiguous buffer
func createArea(rows int, cols int) Area {
	area := Area{Rows: rows, Cols: cols, Entities: make([][]Cell, rows)}
	b := make([]Cell, rows*cols)
	for i := range area.Entities {
		start := cols * i
		area.Entities[i] = b[start : start+cols : start+cols]
	}
	return area
}
