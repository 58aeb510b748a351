package entity

// BoardSize is fixed for the whole session; the grid never grows or shrinks.
const BoardSize = 15

// Cell is the state of one board intersection.
type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "black"
	case CellWhite:
		return "white"
	default:
		return "empty"
	}
}

// Opponent returns the other stone color. Empty has no opponent and is
// returned unchanged.
func (c Cell) Opponent() Cell {
	switch c {
	case CellBlack:
		return CellWhite
	case CellWhite:
		return CellBlack
	default:
		return c
	}
}

// Board is a fixed 15x15 grid. It is an array, not a slice, so copying a
// Board value is a full snapshot - strategies simulate on copies.
type Board struct {
	cells [BoardSize * BoardSize]Cell
}

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) At(row, col int) Cell {
	return that.cells[row*BoardSize+col]
}

func (that *Board) Set(row, col int, value Cell) {
	that.cells[row*BoardSize+col] = value
}

func (that *Board) Remove(row, col int) {
	that.cells[row*BoardSize+col] = CellEmpty
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < BoardSize && col < BoardSize
}

func (that *Board) IsEmpty(row, col int) bool {
	return that.InBounds(row, col) && that.At(row, col) == CellEmpty
}

func (that *Board) CountEmpty() int {
	count := 0
	for _, cell := range that.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (that *Board) Reset() {
	that.cells = [BoardSize * BoardSize]Cell{}
}

// Clone returns an independent copy of the board.
func (that *Board) Clone() *Board {
	clone := *that
	return &clone
}

// Ints renders the board as a row-major matrix of small integers:
// 0 = empty, 1 = black, 2 = white. This is the wire and storage shape.
func (that *Board) Ints() [][]int {
	rows := make([][]int, BoardSize)
	for r := 0; r < BoardSize; r++ {
		rows[r] = make([]int, BoardSize)
		for c := 0; c < BoardSize; c++ {
			rows[r][c] = int(that.At(r, c))
		}
	}
	return rows
}

// BoardFromInts rebuilds a board from its integer matrix form. Unknown
// values are treated as empty.
func BoardFromInts(rows [][]int) *Board {
	board := NewBoard()
	for r := 0; r < BoardSize && r < len(rows); r++ {
		for c := 0; c < BoardSize && c < len(rows[r]); c++ {
			switch rows[r][c] {
			case int(CellBlack):
				board.Set(r, c, CellBlack)
			case int(CellWhite):
				board.Set(r, c, CellWhite)
			}
		}
	}
	return board
}
