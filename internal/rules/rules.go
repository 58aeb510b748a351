// Package rules holds the pure rule engine: line-completion detection,
// board-full check and stone tallies. Functions here are total over a
// well-formed board and keep no state of their own.
package rules

import "github.com/blastrow/blastfive-backend/internal/entity"

// LineLength is the run length that completes a line and blasts it off
// the board.
const LineLength = 5

// axis directions: horizontal, vertical, diagonal down-right, diagonal
// up-right. Each is walked in both the positive and negative sense.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

// CompletedLines returns the deduplicated set of coordinates removed by
// placing color at move, or nil when no axis through the placement reaches
// a contiguous run of LineLength. Runs longer than LineLength are removed
// whole, and a cell on two qualifying axes appears once. The stone is
// expected to already sit on the board at move.
func CompletedLines(board *entity.Board, move entity.Move, color entity.Cell) []entity.Move {
	var removed []entity.Move
	seen := make(map[entity.Move]struct{})

	for _, dir := range directions {
		line := collectRun(board, move, dir[0], dir[1], color)
		if len(line) < LineLength {
			continue
		}
		for _, cell := range line {
			if _, ok := seen[cell]; ok {
				continue
			}
			seen[cell] = struct{}{}
			removed = append(removed, cell)
		}
	}

	return removed
}

// RunLength counts the contiguous same-color run through move along the
// given axis, including the origin cell itself.
func RunLength(board *entity.Board, move entity.Move, dRow, dCol int, color entity.Cell) int {
	count := 1
	count += countDirection(board, move, dRow, dCol, color)
	count += countDirection(board, move, -dRow, -dCol, color)
	return count
}

// Directions exposes the four axis directions for callers that score runs.
func Directions() [4][2]int {
	return directions
}

// BoardIsFull reports whether no empty cell remains.
func BoardIsFull(board *entity.Board) bool {
	return board.CountEmpty() == 0
}

// TallyStones counts the stones of each color currently on the board.
func TallyStones(board *entity.Board) (black, white int) {
	for r := 0; r < entity.BoardSize; r++ {
		for c := 0; c < entity.BoardSize; c++ {
			switch board.At(r, c) {
			case entity.CellBlack:
				black++
			case entity.CellWhite:
				white++
			}
		}
	}
	return black, white
}

func countDirection(board *entity.Board, start entity.Move, dRow, dCol int, color entity.Cell) int {
	count := 0
	row := start.Row + dRow
	col := start.Col + dCol
	for board.InBounds(row, col) && board.At(row, col) == color {
		count++
		row += dRow
		col += dCol
	}
	return count
}

// collectRun gathers every cell of the contiguous run through start along
// one axis, origin included, in board order.
func collectRun(board *entity.Board, start entity.Move, dRow, dCol int, color entity.Cell) []entity.Move {
	row := start.Row
	col := start.Col
	for board.InBounds(row-dRow, col-dCol) && board.At(row-dRow, col-dCol) == color {
		row -= dRow
		col -= dCol
	}

	var line []entity.Move
	for board.InBounds(row, col) && board.At(row, col) == color {
		line = append(line, entity.Move{Row: row, Col: col})
		row += dRow
		col += dCol
	}
	return line
}
