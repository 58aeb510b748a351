// Package strategy contains the automated move-selection tiers, from pure
// randomness to heuristic search, plus an optional external move oracle
// with local fallback.
package strategy

import (
	"context"

	"github.com/blastrow/blastfive-backend/internal/entity"
)

const (
	KindRandom    = "random"
	KindHeuristic = "heuristic"
	KindStrong    = "strong"
	KindOracle    = "oracle"
)

// Scores carries both seats' accumulated points; the oracle tier forwards
// them to the external service.
type Scores struct {
	Seat1 int `json:"seat1"`
	Seat2 int `json:"seat2"`
}

// Strategy proposes a move for the given color. The boolean is false when
// no candidate cell exists at all, which the session controller treats as
// immediate termination. A strategy never proposes an occupied cell.
type Strategy interface {
	Name() string
	ProposeMove(ctx context.Context, board *entity.Board, color entity.Cell, scores Scores) (entity.Move, bool)
}

// ForName selects a tier by its config name. Unknown or empty names fall
// back to the random tier rather than failing.
func ForName(name string, oracle MoveOracle) Strategy {
	switch name {
	case KindHeuristic:
		return NewHeuristic()
	case KindStrong:
		return NewStrong()
	case KindOracle:
		return NewOracle(oracle)
	default:
		return NewRandom()
	}
}

// candidates returns the empty cells within the given radius of any stone.
// On an entirely empty board the sole candidate is the center cell.
func candidates(board *entity.Board, radius int) []entity.Move {
	var moves []entity.Move
	occupied := false

	for r := 0; r < entity.BoardSize; r++ {
		for c := 0; c < entity.BoardSize; c++ {
			if board.At(r, c) != entity.CellEmpty {
				occupied = true
				continue
			}
			if hasStoneNearby(board, r, c, radius) {
				moves = append(moves, entity.Move{Row: r, Col: c})
			}
		}
	}

	if !occupied {
		center := entity.BoardSize / 2
		return []entity.Move{{Row: center, Col: center}}
	}

	return moves
}

func hasStoneNearby(board *entity.Board, row, col, radius int) bool {
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if board.InBounds(r, c) && board.At(r, c) != entity.CellEmpty {
				return true
			}
		}
	}
	return false
}

// liberties counts the empty cells immediately adjacent to the move, a
// cheap proxy for how flexible the position stays.
func liberties(board *entity.Board, move entity.Move) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if board.IsEmpty(move.Row+dr, move.Col+dc) {
				count++
			}
		}
	}
	return count
}
