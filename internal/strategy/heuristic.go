package strategy

import (
	"context"
	"math/rand"

	"github.com/blastrow/blastfive-backend/internal/entity"
	"github.com/blastrow/blastfive-backend/internal/rules"
)

const (
	// completing a line removes your own stones and feeds the opponent's
	// score, so a simulated blast is scored strongly negative per stone.
	selfHarmPenalty = 20.0

	openRunThreeReward = 24.0
	openRunTwoReward   = 8.0
)

type heuristicStrategy struct{}

// NewHeuristic returns the middle tier: one-ply simulation that avoids
// blasting its own stones and extends open runs.
func NewHeuristic() Strategy {
	return &heuristicStrategy{}
}

func (that *heuristicStrategy) Name() string {
	return KindHeuristic
}

func (that *heuristicStrategy) ProposeMove(_ context.Context, board *entity.Board, color entity.Cell, _ Scores) (entity.Move, bool) {
	moves := candidates(board, 1)
	if len(moves) == 0 {
		return entity.Move{}, false
	}

	best := moves[0]
	bestScore := -1e9

	for _, move := range moves {
		score := scoreCandidate(board, move, color)
		score += rand.Float64() //nolint: gosec // tie-breaking jitter
		if score > bestScore {
			bestScore = score
			best = move
		}
	}

	return best, true
}

// scoreCandidate simulates placing the stone and rates the result: a
// self-inflicted blast is strongly negative, otherwise open-ended runs
// through the new stone are rewarded, longer runs more.
func scoreCandidate(board *entity.Board, move entity.Move, color entity.Cell) float64 {
	sim := board.Clone()
	sim.Set(move.Row, move.Col, color)

	if removed := rules.CompletedLines(sim, move, color); len(removed) > 0 {
		return -selfHarmPenalty * float64(len(removed))
	}

	score := 0.0
	for _, dir := range rules.Directions() {
		run := rules.RunLength(sim, move, dir[0], dir[1], color)
		if openEnds(sim, move, dir[0], dir[1], color) == 0 {
			continue
		}
		switch {
		case run >= 3:
			score += openRunThreeReward
		case run == 2:
			score += openRunTwoReward
		}
	}

	return score
}

// openEnds counts the empty extension cells at the two ends of the run
// through move along one axis.
func openEnds(board *entity.Board, move entity.Move, dRow, dCol int, color entity.Cell) int {
	open := 0
	for _, sign := range [2]int{1, -1} {
		row, col := move.Row, move.Col
		for board.InBounds(row+sign*dRow, col+sign*dCol) && board.At(row+sign*dRow, col+sign*dCol) == color {
			row += sign * dRow
			col += sign * dCol
		}
		if board.IsEmpty(row+sign*dRow, col+sign*dCol) {
			open++
		}
	}
	return open
}
