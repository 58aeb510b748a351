package strategy

import (
	"context"
	"math/rand"
	"sort"

	"github.com/blastrow/blastfive-backend/internal/entity"
	"github.com/blastrow/blastfive-backend/internal/rules"
)

const (
	// a run of four is one stone away from blasting itself; a run of
	// three is two away. Both are liabilities, not assets.
	runOfThreePenalty = 12.0
	runOfFourPenalty  = 40.0

	libertyReward = 1.0
)

type strongStrategy struct{}

// NewStrong returns the strongest local tier: it keeps the self-harm
// penalty of the heuristic tier, additionally avoids building runs of
// three and four, and prefers moves that keep liberties open.
func NewStrong() Strategy {
	return &strongStrategy{}
}

func (that *strongStrategy) Name() string {
	return KindStrong
}

type ratedMove struct {
	move  entity.Move
	score float64
}

func (that *strongStrategy) ProposeMove(_ context.Context, board *entity.Board, color entity.Cell, _ Scores) (entity.Move, bool) {
	moves := candidates(board, 2)
	if len(moves) == 0 {
		return entity.Move{}, false
	}

	rated := make([]ratedMove, 0, len(moves))
	for _, move := range moves {
		rated = append(rated, ratedMove{
			move:  move,
			score: that.scoreCandidate(board, move, color),
		})
	}

	sort.Slice(rated, func(i, j int) bool {
		return rated[i].score > rated[j].score
	})

	return rated[0].move, true
}

func (that *strongStrategy) scoreCandidate(board *entity.Board, move entity.Move, color entity.Cell) float64 {
	sim := board.Clone()
	sim.Set(move.Row, move.Col, color)

	if removed := rules.CompletedLines(sim, move, color); len(removed) > 0 {
		return -selfHarmPenalty * float64(len(removed))
	}

	score := 0.0
	for _, dir := range rules.Directions() {
		switch rules.RunLength(sim, move, dir[0], dir[1], color) {
		case 3:
			score -= runOfThreePenalty
		case 4:
			score -= runOfFourPenalty
		}
	}

	score += libertyReward * float64(liberties(board, move))
	score += rand.Float64() * 0.5 //nolint: gosec // tie-breaking jitter

	return score
}
