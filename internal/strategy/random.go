package strategy

import (
	"context"
	"math/rand"

	"github.com/blastrow/blastfive-backend/internal/entity"
)

type randomStrategy struct{}

// NewRandom returns the weakest tier: a uniform pick over the empty cells
// adjacent to existing stones.
func NewRandom() Strategy {
	return &randomStrategy{}
}

func (that *randomStrategy) Name() string {
	return KindRandom
}

func (that *randomStrategy) ProposeMove(_ context.Context, board *entity.Board, _ entity.Cell, _ Scores) (entity.Move, bool) {
	moves := candidates(board, 1)
	if len(moves) == 0 {
		return entity.Move{}, false
	}

	return moves[rand.Intn(len(moves))], true //nolint: gosec // it's ok
}
