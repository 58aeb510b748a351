package strategy

import (
	"context"
	"errors"

	"github.com/blastrow/blastfive-backend/internal/entity"
)

var (
	ErrOracleUnavailable = errors.New("oracle is unavailable")
	ErrIllegalOracleMove = errors.New("oracle proposed an illegal move")
)

// MoveOracle is the narrow contract of the external move-recommendation
// service: it sees the full position, both scores and the acting color,
// and returns a single cell. The core never depends on its transport.
type MoveOracle interface {
	ProposeMove(ctx context.Context, board [][]int, color entity.Cell, scores Scores) (entity.Move, error)
}

type oracleStrategy struct {
	oracle   MoveOracle
	fallback Strategy
}

// NewOracle returns the tier that delegates to an external oracle and
// falls back silently to the strong tier on any failure: an error, an
// out-of-bounds reply, or a reply targeting an occupied cell.
func NewOracle(oracle MoveOracle) Strategy {
	return &oracleStrategy{
		oracle:   oracle,
		fallback: NewStrong(),
	}
}

func (that *oracleStrategy) Name() string {
	return KindOracle
}

func (that *oracleStrategy) ProposeMove(ctx context.Context, board *entity.Board, color entity.Cell, scores Scores) (entity.Move, bool) {
	if that.oracle == nil {
		return that.fallback.ProposeMove(ctx, board, color, scores)
	}

	move, err := that.oracle.ProposeMove(ctx, board.Ints(), color, scores)
	if err != nil || !move.IsValid() || !board.IsEmpty(move.Row, move.Col) {
		return that.fallback.ProposeMove(ctx, board, color, scores)
	}

	return move, true
}
