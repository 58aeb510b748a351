package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blastrow/blastfive-backend/internal/entity"
)

func TestCandidates(t *testing.T) {
	t.Run("Empty board yields only the center cell", func(t *testing.T) {
		board := entity.NewBoard()

		moves := candidates(board, 1)

		center := entity.BoardSize / 2
		require.Len(t, moves, 1)
		assert.Equal(t, entity.Move{Row: center, Col: center}, moves[0])
	})

	t.Run("Candidates hug existing stones", func(t *testing.T) {
		// Given: a single stone in the middle
		board := entity.NewBoard()
		board.Set(7, 7, entity.CellBlack)

		// When: generating radius-1 candidates
		moves := candidates(board, 1)

		// Then: exactly the eight neighbors, all empty
		require.Len(t, moves, 8)
		for _, move := range moves {
			assert.True(t, board.IsEmpty(move.Row, move.Col))
			assert.LessOrEqual(t, abs(move.Row-7), 1)
			assert.LessOrEqual(t, abs(move.Col-7), 1)
		}
	})

	t.Run("Radius two widens the ring", func(t *testing.T) {
		board := entity.NewBoard()
		board.Set(7, 7, entity.CellBlack)

		moves := candidates(board, 2)

		assert.Len(t, moves, 24)
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestForName(t *testing.T) {
	assert.Equal(t, KindRandom, ForName("random", nil).Name())
	assert.Equal(t, KindHeuristic, ForName("heuristic", nil).Name())
	assert.Equal(t, KindStrong, ForName("strong", nil).Name())
	assert.Equal(t, KindOracle, ForName("oracle", nil).Name())

	// invalid values default to random rather than failing
	assert.Equal(t, KindRandom, ForName("grandmaster", nil).Name())
	assert.Equal(t, KindRandom, ForName("", nil).Name())
}

func TestRandomStrategy(t *testing.T) {
	t.Run("Proposes a legal adjacent cell", func(t *testing.T) {
		board := entity.NewBoard()
		board.Set(7, 7, entity.CellBlack)

		move, ok := NewRandom().ProposeMove(context.Background(), board, entity.CellWhite, Scores{})

		require.True(t, ok)
		assert.True(t, board.IsEmpty(move.Row, move.Col))
	})

	t.Run("Signals exhaustion on a full board", func(t *testing.T) {
		board := entity.NewBoard()
		for r := 0; r < entity.BoardSize; r++ {
			for c := 0; c < entity.BoardSize; c++ {
				board.Set(r, c, entity.CellBlack)
			}
		}

		_, ok := NewRandom().ProposeMove(context.Background(), board, entity.CellWhite, Scores{})

		assert.False(t, ok)
	})
}

func TestHeuristicStrategy_AvoidsSelfHarm(t *testing.T) {
	// Given: black has four in a row; completing it would blast the line
	// and feed the opponent five points
	board := entity.NewBoard()
	for col := 1; col <= 4; col++ {
		board.Set(7, col, entity.CellBlack)
	}

	// When: the heuristic tier proposes repeatedly
	tier := NewHeuristic()
	for i := 0; i < 20; i++ {
		move, ok := tier.ProposeMove(context.Background(), board, entity.CellBlack, Scores{})

		// Then: it never completes its own line
		require.True(t, ok)
		assert.True(t, board.IsEmpty(move.Row, move.Col))
		assert.False(t, move.Equals(entity.Move{Row: 7, Col: 0}), "completed own line")
		assert.False(t, move.Equals(entity.Move{Row: 7, Col: 5}), "completed own line")
	}
}

func TestHeuristicStrategy_ExtendsOpenRuns(t *testing.T) {
	// Given: black has a lone pair with open ends, far from anything else
	board := entity.NewBoard()
	board.Set(7, 6, entity.CellBlack)
	board.Set(7, 7, entity.CellBlack)

	// When: proposing for black
	move, ok := NewHeuristic().ProposeMove(context.Background(), board, entity.CellBlack, Scores{})

	// Then: the chosen cell touches the pair (the reward dominates the
	// random jitter)
	require.True(t, ok)
	assert.True(t, board.IsEmpty(move.Row, move.Col))
	assert.LessOrEqual(t, abs(move.Row-7), 1)
}

func TestStrongStrategy(t *testing.T) {
	t.Run("Never completes its own line", func(t *testing.T) {
		board := entity.NewBoard()
		for col := 1; col <= 4; col++ {
			board.Set(7, col, entity.CellBlack)
		}

		tier := NewStrong()
		for i := 0; i < 20; i++ {
			move, ok := tier.ProposeMove(context.Background(), board, entity.CellBlack, Scores{})

			require.True(t, ok)
			assert.True(t, board.IsEmpty(move.Row, move.Col))
			assert.False(t, move.Equals(entity.Move{Row: 7, Col: 0}))
			assert.False(t, move.Equals(entity.Move{Row: 7, Col: 5}))
		}
	})

	t.Run("Avoids stretching a run of three into four", func(t *testing.T) {
		// Given: black already has three in a row
		board := entity.NewBoard()
		for col := 3; col <= 5; col++ {
			board.Set(7, col, entity.CellBlack)
		}

		// When: the strong tier proposes repeatedly
		tier := NewStrong()
		for i := 0; i < 20; i++ {
			move, ok := tier.ProposeMove(context.Background(), board, entity.CellBlack, Scores{})

			// Then: it never extends the run to four
			require.True(t, ok)
			assert.False(t, move.Equals(entity.Move{Row: 7, Col: 2}), "stretched run to four")
			assert.False(t, move.Equals(entity.Move{Row: 7, Col: 6}), "stretched run to four")
		}
	})
}

// scriptedOracle returns a canned move or error.
type scriptedOracle struct {
	move entity.Move
	err  error
}

func (that *scriptedOracle) ProposeMove(context.Context, [][]int, entity.Cell, Scores) (entity.Move, error) {
	return that.move, that.err
}

func TestOracleStrategy(t *testing.T) {
	t.Run("Uses the oracle's legal recommendation", func(t *testing.T) {
		board := entity.NewBoard()
		board.Set(7, 7, entity.CellBlack)

		tier := NewOracle(&scriptedOracle{move: entity.Move{Row: 3, Col: 3}})
		move, ok := tier.ProposeMove(context.Background(), board, entity.CellWhite, Scores{})

		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 3, Col: 3}, move)
	})

	t.Run("Falls back to the strong tier on oracle failure", func(t *testing.T) {
		board := entity.NewBoard()
		board.Set(7, 7, entity.CellBlack)

		tier := NewOracle(&scriptedOracle{err: ErrOracleUnavailable})
		move, ok := tier.ProposeMove(context.Background(), board, entity.CellWhite, Scores{})

		require.True(t, ok)
		assert.True(t, board.IsEmpty(move.Row, move.Col))
	})

	t.Run("Falls back when the oracle targets an occupied cell", func(t *testing.T) {
		board := entity.NewBoard()
		board.Set(7, 7, entity.CellBlack)

		tier := NewOracle(&scriptedOracle{move: entity.Move{Row: 7, Col: 7}})
		move, ok := tier.ProposeMove(context.Background(), board, entity.CellWhite, Scores{})

		require.True(t, ok)
		assert.True(t, board.IsEmpty(move.Row, move.Col))
	})

	t.Run("Falls back when the oracle goes out of bounds", func(t *testing.T) {
		board := entity.NewBoard()
		board.Set(7, 7, entity.CellBlack)

		tier := NewOracle(&scriptedOracle{move: entity.Move{Row: 40, Col: -2}})
		move, ok := tier.ProposeMove(context.Background(), board, entity.CellWhite, Scores{})

		require.True(t, ok)
		assert.True(t, move.IsValid())
		assert.True(t, board.IsEmpty(move.Row, move.Col))
	})

	t.Run("Nil oracle degrades to the strong tier", func(t *testing.T) {
		board := entity.NewBoard()
		board.Set(7, 7, entity.CellBlack)

		move, ok := NewOracle(nil).ProposeMove(context.Background(), board, entity.CellWhite, Scores{})

		require.True(t, ok)
		assert.True(t, board.IsEmpty(move.Row, move.Col))
	})
}
