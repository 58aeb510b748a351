package session

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blastrow/blastfive-backend/internal/entity"
	"github.com/blastrow/blastfive-backend/internal/strategy"
)

// exhaustedStrategy signals that no move is available.
type exhaustedStrategy struct{}

func (exhaustedStrategy) Name() string { return "exhausted" }

func (exhaustedStrategy) ProposeMove(context.Context, *entity.Board, entity.Cell, strategy.Scores) (entity.Move, bool) {
	return entity.Move{}, false
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func startController(t *testing.T, tier strategy.Strategy, opts Options) *Controller {
	t.Helper()

	controller := NewController(testLogger(), New("t"), tier, opts)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go controller.Run(ctx)

	return controller
}

func waitForTurn(t *testing.T, controller *Controller, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return controller.Snapshot().TurnCount >= want
	}, 2*time.Second, 5*time.Millisecond)
}

func TestController_AutomatedReply(t *testing.T) {
	// Given: a human Seat1 against an automated Seat2 with no delay
	controller := startController(t, strategy.NewRandom(), Options{
		Seat1Control: ControlHuman,
		Seat2Control: ControlAutomated,
	})

	// When: the human plays
	controller.SubmitMove(entity.Move{Row: 7, Col: 7})

	// Then: the automated seat answers and it is the human's turn again
	waitForTurn(t, controller, 2)
	snapshot := controller.Snapshot()
	assert.Equal(t, entity.StatusAwaitingMove, snapshot.Status)
	assert.Equal(t, int(entity.CellBlack), snapshot.NextColor)
}

func TestController_RejectsHumanMoveForRemoteSeat(t *testing.T) {
	// Given: a hosting setup, Seat2 remote
	controller := startController(t, strategy.NewRandom(), Options{
		Seat1Control: ControlHuman,
		Seat2Control: ControlRemote,
	})

	// When: the local human plays, then tries to play the remote seat's turn
	controller.SubmitMove(entity.Move{Row: 7, Col: 7})
	waitForTurn(t, controller, 1)
	controller.SubmitMove(entity.Move{Row: 8, Col: 8})

	// Then: the second move is silently dropped
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, controller.Snapshot().TurnCount)
}

func TestController_RemoteMoveDivergenceIsDropped(t *testing.T) {
	// Given: a hosting setup with one local move applied
	controller := startController(t, strategy.NewRandom(), Options{
		Seat1Control: ControlHuman,
		Seat2Control: ControlRemote,
	})
	controller.SubmitMove(entity.Move{Row: 7, Col: 7})
	waitForTurn(t, controller, 1)

	// When: the peer claims the same, already-occupied cell
	controller.SubmitRemoteMove(entity.Move{Row: 7, Col: 7})

	// Then: the divergent move is dropped, state intact
	time.Sleep(50 * time.Millisecond)
	snapshot := controller.Snapshot()
	assert.Equal(t, 1, snapshot.TurnCount)
	assert.Equal(t, int(entity.CellBlack), snapshot.Board[7][7])
}

func TestController_RemoteMoveApplies(t *testing.T) {
	// Given: a hosting setup with one local move applied
	controller := startController(t, strategy.NewRandom(), Options{
		Seat1Control: ControlHuman,
		Seat2Control: ControlRemote,
	})
	controller.SubmitMove(entity.Move{Row: 7, Col: 7})
	waitForTurn(t, controller, 1)

	// When: the peer answers on a free cell
	controller.SubmitRemoteMove(entity.Move{Row: 8, Col: 8})

	// Then: the move lands as white
	waitForTurn(t, controller, 2)
	assert.Equal(t, int(entity.CellWhite), controller.Snapshot().Board[8][8])
}

func TestController_ResetDuringThinkingDelay(t *testing.T) {
	// Given: an automated opponent with a long thinking delay
	controller := startController(t, strategy.NewRandom(), Options{
		ThinkingDelay: time.Hour,
		Seat1Control:  ControlHuman,
		Seat2Control:  ControlAutomated,
	})

	// When: the human plays and the session enters the suspension point
	controller.SubmitMove(entity.Move{Row: 7, Col: 7})
	require.Eventually(t, func() bool {
		return controller.Snapshot().Status == entity.StatusAutomatedMove
	}, 2*time.Second, 5*time.Millisecond)

	// And: a reset arrives while the automated move is pending
	controller.SubmitReset()

	// Then: the session restarts; the stale timer never fires a move
	require.Eventually(t, func() bool {
		snapshot := controller.Snapshot()
		return snapshot.TurnCount == 0 && snapshot.Status != entity.StatusTerminal
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int(entity.CellEmpty), controller.Snapshot().Board[7][7])
}

func TestController_DegradeToLocalPlay(t *testing.T) {
	// Given: a hosting setup, peer seat remote
	controller := startController(t, strategy.NewRandom(), Options{
		Seat1Control: ControlHuman,
		Seat2Control: ControlRemote,
	})
	controller.SubmitMove(entity.Move{Row: 7, Col: 7})
	waitForTurn(t, controller, 1)

	// When: the peer connection closes
	controller.DegradeToLocal()

	// Then: the remote seat is taken over by the automated strategy
	waitForTurn(t, controller, 2)
	assert.Equal(t, entity.StatusAwaitingMove, controller.Snapshot().Status)
}

func TestController_StrategyExhaustionTerminatesAsTie(t *testing.T) {
	// Given: an automated seat whose strategy has no move available
	controller := startController(t, exhaustedStrategy{}, Options{
		Seat1Control: ControlHuman,
		Seat2Control: ControlAutomated,
	})

	// When: the human plays and the automated seat cannot answer
	controller.SubmitMove(entity.Move{Row: 7, Col: 7})

	// Then: the session terminates as a full tie
	require.Eventually(t, func() bool {
		snapshot := controller.Snapshot()
		return snapshot.Verdict != nil
	}, 2*time.Second, 5*time.Millisecond)
	verdict := controller.Snapshot().Verdict
	assert.Equal(t, entity.SeatTie, verdict.Winner)
	assert.Equal(t, entity.ReasonFullTie, verdict.Reason)
}

func TestController_MirrorsLocalMovesOnly(t *testing.T) {
	// Given: a controller with a mirror hook installed
	controller := NewController(testLogger(), New("t"), strategy.NewRandom(), Options{
		Seat1Control: ControlHuman,
		Seat2Control: ControlRemote,
	})

	mirrored := make(chan Result, 4)
	controller.OnApplied(func(result Result) { mirrored <- result })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go controller.Run(ctx)

	// When: a local move and a remote move are applied
	controller.SubmitMove(entity.Move{Row: 7, Col: 7})
	waitForTurn(t, controller, 1)
	controller.SubmitRemoteMove(entity.Move{Row: 8, Col: 8})
	waitForTurn(t, controller, 2)

	// Then: only the local move was mirrored
	require.Len(t, mirrored, 1)
	result := <-mirrored
	assert.True(t, result.Move.Equals(entity.Move{Row: 7, Col: 7}))
}
