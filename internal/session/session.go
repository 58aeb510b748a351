// Package session owns the turn/session state machine: board, scores,
// turn counter, seat/color mapping and termination verdicts. Every
// mutation funnels through ApplyMove; the Controller in this package
// drains externally triggered events one at a time so each of them
// observes the latest committed state.
package session

import (
	"errors"
	"sync"

	"github.com/blastrow/blastfive-backend/internal/apperror"
	"github.com/blastrow/blastfive-backend/internal/entity"
	"github.com/blastrow/blastfive-backend/internal/rules"
)

var ErrOutOfBounds = errors.New("move is out of bounds")

const (
	// dominantWinScore and dominantWinMargin gate the early "dominant win"
	// termination: a seat needs at least 200 points and a lead of at
	// least 100 over the opponent.
	dominantWinScore  = 200
	dominantWinMargin = 100
)

// Result reports what a successfully applied move did to the session.
type Result struct {
	Move      entity.Move
	Color     entity.Cell
	Blast     []entity.Move
	AwardedTo entity.Seat
	Swapped   bool
	Verdict   *entity.Verdict
	NextColor entity.Cell
}

// Session is the synchronous state machine. It is safe for concurrent
// snapshot reads; mutations are expected to come from a single writer.
type Session struct {
	mu sync.RWMutex

	id         string
	board      *entity.Board
	seat1Score int
	seat2Score int
	turnCount  int
	nextColor  entity.Cell
	status     string
	blast      []entity.Move
	verdict    *entity.Verdict
}

func New(id string) *Session {
	return &Session{
		id:        id,
		board:     entity.NewBoard(),
		nextColor: entity.CellBlack,
		status:    entity.StatusAwaitingMove,
	}
}

// ApplyMove validates and applies one move for moverColor. Illegal
// attempts (terminal session, occupied cell, wrong turn) return an error
// and leave the state untouched; callers treat them as no-ops.
func (that *Session) ApplyMove(move entity.Move, moverColor entity.Cell) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.verdict != nil {
		return nil, apperror.ErrSessionTerminal
	}
	if !move.IsValid() {
		return nil, ErrOutOfBounds
	}
	if moverColor != that.nextColor {
		return nil, apperror.ErrNotYourTurn
	}
	if that.board.At(move.Row, move.Col) != entity.CellEmpty {
		return nil, apperror.ErrCellOccupied
	}

	that.board.Set(move.Row, move.Col, moverColor)

	result := &Result{Move: move, Color: moverColor}

	if removed := rules.CompletedLines(that.board, move, moverColor); len(removed) > 0 {
		// Completing a line is a penalty: the stones blast off the board
		// and the points go to the seat that did NOT move. Seats are
		// resolved against the mapping in effect before this turn's
		// potential flip.
		moverSeat := entity.SeatOf(moverColor, that.turnCount)
		that.award(moverSeat.Other(), len(removed))

		for _, cell := range removed {
			that.board.Remove(cell.Row, cell.Col)
		}

		that.blast = removed
		result.Blast = removed
		result.AwardedTo = moverSeat.Other()
	}

	if winner, ok := that.dominantWinner(); ok {
		result.Verdict = that.terminate(winner, entity.ReasonDominantWin)
		return result, nil
	}

	if rules.BoardIsFull(that.board) {
		result.Verdict = that.resolveFullBoard()
		return result, nil
	}

	that.turnCount++
	result.Swapped = that.turnCount%entity.SwapInterval == 0
	that.nextColor = moverColor.Opponent()
	that.status = entity.StatusAwaitingMove
	result.NextColor = that.nextColor

	return result, nil
}

// TerminateTie ends the session as a full tie. Used when no strategy can
// produce a move anymore.
func (that *Session) TerminateTie() *entity.Verdict {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.verdict != nil {
		return that.verdict
	}
	return that.terminate(entity.SeatTie, entity.ReasonFullTie)
}

// Reset restores the initial state: empty board, zero scores, counter at
// zero, Seat1 back on black.
func (that *Session) Reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board.Reset()
	that.seat1Score = 0
	that.seat2Score = 0
	that.turnCount = 0
	that.nextColor = entity.CellBlack
	that.status = entity.StatusAwaitingMove
	that.blast = nil
	that.verdict = nil
}

// ClearBlast drops the transient removal highlight once its display
// window has passed.
func (that *Session) ClearBlast() {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.blast = nil
}

// MarkAutomatedPending flips the observable status while an automated
// move is being decided; human moves are rejected in that window.
func (that *Session) MarkAutomatedPending(pending bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.verdict != nil {
		return
	}
	if pending {
		that.status = entity.StatusAutomatedMove
	} else {
		that.status = entity.StatusAwaitingMove
	}
}

func (that *Session) IsAutomatedPending() bool {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return that.status == entity.StatusAutomatedMove
}

func (that *Session) IsTerminal() bool {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return that.verdict != nil
}

func (that *Session) NextColor() entity.Cell {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return that.nextColor
}

// SeatToMove resolves which seat currently holds the color due to move.
func (that *Session) SeatToMove() entity.Seat {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return entity.SeatOf(that.nextColor, that.turnCount)
}

func (that *Session) TurnCount() int {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return that.turnCount
}

func (that *Session) Scores() (seat1, seat2 int) {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return that.seat1Score, that.seat2Score
}

// BoardCopy returns an independent copy for strategies to simulate on.
func (that *Session) BoardCopy() *entity.Board {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return that.board.Clone()
}

func (that *Session) CellAt(move entity.Move) entity.Cell {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return that.board.At(move.Row, move.Col)
}

// Snapshot renders the observable state for storage, REST and the oracle.
func (that *Session) Snapshot() *entity.Snapshot {
	that.mu.RLock()
	defer that.mu.RUnlock()

	snapshot := &entity.Snapshot{
		ID:         that.id,
		Board:      that.board.Ints(),
		Seat1Score: that.seat1Score,
		Seat2Score: that.seat2Score,
		TurnCount:  that.turnCount,
		NextColor:  int(that.nextColor),
		Status:     that.status,
		Swapped:    entity.MappingSwapped(that.turnCount),
	}
	if len(that.blast) > 0 {
		snapshot.Blast = append([]entity.Move(nil), that.blast...)
	}
	if that.verdict != nil {
		verdict := *that.verdict
		snapshot.Verdict = &verdict
	}
	return snapshot
}

func (that *Session) award(seat entity.Seat, points int) {
	if seat == entity.Seat1 {
		that.seat1Score += points
		return
	}
	that.seat2Score += points
}

func (that *Session) dominantWinner() (entity.Seat, bool) {
	if that.seat1Score >= dominantWinScore && that.seat1Score-that.seat2Score >= dominantWinMargin {
		return entity.Seat1, true
	}
	if that.seat2Score >= dominantWinScore && that.seat2Score-that.seat1Score >= dominantWinMargin {
		return entity.Seat2, true
	}
	return "", false
}

// resolveFullBoard settles a filled board: higher score wins outright;
// equal scores fall back to stone counts, where the seat with MORE stones
// loses (surplus stones mean fewer completed lines); everything equal is
// a full tie.
func (that *Session) resolveFullBoard() *entity.Verdict {
	switch {
	case that.seat1Score > that.seat2Score:
		return that.terminate(entity.Seat1, entity.ReasonHigherScore)
	case that.seat2Score > that.seat1Score:
		return that.terminate(entity.Seat2, entity.ReasonHigherScore)
	}

	black, white := rules.TallyStones(that.board)
	seat1Stones, seat2Stones := black, white
	if entity.Seat1.ColorOf(that.turnCount) == entity.CellWhite {
		seat1Stones, seat2Stones = white, black
	}

	switch {
	case seat1Stones < seat2Stones:
		return that.terminate(entity.Seat1, entity.ReasonStoneCount)
	case seat2Stones < seat1Stones:
		return that.terminate(entity.Seat2, entity.ReasonStoneCount)
	default:
		return that.terminate(entity.SeatTie, entity.ReasonFullTie)
	}
}

func (that *Session) terminate(winner entity.Seat, reason entity.Reason) *entity.Verdict {
	that.verdict = &entity.Verdict{Winner: winner, Reason: reason}
	that.status = entity.StatusTerminal
	return that.verdict
}
