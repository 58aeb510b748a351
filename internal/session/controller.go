package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/blastrow/blastfive-backend/internal/apperror"
	"github.com/blastrow/blastfive-backend/internal/entity"
	"github.com/blastrow/blastfive-backend/internal/strategy"
)

// SeatControl says who supplies moves for a seat.
type SeatControl string

const (
	ControlHuman     SeatControl = "human"
	ControlAutomated SeatControl = "automated"
	ControlRemote    SeatControl = "remote"
)

type eventKind int

const (
	evMove eventKind = iota
	evAutomated
	evReset
	evDegrade
	evClearBlast
)

type origin int

const (
	originLocal origin = iota
	originRemote
	originAutomated
)

type event struct {
	kind   eventKind
	move   entity.Move
	origin origin
	gen    int
}

// Options tune the controller. ThinkingDelay paces automated moves (zero
// in tests); BlastDisplay is how long the removal highlight stays up.
type Options struct {
	ThinkingDelay time.Duration
	BlastDisplay  time.Duration
	Seat1Control  SeatControl
	Seat2Control  SeatControl
}

// Controller is the single writer of a Session. Every externally
// triggered event - a local move, a remote message, a reset, a timer-fired
// automated move - is enqueued and drained one at a time, so each handler
// observes the latest committed state rather than a captured one.
type Controller struct {
	logger  *slog.Logger
	session *Session
	tier    strategy.Strategy
	opts    Options

	control map[entity.Seat]SeatControl

	events chan event

	// gen stamps automated-move and blast-clear timers; a reset bumps it
	// so stale timers fall through harmlessly.
	gen          int
	thinkPending bool

	onApplied func(Result)
	onChanged func(*entity.Snapshot)
	onNotice  func(string)
}

func NewController(logger *slog.Logger, sess *Session, tier strategy.Strategy, opts Options) *Controller {
	if opts.Seat1Control == "" {
		opts.Seat1Control = ControlHuman
	}
	if opts.Seat2Control == "" {
		opts.Seat2Control = ControlAutomated
	}

	return &Controller{
		logger:  logger.With("component", "session"),
		session: sess,
		tier:    tier,
		opts:    opts,
		control: map[entity.Seat]SeatControl{
			entity.Seat1: opts.Seat1Control,
			entity.Seat2: opts.Seat2Control,
		},
		events: make(chan event, 64),
	}
}

// OnApplied registers the mirror hook, called for every locally
// originated move after it has been applied. Remote moves are never
// echoed back through it.
func (that *Controller) OnApplied(fn func(Result)) { that.onApplied = fn }

// OnChanged is called with a fresh snapshot after every state change.
func (that *Controller) OnChanged(fn func(*entity.Snapshot)) { that.onChanged = fn }

// OnNotice receives transient, user-facing notices ("sides swapped").
func (that *Controller) OnNotice(fn func(string)) { that.onNotice = fn }

// SubmitMove enqueues a human-originated move for the color due to play.
func (that *Controller) SubmitMove(move entity.Move) {
	that.enqueue(event{kind: evMove, move: move, origin: originLocal})
}

// SubmitRemoteMove enqueues a move received from the peer.
func (that *Controller) SubmitRemoteMove(move entity.Move) {
	that.enqueue(event{kind: evMove, move: move, origin: originRemote})
}

// SubmitReset restarts the session from the initial state.
func (that *Controller) SubmitReset() {
	that.enqueue(event{kind: evReset})
}

// DegradeToLocal retires remote seats to automated control, used when the
// peer connection closes.
func (that *Controller) DegradeToLocal() {
	that.enqueue(event{kind: evDegrade})
}

func (that *Controller) Snapshot() *entity.Snapshot {
	return that.session.Snapshot()
}

// Run drains the event queue until the context is canceled. It must be
// the only goroutine mutating the session.
func (that *Controller) Run(ctx context.Context) {
	that.scheduleAutomated()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-that.events:
			that.dispatch(ctx, ev)
		}
	}
}

func (that *Controller) enqueue(ev event) {
	select {
	case that.events <- ev:
	default:
		// Queue pressure means something is badly wrong upstream; moves
		// are not retried, per the no-queueing rule for rejected input.
		that.logger.Warn("event queue full, dropping event", "kind", ev.kind)
	}
}

func (that *Controller) dispatch(ctx context.Context, ev event) {
	switch ev.kind {
	case evMove:
		that.handleMove(ev)
	case evAutomated:
		that.handleAutomated(ctx, ev)
	case evReset:
		that.handleReset()
	case evDegrade:
		that.handleDegrade()
	case evClearBlast:
		that.handleClearBlast(ev)
	}
}

func (that *Controller) handleMove(ev event) {
	if ev.origin == originLocal {
		if that.session.IsAutomatedPending() {
			that.logger.Debug("move rejected, automated move pending")
			return
		}
		if that.control[that.session.SeatToMove()] != ControlHuman {
			that.logger.Debug("move rejected, seat not locally human-controlled")
			return
		}
	}

	that.apply(ev.move, ev.origin)
}

func (that *Controller) apply(move entity.Move, moveOrigin origin) {
	log := that.logger.With("method", "apply")

	result, err := that.session.ApplyMove(move, that.session.NextColor())
	if err != nil {
		if moveOrigin == originRemote && errors.Is(err, apperror.ErrCellOccupied) {
			// Divergence: the peer played a cell we already consider
			// occupied. The move is dropped, never applied partially.
			log.Warn("remote move targets occupied cell, state divergence", "row", move.Row, "col", move.Col)
			return
		}
		log.Debug("move rejected", "error", err, "row", move.Row, "col", move.Col)
		return
	}

	if len(result.Blast) > 0 {
		log.Info("line completed",
			"removed", len(result.Blast), "awarded_to", result.AwardedTo)
		that.scheduleClearBlast()
	}

	if result.Swapped {
		that.notice("sides swapped")
	}

	if moveOrigin != originRemote && that.onApplied != nil {
		that.onApplied(*result)
	}

	that.changed()

	if result.Verdict != nil {
		log.Info("session terminal", "winner", result.Verdict.Winner, "reason", result.Verdict.Reason)
		return
	}

	that.scheduleAutomated()
}

func (that *Controller) handleAutomated(ctx context.Context, ev event) {
	that.thinkPending = false

	if ev.gen != that.gen || that.session.IsTerminal() {
		return
	}
	if that.control[that.session.SeatToMove()] != ControlAutomated {
		// A remote move landed during the thinking delay and it is no
		// longer the automated seat's turn.
		that.session.MarkAutomatedPending(false)
		return
	}

	seat1, seat2 := that.session.Scores()
	move, ok := that.tier.ProposeMove(ctx, that.session.BoardCopy(), that.session.NextColor(), strategy.Scores{Seat1: seat1, Seat2: seat2})
	if !ok {
		verdict := that.session.TerminateTie()
		that.logger.Info("strategy exhausted, session terminal", "reason", verdict.Reason)
		that.changed()
		return
	}

	that.session.MarkAutomatedPending(false)
	that.apply(move, originAutomated)
}

func (that *Controller) handleReset() {
	that.gen++
	that.thinkPending = false
	that.session.Reset()
	that.notice("session restarted")
	that.changed()
	that.scheduleAutomated()
}

func (that *Controller) handleDegrade() {
	degraded := false
	for seat, control := range that.control {
		if control == ControlRemote {
			that.control[seat] = ControlAutomated
			degraded = true
		}
	}
	if !degraded {
		return
	}

	that.notice("peer disconnected, continuing against an automated opponent")
	that.scheduleAutomated()
}

func (that *Controller) handleClearBlast(ev event) {
	if ev.gen != that.gen {
		return
	}
	that.session.ClearBlast()
	that.changed()
}

// scheduleAutomated enters the suspension point when the seat due to move
// is automated: status flips to automated_move, human input is rejected,
// and a timer enqueues the strategy invocation after the thinking delay.
// Reset and degrade events remain deliverable during the wait.
func (that *Controller) scheduleAutomated() {
	if that.session.IsTerminal() || that.thinkPending {
		return
	}
	if that.control[that.session.SeatToMove()] != ControlAutomated {
		return
	}

	that.thinkPending = true
	that.session.MarkAutomatedPending(true)

	gen := that.gen
	time.AfterFunc(that.opts.ThinkingDelay, func() {
		that.enqueue(event{kind: evAutomated, gen: gen})
	})
}

func (that *Controller) scheduleClearBlast() {
	gen := that.gen
	time.AfterFunc(that.opts.BlastDisplay, func() {
		that.enqueue(event{kind: evClearBlast, gen: gen})
	})
}

func (that *Controller) changed() {
	if that.onChanged != nil {
		that.onChanged(that.session.Snapshot())
	}
}

func (that *Controller) notice(text string) {
	that.logger.Info(text)
	if that.onNotice != nil {
		that.onNotice(text)
	}
}
