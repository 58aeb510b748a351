package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/blastrow/blastfive-backend/internal/entity"
	"github.com/blastrow/blastfive-backend/internal/relay"
	"github.com/blastrow/blastfive-backend/internal/repository"
	"github.com/blastrow/blastfive-backend/internal/session"
)

const persistTimeout = 5 * time.Second

// SessionManager wires the session controller to its collaborators: the
// relay mirrors locally applied moves out and feeds peer messages back in,
// and the repository keeps a snapshot of the session after every change.
// Both collaborators are optional.
type SessionManager struct {
	logger      *slog.Logger
	controller  *session.Controller
	sessionRepo repository.SessionRepository
	link        *relay.Relay
}

func NewSessionManager(logger *slog.Logger, controller *session.Controller, sessionRepo repository.SessionRepository) *SessionManager {
	manager := &SessionManager{
		logger:      logger.With("component", "session-manager"),
		controller:  controller,
		sessionRepo: sessionRepo,
	}

	controller.OnApplied(manager.mirrorMove)
	controller.OnChanged(manager.persist)

	return manager
}

// AttachRelay registers the peer link. Call before Run.
func (that *SessionManager) AttachRelay(link *relay.Relay) {
	that.link = link
}

// RelayHooks returns the callbacks the relay needs: peer moves and resets
// go through the controller's event queue, and a closed connection
// degrades the session to local play.
func (that *SessionManager) RelayHooks() relay.Hooks {
	return relay.Hooks{
		OnMove:   that.controller.SubmitRemoteMove,
		OnReset:  that.controller.SubmitReset,
		OnClosed: that.controller.DegradeToLocal,
	}
}

// Run drains the controller's event queue until ctx is canceled.
func (that *SessionManager) Run(ctx context.Context) {
	that.controller.Run(ctx)
}

// SubmitMove enqueues a human-originated move.
func (that *SessionManager) SubmitMove(move entity.Move) {
	that.controller.SubmitMove(move)
}

// Reset restarts the session locally and tells the peer to do the same.
func (that *SessionManager) Reset() {
	that.controller.SubmitReset()

	if that.link == nil {
		return
	}
	if err := that.link.SendReset(); err != nil {
		that.logger.Debug("reset not mirrored", "error", err)
	}
}

func (that *SessionManager) Snapshot() *entity.Snapshot {
	return that.controller.Snapshot()
}

func (that *SessionManager) mirrorMove(result session.Result) {
	if that.link == nil {
		return
	}

	if err := that.link.SendMove(result.Move); err != nil {
		that.logger.Debug("move not mirrored", "error", err)
	}
}

func (that *SessionManager) persist(snapshot *entity.Snapshot) {
	if that.sessionRepo == nil {
		return
	}

	log := that.logger.With("method", "persist", "sessionID", snapshot.ID)

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if snapshot.IsTerminal() {
		if err := that.sessionRepo.DeleteByID(ctx, snapshot.ID); err != nil {
			log.Error("failed to delete terminal session", "error", err)
		}
		return
	}

	if err := that.sessionRepo.Save(ctx, snapshot); err != nil {
		log.Error("failed to save session snapshot", "error", err)
	}
}
