// Package relay mirrors locally applied moves to a remote peer and feeds
// moves received from the peer into the session controller, keeping two
// independent processes on an eventually identical state machine. The
// hosting process is Seat1 (black), the joining process Seat2 (white).
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/blastrow/blastfive-backend/internal/entity"
)

var ErrNotConnected = errors.New("relay is not connected")

// State is the relay connection lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StateWaiting   State = "waiting"
	StateConnected State = "connected"
	StateClosed    State = "closed"
)

// Hooks are the relay's callbacks into the session layer. OnClosed fires
// once, on graceful or erroneous closure while connected; the session is
// expected to degrade to local play, no reconnection is attempted.
type Hooks struct {
	OnMove   func(entity.Move)
	OnReset  func()
	OnClosed func()
}

// Relay owns the transport handle exclusively; the session controller
// never reaches into it.
type Relay struct {
	logger *slog.Logger
	hooks  Hooks

	mu    sync.Mutex
	state State
	conn  *websocket.Conn

	// writeMu serializes frame writes; gorilla connections allow only one
	// concurrent writer.
	writeMu sync.Mutex
}

func New(logger *slog.Logger, hooks Hooks) *Relay {
	return &Relay{
		logger: logger.With("component", "relay"),
		hooks:  hooks,
		state:  StateIdle,
	}
}

func (that *Relay) State() State {
	that.mu.Lock()
	defer that.mu.Unlock()
	return that.state
}

// Host listens for exactly one peer on /relay. The call returns once the
// listener is set up; the peer attach and the read loop run in the
// background. The caller owns the listener lifetime through ctx.
func (that *Relay) Host(ctx context.Context, port string) error {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/relay", func(w http.ResponseWriter, r *http.Request) {
		that.mu.Lock()
		if that.state != StateWaiting {
			that.mu.Unlock()
			http.Error(w, "session already has a peer", http.StatusConflict)
			return
		}
		that.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			that.logger.Error("failed to upgrade peer connection", "error", err)
			return
		}

		that.attach(conn)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	that.mu.Lock()
	that.state = StateWaiting
	that.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			that.logger.Error("relay listener failed", "error", err)
		}
	}()

	that.logger.Info("hosting relay, waiting for a peer", "port", port)

	return nil
}

// Join dials a hosting peer.
func (that *Relay) Join(ctx context.Context, addr string) error {
	url := "ws://" + addr + "/relay"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to dial host %s: %w", addr, err)
	}

	that.attach(conn)
	that.logger.Info("joined hosted session", "addr", addr)

	return nil
}

// SendMove mirrors a locally applied move to the peer.
func (that *Relay) SendMove(move entity.Move) error {
	payload, err := EncodeMove(move)
	if err != nil {
		return err
	}
	return that.write(payload)
}

// SendReset asks the peer to restart from the initial state.
func (that *Relay) SendReset() error {
	payload, err := EncodeReset()
	if err != nil {
		return err
	}
	return that.write(payload)
}

// Close tears the connection down explicitly.
func (that *Relay) Close() {
	that.mu.Lock()
	conn := that.conn
	that.conn = nil
	that.state = StateClosed
	that.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

func (that *Relay) attach(conn *websocket.Conn) {
	that.mu.Lock()
	that.conn = conn
	that.state = StateConnected
	that.mu.Unlock()

	that.logger.Info("peer connected")

	go that.readLoop(conn)
}

// readLoop applies peer messages in arrival order; the transport
// preserves per-connection ordering, so no reordering buffer exists.
func (that *Relay) readLoop(conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			that.closed(err)
			return
		}

		message, err := Decode(payload)
		if err != nil {
			that.logger.Error("failed to decode peer message", "error", err)
			continue
		}

		switch message.Type {
		case TypeMove:
			if that.hooks.OnMove != nil {
				that.hooks.OnMove(entity.Move{Row: message.Row, Col: message.Col})
			}
		case TypeReset:
			if that.hooks.OnReset != nil {
				that.hooks.OnReset()
			}
		default:
			that.logger.Debug("ignoring unknown relay message", "type", message.Type)
		}
	}
}

func (that *Relay) closed(err error) {
	that.mu.Lock()
	wasConnected := that.state == StateConnected
	if that.conn != nil {
		_ = that.conn.Close()
		that.conn = nil
	}
	that.state = StateClosed
	that.mu.Unlock()

	if !wasConnected {
		return
	}

	that.logger.Info("peer connection closed", "error", err)

	if that.hooks.OnClosed != nil {
		that.hooks.OnClosed()
	}
}

func (that *Relay) write(payload []byte) error {
	that.mu.Lock()
	conn := that.conn
	connected := that.state == StateConnected
	that.mu.Unlock()

	if !connected || conn == nil {
		return ErrNotConnected
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("failed to write relay message: %w", err)
	}

	return nil
}
