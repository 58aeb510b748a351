package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/blastrow/blastfive-backend/internal/config"
	"github.com/blastrow/blastfive-backend/internal/oracle"
	"github.com/blastrow/blastfive-backend/internal/pkg"
	"github.com/blastrow/blastfive-backend/internal/relay"
	"github.com/blastrow/blastfive-backend/internal/repository"
	"github.com/blastrow/blastfive-backend/internal/repository/storage"
	"github.com/blastrow/blastfive-backend/internal/session"
	"github.com/blastrow/blastfive-backend/internal/strategy"
	"github.com/blastrow/blastfive-backend/internal/usecase"
	"github.com/blastrow/blastfive-backend/transport/rest"
)

const (
	relayModeOff  = "off"
	relayModeHost = "host"
	relayModeJoin = "join"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var sessionRepo repository.SessionRepository
	if conf.Redis.Enabled() {
		redisClient, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisClient.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		sessionRepo = repository.NewSessionRepository(redisClient)
	}

	var moveOracle strategy.MoveOracle
	if conf.Oracle.URL != "" {
		moveOracle = oracle.NewHTTPOracle(conf.Oracle.URL, conf.Oracle.Timeout())
	}
	tier := strategy.ForName(conf.Strategy.Kind, moveOracle)
	log.Info("strategy tier selected", "tier", tier.Name())

	sess := session.New(pkg.GenerateSessionID())
	controller := session.NewController(logger, sess, tier, session.Options{
		ThinkingDelay: conf.Session.ThinkingDelay(),
		BlastDisplay:  conf.Session.BlastDisplay(),
		Seat1Control:  seat1Control(conf.Relay.Mode),
		Seat2Control:  seat2Control(conf.Relay.Mode),
	})

	manager := usecase.NewSessionManager(logger, controller, sessionRepo)

	switch conf.Relay.Mode {
	case relayModeHost:
		link := relay.New(logger, manager.RelayHooks())
		manager.AttachRelay(link)
		if err := link.Host(ctx, conf.Relay.Port); err != nil {
			return fmt.Errorf("could not host relay: %w", err)
		}
	case relayModeJoin:
		link := relay.New(logger, manager.RelayHooks())
		manager.AttachRelay(link)
		if err := link.Join(ctx, conf.Relay.JoinAddr); err != nil {
			return fmt.Errorf("could not join hosted session: %w", err)
		}
	}

	go manager.Run(ctx)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, manager); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// seat1Control and seat2Control fix the seat roles per relay mode: the
// hosting process is Seat1 and plays black first, the joiner is Seat2.
// Local play pits the human Seat1 against an automated Seat2.
func seat1Control(mode string) session.SeatControl {
	if mode == relayModeJoin {
		return session.ControlRemote
	}
	return session.ControlHuman
}

func seat2Control(mode string) session.SeatControl {
	switch mode {
	case relayModeHost:
		return session.ControlRemote
	case relayModeJoin:
		return session.ControlHuman
	default:
		return session.ControlAutomated
	}
}
