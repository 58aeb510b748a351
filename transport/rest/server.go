package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/blastrow/blastfive-backend/internal/entity"
)

// uSession is the narrow slice of the session manager the REST surface
// needs: read the observable state, submit a move, restart.
type uSession interface {
	Snapshot() *entity.Snapshot
	SubmitMove(move entity.Move)
	Reset()
}

func Start(port string, uSession uSession) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/state", stateHandler(uSession))
	mux.HandleFunc("/move", moveHandler(uSession))
	mux.HandleFunc("/reset", resetHandler(uSession))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
