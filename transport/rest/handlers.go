package rest

import (
	"encoding/json"
	"net/http"

	"github.com/blastrow/blastfive-backend/internal/entity"
)

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// stateHandler serves the observable session state: board ints, scores,
// turn counter, mapping and verdict. Front ends render from this.
func stateHandler(uSession uSession) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(uSession.Snapshot()); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}

// moveHandler accepts a human move as {"r":<int>,"c":<int>}. Submission
// is fire-and-forget: illegal moves are dropped by the controller, the
// caller observes the outcome through /state.
func moveHandler(uSession uSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var move entity.Move
		if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
			http.Error(w, "invalid move payload", http.StatusBadRequest)
			return
		}

		uSession.SubmitMove(move)
		w.WriteHeader(http.StatusAccepted)
	}
}

func resetHandler(uSession uSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		uSession.Reset()
		w.WriteHeader(http.StatusAccepted)
	}
}
