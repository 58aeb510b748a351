package entity

const (
	StatusAwaitingMove  = "awaiting_move"
	StatusAutomatedMove = "automated_move"
	StatusTerminal      = "terminal"
)

// Snapshot is the observable state of a session: what the REST surface
// serves, what the repository stores, and what the oracle adapter sends.
type Snapshot struct {
	ID         string   `json:"id,omitempty"`
	Board      [][]int  `json:"board"`
	Seat1Score int      `json:"seat1_score"`
	Seat2Score int      `json:"seat2_score"`
	TurnCount  int      `json:"turn_count"`
	NextColor  int      `json:"next_color"`
	Status     string   `json:"status"`
	Swapped    bool     `json:"swapped"`
	Blast      []Move   `json:"blast,omitempty"`
	Verdict    *Verdict `json:"verdict,omitempty"`
}

func (that *Snapshot) IsTerminal() bool {
	return that.Status == StatusTerminal
}

// Score returns the seat's accumulated score.
func (that *Snapshot) Score(seat Seat) int {
	if seat == Seat1 {
		return that.Seat1Score
	}
	return that.Seat2Score
}
