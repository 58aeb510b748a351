package entity

// Reason explains why a session terminated.
type Reason string

const (
	// ReasonDominantWin - a seat reached 200 points with a margin of at
	// least 100 over the opponent.
	ReasonDominantWin Reason = "dominant_win"
	// ReasonHigherScore - board filled up, higher score wins.
	ReasonHigherScore Reason = "higher_score"
	// ReasonStoneCount - board filled up with equal scores; the seat with
	// fewer stones on the board wins.
	ReasonStoneCount Reason = "tie_broken_by_stone_count"
	// ReasonFullTie - board full, equal scores, equal stone counts.
	ReasonFullTie Reason = "full_tie"
)

// Verdict is the terminal record of a session. Once set, no further moves
// are accepted.
type Verdict struct {
	Winner Seat   `json:"winner"`
	Reason Reason `json:"reason"`
}
