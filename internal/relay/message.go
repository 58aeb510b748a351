package relay

import (
	"encoding/json"
	"fmt"

	"github.com/blastrow/blastfive-backend/internal/entity"
)

const (
	// TypeMove mirrors a just-applied move to the peer.
	TypeMove = "MOVE"
	// TypeReset restarts the session on both sides.
	TypeReset = "RESET"
)

// Message is the whole relay wire vocabulary. Unknown types are ignored
// by receivers without closing the connection.
type Message struct {
	Type string `json:"type"`
	Row  int    `json:"r"`
	Col  int    `json:"c"`
}

type resetMessage struct {
	Type string `json:"type"`
}

func EncodeMove(move entity.Move) ([]byte, error) {
	payload, err := json.Marshal(Message{Type: TypeMove, Row: move.Row, Col: move.Col})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal move message: %w", err)
	}
	return payload, nil
}

func EncodeReset() ([]byte, error) {
	payload, err := json.Marshal(resetMessage{Type: TypeReset})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reset message: %w", err)
	}
	return payload, nil
}

func Decode(payload []byte) (*Message, error) {
	var message Message
	if err := json.Unmarshal(payload, &message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal relay message: %w", err)
	}
	return &message, nil
}
