// Package oracle adapts an external HTTP move-recommendation service to
// the strategy tier's MoveOracle contract.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blastrow/blastfive-backend/internal/entity"
	"github.com/blastrow/blastfive-backend/internal/strategy"
)

var ErrBadStatus = errors.New("oracle returned a non-OK status")

type proposeRequest struct {
	Board      [][]int `json:"board"`
	Color      int     `json:"color"`
	Seat1Score int     `json:"seat1_score"`
	Seat2Score int     `json:"seat2_score"`
}

type proposeResponse struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

// HTTPOracle posts the full position to a remote endpoint and expects a
// single cell recommendation back.
type HTTPOracle struct {
	url    string
	client *http.Client
}

func NewHTTPOracle(url string, timeout time.Duration) *HTTPOracle {
	return &HTTPOracle{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (that *HTTPOracle) ProposeMove(ctx context.Context, board [][]int, color entity.Cell, scores strategy.Scores) (entity.Move, error) {
	body, err := json.Marshal(proposeRequest{
		Board:      board,
		Color:      int(color),
		Seat1Score: scores.Seat1,
		Seat2Score: scores.Seat2,
	})
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to marshal oracle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.url, bytes.NewReader(body))
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to build oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return entity.Move{}, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Move{}, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var proposed proposeResponse
	if err = json.NewDecoder(resp.Body).Decode(&proposed); err != nil {
		return entity.Move{}, fmt.Errorf("failed to decode oracle response: %w", err)
	}

	return entity.Move{Row: proposed.Row, Col: proposed.Col}, nil
}
