package apperror

import "errors"

var (
	ErrSessionTerminal  = errors.New("session is already terminal")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrAutomatedPending = errors.New("an automated move is pending")
	ErrNoMoveAvailable  = errors.New("no move available")
	ErrSessionNotFound  = errors.New("session not found")
)
