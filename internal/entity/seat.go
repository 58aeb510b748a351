package entity

// SwapInterval is the number of applied moves after which the seats trade
// stone colors.
const SwapInterval = 30

// Seat is a stable competitor identity. Seats accumulate score; which
// stone color a seat plays changes every SwapInterval turns.
type Seat string

const (
	Seat1 Seat = "seat1"
	Seat2 Seat = "seat2"

	// SeatTie is used only as a verdict winner.
	SeatTie Seat = "tie"
)

func (s Seat) Other() Seat {
	if s == Seat1 {
		return Seat2
	}
	return Seat1
}

// MappingSwapped reports whether the seat/color mapping is flipped at the
// given cumulative turn counter. It is derived from the counter, never
// accumulated, so replayed remote moves land on the same mapping.
func MappingSwapped(turnCount int) bool {
	return (turnCount/SwapInterval)%2 == 1
}

// ColorOf returns the stone color the seat holds at the given turn counter.
// Seat1 starts black, Seat2 starts white.
func (s Seat) ColorOf(turnCount int) Cell {
	swapped := MappingSwapped(turnCount)
	if (s == Seat1) != swapped {
		return CellBlack
	}
	return CellWhite
}

// SeatOf returns the seat holding the given color at the given turn counter.
func SeatOf(color Cell, turnCount int) Seat {
	if Seat1.ColorOf(turnCount) == color {
		return Seat1
	}
	return Seat2
}
