package entity

// Move is a 0-indexed board coordinate.
type Move struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

func (m Move) IsValid() bool {
	return m.Row >= 0 && m.Col >= 0 && m.Row < BoardSize && m.Col < BoardSize
}

func (m Move) Equals(other Move) bool {
	return m.Row == other.Row && m.Col == other.Col
}
