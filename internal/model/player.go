package model

type Opponent string

const (
	OpponentAI    Opponent = "ai"
	OpponentHuman Opponent = "human"
)

func (o Opponent) Valid() bool {
	return o == OpponentAI || o == OpponentHuman
}

// aiPlayerID marks the seat taken by the automated opponent.
const aiPlayerID = "computer"

type ClientPlayer struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (p *Players) seat(c Color) *ClientPlayer {
	if c == White {
		return &p.White
	}
	return &p.Black
}

// colorOf returns the seat held by playerID.
func (p *Players) colorOf(playerID string) (Color, bool) {
	switch {
	case playerID == "":
		return White, false
	case p.White.ID == playerID:
		return White, true
	case p.Black.ID == playerID:
		return Black, true
	}
	return White, false
}
