package model

type Status string

const (
	StatusPlaying   Status = "playing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

func (s Status) IsTerminal() bool {
	return s == StatusCheckmate || s == StatusStalemate
}

// LegalMoves enumerates every legal move for colour c. Origins and then
// destinations are visited row by row, so the order is fixed.
func (p *Position) LegalMoves(c Color) []Move {
	moves := []Move{}
	p.eachLegalMove(c, func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

func (p *Position) HasLegalMove(c Color) bool {
	found := false
	p.eachLegalMove(c, func(Move) bool {
		found = true
		return false
	})
	return found
}

// eachLegalMove calls fn for each legal move until fn returns false.
func (p *Position) eachLegalMove(c Color, fn func(Move) bool) {
	for r := 0; r < 8; r++ {
		for col := 0; col < 8; col++ {
			piece := p.Board[r][col]
			if piece.IsEmpty() || piece.Color != c {
				continue
			}
			from := Square{Row: r, Col: col}
			for tr := 0; tr < 8; tr++ {
				for tc := 0; tc < 8; tc++ {
					to := Square{Row: tr, Col: tc}
					if p.IsLegal(from, to) && !fn(Move{From: from, To: to}) {
						return
					}
				}
			}
		}
	}
}

// LegalDestinations lists every square the piece on from may legally move to.
func (p *Position) LegalDestinations(from Square) []Square {
	dests := []Square{}
	if !from.InBounds() {
		return dests
	}
	for r := 0; r < 8; r++ {
		for col := 0; col < 8; col++ {
			to := Square{Row: r, Col: col}
			if p.IsLegal(from, to) {
				dests = append(dests, to)
			}
		}
	}
	return dests
}

// Classify computes colour c's status from scratch.
func (p *Position) Classify(c Color) Status {
	inCheck := p.IsInCheck(c)
	hasMoves := p.HasLegalMove(c)
	switch {
	case inCheck && hasMoves:
		return StatusCheck
	case inCheck:
		return StatusCheckmate
	case hasMoves:
		return StatusPlaying
	default:
		return StatusStalemate
	}
}
