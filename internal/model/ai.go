package model

var pieceValues = [...]int{
	NoKind: 0,
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   100,
}

// Evaluate sums material over the board, counting perspective's pieces
// positive and the opponent's negative.
func (p *Position) Evaluate(perspective Color) int {
	score := 0
	for r := 0; r < 8; r++ {
		for col := 0; col < 8; col++ {
			piece := p.Board[r][col]
			if piece.IsEmpty() {
				continue
			}
			v := pieceValues[piece.Kind]
			if piece.Color == perspective {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}

// SelectMove picks colour c's legal move with the highest material score
// one ply ahead. Ties go to the first move in LegalMoves order. ok is false
// when c has no legal move.
func (p *Position) SelectMove(c Color) (best Move, ok bool) {
	bestScore := 0
	for _, m := range p.LegalMoves(c) {
		u := p.makeMove(m.From, m.To)
		score := p.Evaluate(c)
		p.unmakeMove(u)

		if !ok || score > bestScore {
			best, bestScore, ok = m, score, true
		}
	}
	return best, ok
}
