package model

// IsInCheck reports whether any opposing piece pseudo-legally reaches c's
// king. A missing king is never in check.
func (p *Position) IsInCheck(c Color) bool {
	king, ok := p.Board.FindKing(c)
	if !ok {
		return false
	}
	return p.isAttackedBy(king, c.Opponent())
}

// isAttackedBy must stay on IsPseudoLegal: IsLegal calls IsInCheck.
func (p *Position) isAttackedBy(target Square, attacker Color) bool {
	for r := 0; r < 8; r++ {
		for col := 0; col < 8; col++ {
			piece := p.Board[r][col]
			if piece.IsEmpty() || piece.Color != attacker {
				continue
			}
			if p.IsPseudoLegal(Square{Row: r, Col: col}, target) {
				return true
			}
		}
	}
	return false
}
