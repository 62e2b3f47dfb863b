package model

// IsPseudoLegal checks the moving piece's pattern and path occupancy but
// ignores whether the mover's own king is left attacked.
func (p *Position) IsPseudoLegal(from, to Square) bool {
	if !from.InBounds() || !to.InBounds() {
		return false
	}
	piece := p.get(from)
	if piece.IsEmpty() {
		return false
	}
	target := p.get(to)
	if !target.IsEmpty() && target.Color == piece.Color {
		return false
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col

	switch piece.Kind {
	case Pawn:
		return p.pawnPattern(piece.Color, from, to, target)
	case Knight:
		adr, adc := abs(dr), abs(dc)
		return (adr == 1 && adc == 2) || (adr == 2 && adc == 1)
	case Bishop:
		return abs(dr) == abs(dc) && PathClear(&p.Board, from, to)
	case Rook:
		return (dr == 0 || dc == 0) && PathClear(&p.Board, from, to)
	case Queen:
		if dr == 0 || dc == 0 || abs(dr) == abs(dc) {
			return PathClear(&p.Board, from, to)
		}
		return false
	case King:
		if abs(dr) <= 1 && abs(dc) <= 1 {
			return true
		}
		if dr == 0 && abs(dc) == 2 && (from.Row == 0 || from.Row == 7) {
			return p.CanCastle(piece.Color, from, to)
		}
		return false
	}
	return false
}

func (p *Position) pawnPattern(c Color, from, to Square, target Piece) bool {
	dir := c.pawnDir()
	startRow := 6
	if c == Black {
		startRow = 1
	}
	dr, dc := to.Row-from.Row, to.Col-from.Col

	switch {
	case dc == 0 && dr == dir:
		return target.IsEmpty()
	case dc == 0 && dr == 2*dir:
		mid := Square{Row: from.Row + dir, Col: from.Col}
		return from.Row == startRow && p.get(mid).IsEmpty() && target.IsEmpty()
	case abs(dc) == 1 && dr == dir:
		if !target.IsEmpty() {
			return true
		}
		if p.EnPassant == nil || *p.EnPassant != to {
			return false
		}
		// the pawn that just advanced two squares sits beside from
		return p.get(Square{Row: from.Row, Col: to.Col}).Is(c.Opponent(), Pawn)
	}
	return false
}

// IsLegal reports whether from->to is pseudo-legal and does not leave the
// mover's king attacked. The move is simulated on the board and always
// reverted before returning.
func (p *Position) IsLegal(from, to Square) bool {
	if !p.IsPseudoLegal(from, to) {
		return false
	}
	mover := p.get(from).Color
	u := p.makeMove(from, to)
	inCheck := p.IsInCheck(mover)
	p.unmakeMove(u)
	return !inCheck
}
