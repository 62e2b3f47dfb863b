package model

const (
	kingHomeCol      = 4
	queensideRookCol = 0
	kingsideRookCol  = 7
)

// castleRookSquares returns where the rook starts and lands for a king
// moving from kingFrom to kingTo on the same row.
func castleRookSquares(kingFrom, kingTo Square) (rookFrom, rookTo Square) {
	if kingTo.Col > kingFrom.Col {
		return Square{Row: kingFrom.Row, Col: kingsideRookCol}, Square{Row: kingFrom.Row, Col: kingTo.Col - 1}
	}
	return Square{Row: kingFrom.Row, Col: queensideRookCol}, Square{Row: kingFrom.Row, Col: kingTo.Col + 1}
}

// CanCastle reports whether colour c may castle its king from kingSq to
// dest. It does not move anything; the rook relocation and rights update
// happen in Apply.
func (p *Position) CanCastle(c Color, kingSq, dest Square) bool {
	row := c.homeRow()
	if kingSq != (Square{Row: row, Col: kingHomeCol}) || dest.Row != row || abs(dest.Col-kingSq.Col) != 2 {
		return false
	}
	// An occupied destination can never be a castle, which also keeps
	// attack detection from recursing through here.
	if !p.get(dest).IsEmpty() {
		return false
	}

	rights := p.Castling.For(c)
	kingside := dest.Col > kingSq.Col
	if kingside && !rights.Kingside || !kingside && !rights.Queenside {
		return false
	}

	rookFrom, _ := castleRookSquares(kingSq, dest)
	if !p.get(rookFrom).Is(c, Rook) {
		return false
	}
	if !PathClear(&p.Board, kingSq, rookFrom) {
		return false
	}

	if p.IsInCheck(c) {
		return false
	}

	step := sign(dest.Col - kingSq.Col)
	king := p.get(kingSq)
	for col := kingSq.Col + step; col != dest.Col+step; col += step {
		probe := Square{Row: row, Col: col}
		backup := p.get(probe)
		p.set(probe, king)
		p.set(kingSq, Empty)
		attacked := p.IsInCheck(c)
		p.set(kingSq, king)
		p.set(probe, backup)
		if attacked {
			return false
		}
	}
	return true
}
