package model

func (p *Position) isEnPassantCapture(piece Piece, from, to Square) bool {
	return piece.Kind == Pawn && p.EnPassant != nil && *p.EnPassant == to && from.Col != to.Col
}

func isCastle(piece Piece, from, to Square) bool {
	return piece.Kind == King && from.Row == to.Row && abs(to.Col-from.Col) == 2
}

// makeMove moves the piece on the board, including the en passant victim
// and the castling rook. Castling rights, en passant target, turn and
// promotion are left alone so that simulations stay cheap.
func (p *Position) makeMove(from, to Square) undo {
	moved := p.get(from)
	u := undo{
		from:     from,
		to:       to,
		moved:    moved,
		captured: p.get(to),
	}

	if p.isEnPassantCapture(moved, from, to) {
		u.enPassant = true
		u.epSquare = Square{Row: from.Row, Col: to.Col}
		u.epCaptured = p.get(u.epSquare)
		p.set(u.epSquare, Empty)
	}

	if isCastle(moved, from, to) {
		u.castled = true
		u.rookFrom, u.rookTo = castleRookSquares(from, to)
		p.set(u.rookTo, p.get(u.rookFrom))
		p.set(u.rookFrom, Empty)
	}

	p.set(to, moved)
	p.set(from, Empty)
	return u
}

func (p *Position) unmakeMove(u undo) {
	p.set(u.from, u.moved)
	p.set(u.to, u.captured)
	if u.enPassant {
		p.set(u.epSquare, u.epCaptured)
	}
	if u.castled {
		p.set(u.rookFrom, p.get(u.rookTo))
		p.set(u.rookTo, Empty)
	}
}

// Apply performs m with every side effect: en passant removal, rook
// relocation, castling rights, en passant target, promotion sweep and the
// turn change. It does not check legality.
func (p *Position) Apply(m Move) AppliedMove {
	u := p.makeMove(m.From, m.To)
	mover := u.moved

	applied := AppliedMove{
		Piece:     mover,
		From:      m.From,
		To:        m.To,
		EnPassant: u.enPassant,
	}
	switch {
	case u.enPassant:
		victim := u.epCaptured
		applied.CapturedPiece = &victim
	case !u.captured.IsEmpty():
		victim := u.captured
		applied.CapturedPiece = &victim
	}
	if u.castled {
		applied.CastleRookMove = &CastleRookMove{From: u.rookFrom, To: u.rookTo}
	}

	p.updateCastlingRights(mover, m.From, u.captured, m.To)

	p.EnPassant = nil
	if mover.Kind == Pawn && abs(m.To.Row-m.From.Row) == 2 {
		p.EnPassant = &Square{Row: (m.From.Row + m.To.Row) / 2, Col: m.To.Col}
	}

	applied.Promotion = p.promotePawns(m.To)
	p.Turn = mover.Color.Opponent()
	return applied
}

func (p *Position) updateCastlingRights(mover Piece, from Square, captured Piece, to Square) {
	rights := p.Castling.For(mover.Color)
	switch mover.Kind {
	case King:
		rights.Kingside = false
		rights.Queenside = false
	case Rook:
		if from.Row == mover.Color.homeRow() {
			switch from.Col {
			case queensideRookCol:
				rights.Queenside = false
			case kingsideRookCol:
				rights.Kingside = false
			}
		}
	}

	if captured.Kind == Rook && to.Row == captured.Color.homeRow() {
		theirs := p.Castling.For(captured.Color)
		switch to.Col {
		case queensideRookCol:
			theirs.Queenside = false
		case kingsideRookCol:
			theirs.Kingside = false
		}
	}
}

// promotePawns turns every pawn on its farthest rank into a queen and
// reports whether the square landed on was one of them.
func (p *Position) promotePawns(landed Square) bool {
	promoted := false
	for col := 0; col < 8; col++ {
		for _, c := range []Color{White, Black} {
			s := Square{Row: c.Opponent().homeRow(), Col: col}
			if p.get(s).Is(c, Pawn) {
				p.set(s, NewPiece(c, Queen))
				if s == landed {
					promoted = true
				}
			}
		}
	}
	return promoted
}
