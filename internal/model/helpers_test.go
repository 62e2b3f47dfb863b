package model

import (
	"strings"
	"testing"
)

var fenKinds = map[rune]Kind{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// mustFEN builds a Position from the first four FEN fields.
func mustFEN(t *testing.T, fen string) *Position {
	t.Helper()
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		t.Fatalf("FEN %q: want at least 4 fields", fen)
	}

	p := &Position{}
	rows := strings.Split(fields[0], "/")
	if len(rows) != 8 {
		t.Fatalf("FEN %q: want 8 ranks, got %d", fen, len(rows))
	}
	for r, row := range rows {
		col := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			kind, ok := fenKinds[toLower(ch)]
			if !ok || col > 7 {
				t.Fatalf("FEN %q: bad piece %q", fen, ch)
			}
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
			}
			p.Board[r][col] = NewPiece(color, kind)
			col++
		}
	}

	if fields[1] == "b" {
		p.Turn = Black
	}
	p.Castling.White.Kingside = strings.Contains(fields[2], "K")
	p.Castling.White.Queenside = strings.Contains(fields[2], "Q")
	p.Castling.Black.Kingside = strings.Contains(fields[2], "k")
	p.Castling.Black.Queenside = strings.Contains(fields[2], "q")
	if fields[3] != "-" {
		sq := mustSquare(t, fields[3])
		p.EnPassant = &sq
	}
	return p
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// mustSquare parses a coordinate like "e4".
func mustSquare(t *testing.T, name string) Square {
	t.Helper()
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		t.Fatalf("bad square %q", name)
	}
	return Square{Row: 8 - int(name[1]-'0'), Col: int(name[0] - 'a')}
}

func mustMove(t *testing.T, from, to string) Move {
	t.Helper()
	return Move{From: mustSquare(t, from), To: mustSquare(t, to)}
}

// play applies each "e2e4"-style move after checking it is legal.
func play(t *testing.T, p *Position, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		m := mustMove(t, mv[:2], mv[2:])
		if !p.IsLegal(m.From, m.To) {
			t.Fatalf("move %s is not legal", mv)
		}
		p.Apply(m)
	}
}

// snapshot deep-copies a Position.
func snapshot(p *Position) Position {
	c := *p
	if p.EnPassant != nil {
		ep := *p.EnPassant
		c.EnPassant = &ep
	}
	return c
}
