package model

import (
	"fmt"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// homeRow is the row a colour's king and rooks start on.
func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

// pawnDir is the row delta of a forward pawn step.
func (c Color) pawnDir() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// Kind is a piece kind. The zero value marks an empty square.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if i > 0 && name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

// Piece is either Empty or an occupied (colour, kind) pair.
type Piece struct {
	Color Color `json:"color"`
	Kind  Kind  `json:"kind"`
}

var Empty = Piece{}

func NewPiece(c Color, k Kind) Piece {
	return Piece{Color: c, Kind: k}
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

func (p Piece) Is(c Color, k Kind) bool {
	return !p.IsEmpty() && p.Color == c && p.Kind == k
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

// Square is a (row, column) pair. Row 0 is black's home rank, column 0 is the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

// Board is the 8x8 grid. It stores pieces and nothing else.
type Board [8][8]Piece

func (b *Board) Get(s Square) Piece {
	return b[s.Row][s.Col]
}

func (b *Board) Set(s Square, p Piece) {
	b[s.Row][s.Col] = p
}

// FindKing scans the board for the king of colour c.
func (b *Board) FindKing(c Color) (Square, bool) {
	for r := 0; r < 8; r++ {
		for col := 0; col < 8; col++ {
			if b[r][col].Is(c, King) {
				return Square{Row: r, Col: col}, true
			}
		}
	}
	return Square{}, false
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewBoard() Board {
	var b Board
	for col := 0; col < 8; col++ {
		b[0][col] = NewPiece(Black, backRank[col])
		b[1][col] = NewPiece(Black, Pawn)
		b[6][col] = NewPiece(White, Pawn)
		b[7][col] = NewPiece(White, backRank[col])
	}
	return b
}

// SideRights holds one colour's castling availability.
type SideRights struct {
	Kingside  bool `json:"kingside"`
	Queenside bool `json:"queenside"`
}

// CastlingRights only ever transition from true to false.
type CastlingRights struct {
	White SideRights `json:"white"`
	Black SideRights `json:"black"`
}

func (cr *CastlingRights) For(c Color) *SideRights {
	if c == White {
		return &cr.White
	}
	return &cr.Black
}

func fullCastlingRights() CastlingRights {
	return CastlingRights{
		White: SideRights{Kingside: true, Queenside: true},
		Black: SideRights{Kingside: true, Queenside: true},
	}
}

// Position is the complete rules state: board, side to move, castling
// rights and en passant target. It is not safe for concurrent use.
type Position struct {
	Board     Board          `json:"board"`
	Turn      Color          `json:"turn"`
	Castling  CastlingRights `json:"castlingRights"`
	EnPassant *Square        `json:"enPassantTarget"`
}

func NewPosition() *Position {
	return &Position{
		Board:    NewBoard(),
		Turn:     White,
		Castling: fullCastlingRights(),
	}
}

func (p *Position) get(s Square) Piece {
	return p.Board.Get(s)
}

func (p *Position) set(s Square, piece Piece) {
	p.Board.Set(s, piece)
}
