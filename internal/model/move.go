package model

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// AppliedMove records what a move did once it was applied. Only the most
// recent one is kept by a Game.
type AppliedMove struct {
	Piece          Piece           `json:"piece"`
	From           Square          `json:"from"`
	To             Square          `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	EnPassant      bool            `json:"enPassant"`
	Promotion      bool            `json:"promotion"`
}

// undo captures exactly the squares makeMove touched.
type undo struct {
	from, to Square
	moved    Piece
	captured Piece

	enPassant  bool
	epSquare   Square
	epCaptured Piece

	castled  bool
	rookFrom Square
	rookTo   Square
}
