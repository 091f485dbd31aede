package board

// Move is opaque to the search core: it carries enough information for
// move ordering and make/undo bookkeeping, but the core never constructs
// one directly other than the null-move sentinel.
type Move interface {
	From() Location
	To() Location

	// MovingPiece is the piece occupying From() before the move is made.
	MovingPiece() PieceType
	// MovingPieceColor is the player making the move.
	MovingPieceColor() Player

	// CapturePiece is the piece captured by this move, or NoPiece.
	CapturePiece() PieceType
	// CapturePieceColor is the color of the captured piece; meaningless
	// when CapturePiece() == NoPiece.
	CapturePieceColor() Player

	IsCapture() bool

	// DeliversCheck reports whether making this move on board puts an
	// opposing king in check. Board is consulted, not mutated.
	DeliversCheck(b Board) bool

	// ApproxSEE returns the static-exchange evaluation of this move on
	// board, in centipawns, using the supplied piece values.
	ApproxSEE(b Board, pieceValues [7]int) int

	// Present distinguishes a real move from the null/none sentinel.
	Present() bool

	// Equals compares two moves for identity (same from/to/piece/capture).
	Equals(other Move) bool
}

// NullMove is the sentinel representing "no move" (Present() is false).
// The search records it as the current move of a frame where a null move
// was made via Board.MakeNullMove; an exhausted MovePicker or a missing
// TT move is reported as nil instead.
var NullMove Move = nullMove{}

type nullMove struct{}

func (nullMove) From() Location                                { return Location{} }
func (nullMove) To() Location                                  { return Location{} }
func (nullMove) MovingPiece() PieceType                        { return NoPiece }
func (nullMove) MovingPieceColor() Player                      { return Red }
func (nullMove) CapturePiece() PieceType                       { return NoPiece }
func (nullMove) CapturePieceColor() Player                     { return Red }
func (nullMove) IsCapture() bool                               { return false }
func (nullMove) DeliversCheck(Board) bool                      { return false }
func (nullMove) ApproxSEE(Board, [7]int) int                   { return 0 }
func (nullMove) Present() bool                                 { return false }
func (m nullMove) Equals(other Move) bool                      { return other == nil || !other.Present() }
