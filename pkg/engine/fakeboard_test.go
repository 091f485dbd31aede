package engine

import "github.com/tetrachess/engine/pkg/board"

// fakeBoard is a minimal four-king board used only to drive the search
// core in tests without any real move generation: each seat has exactly
// one king, legal moves are single-square king steps, and capturing an
// opposing king ends the game immediately.
type fakeBoard struct {
	turn    board.Player
	kings   [4]board.Location
	present [4]bool
	history []fakeUndo
}

type fakeUndo struct {
	prevTurn   board.Player
	mover      board.Player
	from, to   board.Location
	captured   board.Player
	hadCapture bool
}

func newFakeBoard(turn board.Player, kings [4]board.Location, present [4]bool) *fakeBoard {
	return &fakeBoard{turn: turn, kings: kings, present: present}
}

func (b *fakeBoard) clone() board.Board {
	var c = *b
	c.history = nil
	return &c
}

func (b *fakeBoard) GetTurn() board.Player    { return b.turn }
func (b *fakeBoard) SetPlayer(p board.Player) { b.turn = p }
func (b *fakeBoard) TeamToPlay() board.Team   { return board.TeamOf(b.turn) }

func (b *fakeBoard) nextPresent(from board.Player) board.Player {
	var p = from
	for i := 0; i < 4; i++ {
		p = (p + 1) % 4
		if b.present[p] {
			return p
		}
	}
	return from
}

var fakeKingSteps = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (b *fakeBoard) GetPseudoLegalMoves2(out []board.Move, cap int) int {
	if !b.present[b.turn] {
		return 0
	}
	var from = b.kings[b.turn]
	var n = 0
	for _, d := range fakeKingSteps {
		if n >= cap {
			break
		}
		var to = board.Location{Row: from.Row + d[0], Col: from.Col + d[1]}
		if !b.IsLegalLocation(to) {
			continue
		}
		var capturePlayer, hasCapture = b.occupantAt(to)
		if hasCapture && board.TeamOf(capturePlayer) == board.TeamOf(b.turn) {
			continue
		}
		out[n] = fakeMove{from: from, to: to, mover: b.turn, capturePlayer: capturePlayer, hasCapture: hasCapture}
		n++
	}
	return n
}

func (b *fakeBoard) occupantAt(loc board.Location) (board.Player, bool) {
	for p := board.Player(0); p < 4; p++ {
		if b.present[p] && b.kings[p] == loc {
			return p, true
		}
	}
	return 0, false
}

func (b *fakeBoard) MakeMove(m board.Move) {
	var dm = m.(fakeMove)
	b.history = append(b.history, fakeUndo{
		prevTurn:   b.turn,
		mover:      dm.mover,
		from:       dm.from,
		to:         dm.to,
		captured:   dm.capturePlayer,
		hadCapture: dm.hasCapture,
	})
	b.kings[dm.mover] = dm.to
	if dm.hasCapture {
		b.present[dm.capturePlayer] = false
	}
	b.turn = b.nextPresent(dm.mover)
}

func (b *fakeBoard) UndoMove() {
	var n = len(b.history)
	var u = b.history[n-1]
	b.history = b.history[:n-1]
	b.kings[u.mover] = u.from
	if u.hadCapture {
		b.present[u.captured] = true
	}
	b.turn = u.prevTurn
}

func (b *fakeBoard) MakeNullMove() {
	b.history = append(b.history, fakeUndo{prevTurn: b.turn})
	b.turn = b.nextPresent(b.turn)
}

func (b *fakeBoard) UndoNullMove() {
	var n = len(b.history)
	var u = b.history[n-1]
	b.history = b.history[:n-1]
	b.turn = u.prevTurn
}

func (b *fakeBoard) IsKingInCheck(p board.Player) bool {
	if !b.present[p] {
		return false
	}
	var loc = b.kings[p]
	for other := board.Player(0); other < 4; other++ {
		if other == p || !b.present[other] || !board.Opponents(p, other) {
			continue
		}
		if fakeAdjacent(loc, b.kings[other]) {
			return true
		}
	}
	return false
}

func fakeAdjacent(a, c board.Location) bool {
	var dr = a.Row - c.Row
	var dc = a.Col - c.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr <= 1 && dc <= 1 && (dr != 0 || dc != 0)
}

func (b *fakeBoard) CheckWasLastMoveKingCapture() board.GameResult {
	var n = len(b.history)
	if n == 0 {
		return board.NoResult
	}
	var u = b.history[n-1]
	if !u.hadCapture {
		return board.NoResult
	}
	if board.TeamOf(u.mover) == board.RedYellow {
		return board.RedYellowWins
	}
	return board.BlueGreenWins
}

func (b *fakeBoard) HashKey() int64 {
	var h int64 = 1469598103934665603
	for p := board.Player(0); p < 4; p++ {
		if !b.present[p] {
			continue
		}
		h ^= int64(p)*1000003 + int64(b.kings[p].Row)*97 + int64(b.kings[p].Col)
		h *= 1099511628211
	}
	h ^= int64(b.turn) * 31
	return h
}

const fakeKingValue = 20000

func (b *fakeBoard) PieceEvaluation() int {
	var score int
	for p := board.Player(0); p < 4; p++ {
		if !b.present[p] {
			continue
		}
		if board.TeamOf(p) == board.RedYellow {
			score += fakeKingValue
		} else {
			score -= fakeKingValue
		}
	}
	return score
}

func (b *fakeBoard) PieceEvaluationFor(p board.Player) int {
	if b.present[p] {
		return fakeKingValue
	}
	return 0
}

func (b *fakeBoard) GetPiece(loc board.Location) (board.PieceType, board.Player, bool) {
	if p, ok := b.occupantAt(loc); ok {
		return board.King, p, true
	}
	return board.NoPiece, 0, false
}

func (b *fakeBoard) GetKingLocation(p board.Player) (board.Location, bool) {
	return b.kings[p], b.present[p]
}

func (b *fakeBoard) GetPieceList() [4][]board.Location {
	var out [4][]board.Location
	for p := board.Player(0); p < 4; p++ {
		if b.present[p] {
			out[p] = []board.Location{b.kings[p]}
		}
	}
	return out
}

func (b *fakeBoard) GetAttackers2(out []board.Location, cap int, attacking board.Team, loc board.Location) int {
	var n = 0
	for p := board.Player(0); p < 4 && n < cap; p++ {
		if b.present[p] && board.TeamOf(p) == attacking && fakeAdjacent(b.kings[p], loc) {
			out[n] = b.kings[p]
			n++
		}
	}
	return n
}

func (b *fakeBoard) IsLegalLocation(loc board.Location) bool {
	return loc.Row >= 0 && loc.Row < board.BoardSize && loc.Col >= 0 && loc.Col < board.BoardSize
}

type fakeMove struct {
	from, to      board.Location
	mover         board.Player
	capturePlayer board.Player
	hasCapture    bool
}

func (m fakeMove) From() board.Location           { return m.from }
func (m fakeMove) To() board.Location             { return m.to }
func (m fakeMove) MovingPiece() board.PieceType   { return board.King }
func (m fakeMove) MovingPieceColor() board.Player { return m.mover }

func (m fakeMove) CapturePiece() board.PieceType {
	if m.hasCapture {
		return board.King
	}
	return board.NoPiece
}

func (m fakeMove) CapturePieceColor() board.Player { return m.capturePlayer }
func (m fakeMove) IsCapture() bool                 { return m.hasCapture }

func (m fakeMove) DeliversCheck(b board.Board) bool {
	var fb, ok = b.(*fakeBoard)
	if !ok {
		return false
	}
	for other := board.Player(0); other < 4; other++ {
		if other == m.mover || !fb.present[other] || !board.Opponents(m.mover, other) {
			continue
		}
		if m.hasCapture && other == m.capturePlayer {
			continue
		}
		if fakeAdjacent(m.to, fb.kings[other]) {
			return true
		}
	}
	return false
}

func (m fakeMove) ApproxSEE(b board.Board, pieceValues [7]int) int {
	if !m.hasCapture {
		return 0
	}
	return pieceValues[board.King]
}

func (m fakeMove) Present() bool { return true }

func (m fakeMove) Equals(other board.Move) bool {
	o, ok := other.(fakeMove)
	return ok && o.from == m.from && o.to == m.to && o.mover == m.mover
}
