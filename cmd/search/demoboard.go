package main

import "github.com/tetrachess/engine/pkg/board"

// demoBoard is a deliberately trivial Board implementation: each of the
// four seats has a single king and nothing else. It exists only so
// cmd/search has something to hand the engine (real board representation
// and move generation live outside this module) — enough squares, turns,
// and captures to drive MakeMove end to end, not a playable game.
type demoBoard struct {
	turn    board.Player
	kings   [4]board.Location
	present [4]bool
	history []demoUndo
}

type demoUndo struct {
	prevTurn board.Player
	mover    board.Player
	from, to board.Location
	captured board.Player
	hadCapture bool
	wasNull  bool
}

// newDemoBoard seats the four kings in the board's corners, Red to move.
func newDemoBoard() *demoBoard {
	return &demoBoard{
		turn: board.Red,
		kings: [4]board.Location{
			board.Red:    {Row: 0, Col: 0},
			board.Blue:   {Row: 0, Col: board.BoardSize - 1},
			board.Yellow: {Row: board.BoardSize - 1, Col: board.BoardSize - 1},
			board.Green:  {Row: board.BoardSize - 1, Col: 0},
		},
		present: [4]bool{true, true, true, true},
	}
}

// clone returns an independent copy, satisfying the coordinator's
// cloneBoard contract: each worker owns its own board.
func (b *demoBoard) clone() board.Board {
	var c = *b
	c.history = nil
	return &c
}

func (b *demoBoard) GetTurn() board.Player     { return b.turn }
func (b *demoBoard) SetPlayer(p board.Player)  { b.turn = p }
func (b *demoBoard) TeamToPlay() board.Team    { return board.TeamOf(b.turn) }

func (b *demoBoard) nextPresent(from board.Player) board.Player {
	var p = from
	for i := 0; i < 4; i++ {
		p = (p + 1) % 4
		if b.present[p] {
			return p
		}
	}
	return from
}

var kingSteps = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (b *demoBoard) GetPseudoLegalMoves2(out []board.Move, cap int) int {
	if !b.present[b.turn] {
		return 0
	}
	var from = b.kings[b.turn]
	var n = 0
	for _, d := range kingSteps {
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
		out[n] = demoMove{from: from, to: to, mover: b.turn, capturePlayer: capturePlayer, hasCapture: hasCapture}
		n++
	}
	return n
}

func (b *demoBoard) occupantAt(loc board.Location) (board.Player, bool) {
	for p := board.Player(0); p < 4; p++ {
		if b.present[p] && b.kings[p] == loc {
			return p, true
		}
	}
	return 0, false
}

func (b *demoBoard) MakeMove(m board.Move) {
	var dm = m.(demoMove)
	b.history = append(b.history, demoUndo{
		prevTurn: b.turn,
		mover:    dm.mover,
		from:     dm.from,
		to:       dm.to,
		captured: dm.capturePlayer,
		hadCapture: dm.hasCapture,
	})
	b.kings[dm.mover] = dm.to
	if dm.hasCapture {
		b.present[dm.capturePlayer] = false
	}
	b.turn = b.nextPresent(dm.mover)
}

func (b *demoBoard) UndoMove() {
	var n = len(b.history)
	var u = b.history[n-1]
	b.history = b.history[:n-1]
	b.kings[u.mover] = u.from
	if u.hadCapture {
		b.present[u.captured] = true
	}
	b.turn = u.prevTurn
}

func (b *demoBoard) MakeNullMove() {
	b.history = append(b.history, demoUndo{prevTurn: b.turn, wasNull: true})
	b.turn = b.nextPresent(b.turn)
}

func (b *demoBoard) UndoNullMove() {
	var n = len(b.history)
	var u = b.history[n-1]
	b.history = b.history[:n-1]
	b.turn = u.prevTurn
}

func (b *demoBoard) IsKingInCheck(p board.Player) bool {
	if !b.present[p] {
		return false
	}
	var loc = b.kings[p]
	for other := board.Player(0); other < 4; other++ {
		if other == p || !b.present[other] || !board.Opponents(p, other) {
			continue
		}
		if adjacent(loc, b.kings[other]) {
			return true
		}
	}
	return false
}

func adjacent(a, c board.Location) bool {
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

func (b *demoBoard) CheckWasLastMoveKingCapture() board.GameResult {
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

func (b *demoBoard) HashKey() int64 {
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

const demoKingValue = 20000

func (b *demoBoard) PieceEvaluation() int {
	var score int
	for p := board.Player(0); p < 4; p++ {
		if !b.present[p] {
			continue
		}
		if board.TeamOf(p) == board.RedYellow {
			score += demoKingValue
		} else {
			score -= demoKingValue
		}
	}
	return score
}

func (b *demoBoard) PieceEvaluationFor(p board.Player) int {
	if b.present[p] {
		return demoKingValue
	}
	return 0
}

func (b *demoBoard) GetPiece(loc board.Location) (board.PieceType, board.Player, bool) {
	if p, ok := b.occupantAt(loc); ok {
		return board.King, p, true
	}
	return board.NoPiece, 0, false
}

func (b *demoBoard) GetKingLocation(p board.Player) (board.Location, bool) {
	return b.kings[p], b.present[p]
}

func (b *demoBoard) GetPieceList() [4][]board.Location {
	var out [4][]board.Location
	for p := board.Player(0); p < 4; p++ {
		if b.present[p] {
			out[p] = []board.Location{b.kings[p]}
		}
	}
	return out
}

func (b *demoBoard) GetAttackers2(out []board.Location, cap int, attacking board.Team, loc board.Location) int {
	var n = 0
	for p := board.Player(0); p < 4 && n < cap; p++ {
		if b.present[p] && board.TeamOf(p) == attacking && adjacent(b.kings[p], loc) {
			out[n] = b.kings[p]
			n++
		}
	}
	return n
}

func (b *demoBoard) IsLegalLocation(loc board.Location) bool {
	return loc.Row >= 0 && loc.Row < board.BoardSize && loc.Col >= 0 && loc.Col < board.BoardSize
}

// demoMove is the corresponding trivial Move: a king stepping one square,
// optionally capturing whatever king sits on the destination.
type demoMove struct {
	from, to      board.Location
	mover         board.Player
	capturePlayer board.Player
	hasCapture    bool
}

func (m demoMove) From() board.Location           { return m.from }
func (m demoMove) To() board.Location             { return m.to }
func (m demoMove) MovingPiece() board.PieceType   { return board.King }
func (m demoMove) MovingPieceColor() board.Player { return m.mover }

func (m demoMove) CapturePiece() board.PieceType {
	if m.hasCapture {
		return board.King
	}
	return board.NoPiece
}

func (m demoMove) CapturePieceColor() board.Player { return m.capturePlayer }
func (m demoMove) IsCapture() bool                 { return m.hasCapture }

// DeliversCheck reports whether, after making m, the mover's king would sit
// adjacent to an opposing king still on the board.
func (m demoMove) DeliversCheck(b board.Board) bool {
	var db, ok = b.(*demoBoard)
	if !ok {
		return false
	}
	for other := board.Player(0); other < 4; other++ {
		if other == m.mover || !db.present[other] || !board.Opponents(m.mover, other) {
			continue
		}
		var otherLoc = db.kings[other]
		if m.hasCapture && other == m.capturePlayer {
			continue
		}
		if adjacent(m.to, otherLoc) {
			return true
		}
	}
	return false
}

func (m demoMove) ApproxSEE(b board.Board, pieceValues [7]int) int {
	if !m.hasCapture {
		return 0
	}
	return pieceValues[board.King]
}

func (m demoMove) Present() bool { return true }

func (m demoMove) Equals(other board.Move) bool {
	o, ok := other.(demoMove)
	return ok && o.from == m.from && o.to == m.to && o.mover == m.mover
}
