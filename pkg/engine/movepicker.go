package engine

import "github.com/tetrachess/engine/pkg/board"

// Stage score buckets are spread far enough apart that a move's finer
// score (MVV-LVA, capture history, plain history) never crosses a
// bucket boundary, reproducing the staged yield order without a literal
// state machine: PV/TT hint, good captures, killers, counter move,
// remaining quiets, losing captures.
const (
	scorePV           = 1 << 30
	scoreGoodCapture  = 1 << 28
	scoreKiller1      = 1 << 26
	scoreKiller2      = scoreKiller1 - 1
	scoreCounterMove  = 1 << 24
	scoreLosingCapture = -(1 << 28)
)

type scoredMove struct {
	move  board.Move
	score int
}

// MovePicker is a stateful staged enumerator. It consumes a board, the
// PV/TT move hint, the killer pair and counter-move/history tables for
// this node, an include_quiets flag, and a slab partition, and yields
// the node's pseudo-legal moves in staged order.
type MovePicker struct {
	moves     []scoredMove
	index     int
	partition []board.Move
	ts        *ThreadState
}

// NewMovePicker borrows a slab partition, generates board's pseudo-legal
// moves, and scores/stages them. Release must be called exactly once,
// in LIFO order with other pickers active at the same time, when the
// owning node exits.
func NewMovePicker(ts *ThreadState, b board.Board, ply int, ttMove board.Move, includeQuiets bool) *MovePicker {
	var partition = ts.GetNextMoveBufferPartition()
	var count = b.GetPseudoLegalMoves2(partition, len(partition))

	var frame = ts.stack.at(ply)
	var killer1, killer2 = frame.killers[0], frame.killers[1]
	var prevMove board.Move
	if ply > 0 {
		prevMove = ts.stack.at(ply - 1).currentMove
	}
	var counter = ts.heuristics.counterMove(prevMove)

	var mp = &MovePicker{partition: partition, ts: ts}
	mp.moves = make([]scoredMove, 0, count)

	for i := 0; i < count; i++ {
		var m = partition[i]

		if ttMove != nil && ttMove.Present() && m.Equals(ttMove) {
			mp.moves = append(mp.moves, scoredMove{m, scorePV})
			continue
		}

		if m.IsCapture() {
			var see = m.ApproxSEE(b, pieceValues)
			var tiebreak = mvvlva(m) + ts.heuristics.captureHistoryRead(m)
			if see >= 0 {
				mp.moves = append(mp.moves, scoredMove{m, scoreGoodCapture + tiebreak})
			} else {
				mp.moves = append(mp.moves, scoredMove{m, scoreLosingCapture + tiebreak})
			}
			continue
		}

		if !includeQuiets {
			continue
		}

		if killer1 != nil && killer1.Present() && m.Equals(killer1) {
			mp.moves = append(mp.moves, scoredMove{m, scoreKiller1})
			continue
		}
		if killer2 != nil && killer2.Present() && m.Equals(killer2) {
			mp.moves = append(mp.moves, scoredMove{m, scoreKiller2})
			continue
		}
		if counter != nil && counter.Present() && m.Equals(counter) {
			mp.moves = append(mp.moves, scoredMove{m, scoreCounterMove})
			continue
		}

		var quiet = ts.heuristics.historyRead(m) + ts.continuationScore(ply, m)
		mp.moves = append(mp.moves, scoredMove{m, quiet})
	}

	sortScoredMoves(mp.moves)
	return mp
}

// Next returns the next move in staged order, or nil when exhausted.
func (mp *MovePicker) Next() board.Move {
	if mp.index >= len(mp.moves) {
		return nil
	}
	var m = mp.moves[mp.index].move
	mp.index++
	return m
}

// Count reports how many moves this picker staged in total.
func (mp *MovePicker) Count() int { return len(mp.moves) }

// Release returns the slab partition this picker borrowed.
func (mp *MovePicker) Release() {
	mp.ts.ReleaseMoveBufferPartition()
}

func sortScoredMoves(ms []scoredMove) {
	for i := 1; i < len(ms); i++ {
		var j, t = i, ms[i]
		for ; j > 0 && ms[j-1].score < t.score; j-- {
			ms[j] = ms[j-1]
		}
		ms[j] = t
	}
}

// sortPieceValues are the small integer weights MVV-LVA breaks ties with;
// index by pieceIndex (Pawn..King -> 0..5).
var sortPieceValues = [6]int{1, 3, 3, 5, 9, 0}

func mvvlva(m board.Move) int {
	return 8*sortPieceValues[pieceIndex(m.CapturePiece())] - sortPieceValues[pieceIndex(m.MovingPiece())]
}
