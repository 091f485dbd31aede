package engine

import "github.com/tetrachess/engine/pkg/board"

const boardN = board.BoardSize // 14, shorthand for the board's side length

const continuationSaturation = 1 << 14

func pieceIndex(p board.PieceType) int { return int(p) - 1 } // Pawn..King -> 0..5

// pieceToHistory is the per-move bonus table keyed by (piece_type, to):
// a 6x14x14 block of saturating signed scores, one of the 2*2*6*14*14
// sub-tables the continuation-history block is flattened into.
type pieceToHistory [6][boardN][boardN]int16

func (h *pieceToHistory) read(piece board.PieceType, to board.Location) int {
	return int(h[pieceIndex(piece)][to.Row][to.Col])
}

func (h *pieceToHistory) add(piece board.PieceType, to board.Location, bonus int) {
	var p = &h[pieceIndex(piece)][to.Row][to.Col]
	*p = int16(saturatingAdd(int(*p), bonus))
}

// saturatingAdd is the gravity-style bounded update: h += bonus -
// h*|bonus|/SAT, clamped to +-SAT. Keeps the table from drifting toward
// saturation under a long run of one-sided updates.
func saturatingAdd(h, bonus int) int {
	h += bonus - h*absInt(bonus)/continuationSaturation
	return clampScore(h, -continuationSaturation, continuationSaturation)
}

// heuristicTables bundles every per-thread move-ordering table: plain
// additive history, capture history, counter moves, and the
// continuation-history block. All are thread-private and allocated once
// per ThreadState.
type heuristicTables struct {
	// [piece_type][from_row][from_col][to_row][to_col]
	history [6][boardN][boardN][boardN][boardN]int32
	// [piece_type][piece_color][captured_type][captured_color][to_row][to_col]
	captureHistory [6][4][6][4][boardN][boardN]int32
	// [from_row][from_col][to_row][to_col]
	counterMoves [boardN][boardN][boardN][boardN]board.Move
	// [in_check][is_capture][prev_piece][prev_to_row][prev_to_col] -> sub-table
	continuation [2][2][6][boardN][boardN]pieceToHistory
}

func (h *heuristicTables) clear() {
	*h = heuristicTables{}
}

func (h *heuristicTables) historyRead(m board.Move) int {
	var f, t = m.From(), m.To()
	return int(h.history[pieceIndex(m.MovingPiece())][f.Row][f.Col][t.Row][t.Col])
}

func (h *heuristicTables) historyAdd(m board.Move, bonus int) {
	var f, t = m.From(), m.To()
	var p = &h.history[pieceIndex(m.MovingPiece())][f.Row][f.Col][t.Row][t.Col]
	*p += int32(bonus)
}

func (h *heuristicTables) captureHistoryRead(m board.Move) int {
	var t = m.To()
	return int(h.captureHistory[pieceIndex(m.MovingPiece())][m.MovingPieceColor()][pieceIndex(m.CapturePiece())][m.CapturePieceColor()][t.Row][t.Col])
}

func (h *heuristicTables) captureHistoryAdd(m board.Move, bonus int) {
	var t = m.To()
	var p = &h.captureHistory[pieceIndex(m.MovingPiece())][m.MovingPieceColor()][pieceIndex(m.CapturePiece())][m.CapturePieceColor()][t.Row][t.Col]
	*p += int32(bonus)
}

func (h *heuristicTables) counterMove(prev board.Move) board.Move {
	if prev == nil || !prev.Present() {
		return nil
	}
	var f, t = prev.From(), prev.To()
	return h.counterMoves[f.Row][f.Col][t.Row][t.Col]
}

func (h *heuristicTables) setCounterMove(prev, reply board.Move) {
	if prev == nil || !prev.Present() {
		return
	}
	var f, t = prev.From(), prev.To()
	h.counterMoves[f.Row][f.Col][t.Row][t.Col] = reply
}

// continuationTable selects the sub-table for a move that was just made
// (the "prev" move from the perspective of whatever node it leads into),
// given whether the mover's team was in check and whether the move was
// a capture. The returned pointer is stashed on the child stack frame so
// descendants can read/update it without re-deriving the index.
func (h *heuristicTables) continuationTable(teamChecked, isCapture bool, prev board.Move) *pieceToHistory {
	if prev == nil || !prev.Present() {
		return nil
	}
	var t = prev.To()
	return &h.continuation[boolToInt(teamChecked)][boolToInt(isCapture)][pieceIndex(prev.MovingPiece())][t.Row][t.Col]
}

// continuationScore sums the continuation-history contribution for move
// m across the moves made at the five preceding plies on the stack (i in
// 1..5), whichever player made them.
func (ts *ThreadState) continuationScore(ply int, m board.Move) int {
	var total = 0
	for i := 1; i <= 5; i++ {
		var frame = ts.stack.at(ply - i)
		if frame.contHistory != nil {
			total += frame.contHistory.read(m.MovingPiece(), m.To())
		}
	}
	return total
}

// updateStats runs once per node that did not fail low: reward the move
// that caused the cutoff (or was best at a fully searched node),
// penalize every other searched sibling (quiet ones in history, captures
// in capture history), and for quiet best moves also update
// killers, the counter-move table and continuation history.
func (ts *ThreadState) updateStats(ply int, bestMove board.Move, depth int, failHigh bool, searched []board.Move, prevMove board.Move, teamChecked bool) {
	var bonus = 1 << uint(clampScore(depth+boolToInt(failHigh), 0, 20))
	var h = &ts.heuristics

	if bestMove.IsCapture() {
		h.captureHistoryAdd(bestMove, bonus)
	} else {
		h.historyAdd(bestMove, bonus)
		h.setCounterMove(prevMove, bestMove)
		ts.updateKiller(ply, bestMove)

		for i := 1; i <= 6; i++ {
			if i > 2 && teamChecked {
				continue
			}
			var frame = ts.stack.at(ply - i)
			if frame.contHistory != nil {
				frame.contHistory.add(bestMove.MovingPiece(), bestMove.To(), bonus)
			}
		}
	}

	for _, m := range searched {
		if m.Equals(bestMove) {
			continue
		}
		if m.IsCapture() {
			h.captureHistoryAdd(m, -bonus)
		} else {
			h.historyAdd(m, -bonus)
		}
	}
}

// updateKiller shifts the killer pair at ply only if move isn't already
// the primary killer.
func (ts *ThreadState) updateKiller(ply int, move board.Move) {
	var frame = ts.stack.at(ply)
	if frame.killers[0] == nil || !frame.killers[0].Equals(move) {
		frame.killers[1] = frame.killers[0]
		frame.killers[0] = move
	}
}
