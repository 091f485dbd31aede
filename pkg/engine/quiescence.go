package engine

import "github.com/tetrachess/engine/pkg/board"

// quiescence is the stand-pat capture search. ply indexes the shared
// stack so the move picker's continuation-history and killer lookups
// still work at quiescence depth (quiescence itself stores neither); pv receives the line found below this node, mirroring
// how Search threads a PVInfo down through recursive calls.
func (ts *ThreadState) quiescence(ply int, alpha, beta Score, isPV bool, pv *PVInfo) Score {
	var env = ts.env
	if env.timedOut() {
		panic(errSearchTimeout)
	}
	env.telemetry.addNode()

	var b = ts.Board
	var key = b.HashKey()
	var turn = b.GetTurn()
	var inCheck = b.IsKingInCheck(turn)
	var forTeam = board.TeamOf(turn)

	var ttEntry, ttHit = env.tt.Get(key)
	var ttMove board.Move
	if ttHit {
		ttMove = ttEntry.Move
		if env.opts.EnableTranspositionTable {
			env.telemetry.addTTHit()
			if !isPV {
				var score = valueFromTT(ttEntry.Score, ply)
				switch {
				case ttEntry.Bound == boundExact:
					return score
				case ttEntry.Bound&boundLower != 0 && score >= beta:
					return score
				case ttEntry.Bound&boundUpper != 0 && score <= alpha:
					return score
				}
			}
		}
	}

	var best Score
	var futilityBase Score
	if !inCheck {
		if ttHit && ttEntry.Eval != NoEval && env.opts.EnableTranspositionTable {
			best = ttEntry.Eval
		} else {
			best = env.eval.Evaluate(ts, env.opts, b, forTeam, alpha, beta)
		}
		if best >= beta {
			env.tt.Save(key, 0, nil, valueToTT(best, ply), best, boundLower, isPV)
			return best
		}
		if best+pieceValues[board.Queen] < alpha {
			return best
		}
		if best > alpha {
			alpha = best
		}
		futilityBase = best
	} else {
		best = lossIn(ply)
	}

	var mp = NewMovePicker(ts, b, ply, ttMove, inCheck)
	defer mp.Release()

	var moveCount = 0
	var quietCheckEvasions = 0
	var bestMove board.Move

	var mobilityTracked = env.opts.EnableMobilityEval || env.opts.EnablePieceActivation
	var currNActivated, currTotalMoves int
	if mobilityTracked {
		currNActivated = ts.nActivated[turn]
		currTotalMoves = ts.totalMoves[turn]
	}

	for m := mp.Next(); m != nil; m = mp.Next() {
		if !inCheck {
			if !m.IsCapture() {
				continue
			}
			var captured = m.CapturePiece()
			if captured != board.Queen && m.MovingPiece() != board.Pawn {
				if m.ApproxSEE(b, pieceValues) < 0 {
					continue
				}
			}
		}

		var deliversCheck = m.DeliversCheck(b)
		moveCount++

		if best > -Mate {
			if (!deliversCheck && moveCount > 2) || quietCheckEvasions > 1 {
				continue
			}
			if m.IsCapture() && !deliversCheck {
				if futilityBase+pieceValues[m.CapturePiece()] < alpha {
					continue
				}
			}
		}
		if !m.IsCapture() && inCheck {
			quietCheckEvasions++
		}

		b.MakeMove(m)
		if b.IsKingInCheck(turn) {
			b.UndoMove()
			continue
		}
		if result := b.CheckWasLastMoveKingCapture(); result != board.NoResult {
			b.UndoMove()
			env.tt.Save(key, 0, m, valueToTT(beta, ply), best, boundLower, isPV)
			return beta
		}

		if mobilityTracked {
			env.eval.updateMobilityForPlayer(ts, b, turn)
		}

		var childPV = &PVInfo{}
		var score = -ts.quiescence(ply+1, -beta, -alpha, isPV, childPV)
		b.UndoMove()
		if mobilityTracked {
			ts.nActivated[turn] = currNActivated
			ts.totalMoves[turn] = currTotalMoves
		}

		if score > best {
			best = score
			bestMove = m
			if score > alpha {
				alpha = score
				if pv != nil {
					pv.assign(m, childPV)
				}
				if score >= beta {
					break
				}
			}
		}
	}

	if inCheck && moveCount == 0 {
		best = lossIn(ply)
	}

	var bound = boundUpper
	if best >= beta {
		bound = boundLower
	} else if isPV && bestMove != nil {
		bound = boundExact
	}
	env.tt.Save(key, 0, bestMove, valueToTT(best, ply), best, bound, isPV)
	return best
}
