package engine

import "github.com/tetrachess/engine/pkg/board"

// nodeType is the Root/PV/NonPV hint threaded through Search, driving
// which reductions and re-search rules apply.
type nodeType int

const (
	nodeNonPV nodeType = iota
	nodePV
	nodeRoot
)

// search is the negamax alpha-beta core. expanded counts check
// extensions taken along this path (a delivers-check extension is only
// granted while it is below 4); nullMoves is 1 in the node directly below
// a null move and 0 everywhere else.
func (ts *ThreadState) search(ply int, nt nodeType, depth int, alpha, beta Score, expanded, nullMoves int, isCutNode bool, pv *PVInfo) (Score, board.Move) {
	var env = ts.env
	var opts = env.opts
	var isRoot = nt == nodeRoot
	var isPV = nt != nodeNonPV

	if env.timedOut() {
		panic(errSearchTimeout)
	}

	var b = ts.Board
	var key = b.HashKey()
	var turn = b.GetTurn()
	var forTeam = board.TeamOf(turn)

	if depth <= 0 {
		if opts.EnableQSearch {
			var score = ts.quiescence(ply, alpha, beta, isPV, pv)
			return score, nil
		}
		var eval = env.eval.Evaluate(ts, opts, b, forTeam, alpha, beta)
		if opts.EnableTranspositionTable {
			env.tt.Save(key, 0, nil, valueDraw, eval, boundExact, isPV)
		}
		return eval, nil
	}

	env.telemetry.addNode()

	// invariant (iv): ss+2 killers are cleared on entry.
	ts.stack.at(ply + 2).killers = [2]board.Move{}

	var ss = ts.stack.at(ply)
	ss.rootDepth = depth

	var ttEntry, ttHit = env.tt.Get(key)
	var ttMove board.Move
	var ttPV = isPV
	if ttHit && opts.EnableTranspositionTable {
		env.telemetry.addTTHit()
		ttMove = ttEntry.Move
		ttPV = ttPV || ttEntry.IsPV
		if !isRoot && !isPV && ttEntry.Depth >= depth {
			var score = valueFromTT(ttEntry.Score, ply)
			switch {
			case ttEntry.Bound == boundExact:
				return clampScore(score, alpha, beta), ttMove
			case ttEntry.Bound&boundLower != 0 && score >= beta:
				return clampScore(score, alpha, beta), ttMove
			case ttEntry.Bound&boundUpper != 0 && score <= alpha:
				return clampScore(score, alpha, beta), ttMove
			}
		}
	}

	var inCheck = b.IsKingInCheck(turn)
	var teamChecked = inCheck || b.IsKingInCheck(board.Teammate(turn))
	ss.inCheck = teamChecked

	var staticEval Score
	var improving, declining bool
	if teamChecked {
		staticEval = ts.stack.at(ply - 2).staticEval
	} else if ttHit && ttEntry.Eval != NoEval && opts.EnableTranspositionTable {
		staticEval = ttEntry.Eval
	} else {
		staticEval = env.eval.Evaluate(ts, opts, b, forTeam, alpha, beta)
		if !ttHit {
			env.tt.Save(key, -1, nil, valueDraw, staticEval, boundExact, isPV)
		}
	}
	ss.staticEval = staticEval

	// move-level pruning (reverse futility, null move) is skipped for the
	// whole team while either partner's king is in check, not just the
	// side to move's own.
	if !teamChecked {
		improving = ply > 2 && ts.stack.at(ply-2).staticEval < staticEval
		declining = ply > 1 && -ts.stack.at(ply-1).staticEval < staticEval
	}

	if opts.EnableFutilityPruning && !isPV && !ttPV && !teamChecked &&
		depth <= 2-boolToInt(improving) &&
		staticEval-150*depth >= beta && staticEval < Mate {
		return beta, nil
	}

	if opts.EnableNullMovePruning && !isRoot && !teamChecked && nullMoves == 0 &&
		!ts.stack.at(ply-1).isNullMove && staticEval >= beta+50 {
		var r = minInt(depth/3+2, depth)
		env.telemetry.addNullTried()
		ss.currentMove = board.NullMove
		ss.isNullMove = true
		b.MakeNullMove()
		var childScore, _ = ts.search(ply+1, nodeNonPV, depth-r, -beta, -beta+1, expanded, 1, !isCutNode, nil)
		b.UndoNullMove()
		ss.isNullMove = false
		var score = -childScore
		if score >= beta && score < Mate {
			env.telemetry.addNullPruned()
			return beta, nil
		}
	}

	if depth >= 9 && (ttMove == nil || !ttMove.Present()) {
		depth -= 1 + boolToInt(isCutNode)
	}

	var pvMove = ttMove
	if pv != nil && pv.BestMove() != nil && pv.BestMove().Present() {
		pvMove = pv.BestMove()
	}

	var mp = NewMovePicker(ts, b, ply, pvMove, true)
	defer mp.Release()

	var prevMove board.Move
	if ply > 0 {
		prevMove = ts.stack.at(ply - 1).currentMove
	}

	var alphaOrig = alpha
	var best = lossIn(ply)
	var bestMove board.Move
	var moveCount = 0
	var quietsTried = 0
	var searched []board.Move
	var failHigh = false

	// mobility/activation counters are threaded incrementally: the mover's
	// own entry is refreshed after each legal move and restored to this
	// node's baseline after undoing it, rather than recomputed from
	// scratch at every Evaluate call.
	var mobilityTracked = opts.EnableMobilityEval || opts.EnablePieceActivation
	var currNActivated, currTotalMoves int
	if mobilityTracked {
		currNActivated = ts.nActivated[turn]
		currTotalMoves = ts.totalMoves[turn]
	}

	for m := mp.Next(); m != nil; m = mp.Next() {
		var capture = m.IsCapture()
		var deliversCheck = m.DeliversCheck(b)
		var quiet = !inCheck && !capture && !deliversCheck

		if opts.EnableLateMovePruning && alpha > -Mate && quiet {
			var q int
			if isPV {
				q = 5 + depth*depth/pickInt(declining, 2, 1)
			} else {
				q = 1 + depth*depth/pickInt(declining, 10, 5)
			}
			if improving {
				q *= 2
			}
			if quietsTried >= q {
				env.telemetry.addLMP()
				continue
			}
		}

		var lmrEligible = depth > 1 && moveCount > 1+boolToInt(isRoot)+boolToInt(isPV) &&
			(!ttPV || !capture || (isCutNode && moveCount > 1))

		var r = 0
		if opts.EnableLateMoveReduction && lmrEligible {
			r = ts.reduction(ply, depth, moveCount, m, alpha, staticEval, quiet, ttPV, isCutNode, declining, improving, inCheck, deliversCheck, isRoot, isPV)
		}
		ss.reduction = r
		var lmrDepth = depth - 1 - r

		if opts.EnableFutilityPruning && !isRoot && !isPV && lmrEligible && capture &&
			lmrDepth < 10 && !inCheck {
			if staticEval+400+291*lmrDepth+pieceValues[m.CapturePiece()] < alpha {
				continue
			}
		}

		b.MakeMove(m)
		if b.IsKingInCheck(turn) {
			b.UndoMove()
			continue
		}
		if result := b.CheckWasLastMoveKingCapture(); result != board.NoResult {
			b.UndoMove()
			env.tt.Save(key, depth, m, valueToTT(beta, ply), staticEval, boundLower, isPV)
			ts.updateStats(ply, m, depth, true, searched, prevMove, teamChecked)
			return beta, m
		}

		moveCount++
		ss.moveCount = moveCount
		ss.currentMove = m
		ss.contHistory = ts.heuristics.continuationTable(teamChecked, capture, m)
		if quiet {
			quietsTried++
		}
		searched = append(searched, m)

		if mobilityTracked {
			env.eval.updateMobilityForPlayer(ts, b, turn)
		}

		var e = 0
		if opts.EnableCheckExtensions {
			if inCheck || (deliversCheck && moveCount < 6 && expanded < 4) {
				e = 1
				env.telemetry.addCheckExtension()
			}
		}

		var childPV = &PVInfo{}
		var score Score

		if lmrEligible && r > 0 {
			env.telemetry.addLMRSearch()
			// Issued twice back-to-back at the identical reduced window;
			// only the second call's result is used. Kept as found rather
			// than collapsed into one call — flagged for review, not fixed.
			ts.search(ply+1, nodeNonPV, depth-1-r+e, -alpha-1, -alpha, expanded+e, 0, true, nil)
			score, _ = ts.search(ply+1, nodeNonPV, depth-1-r+e, -alpha-1, -alpha, expanded+e, 0, true, nil)
			score = -score
			if score > alpha {
				env.telemetry.addLMRResearch()
				score, _ = ts.search(ply+1, nodeNonPV, depth-1+e, -alpha-1, -alpha, expanded+e, 0, !isCutNode, nil)
				score = -score
			}
		} else if !isPV || moveCount > 1 {
			var rr = depth - 1 + e
			if r > 3 {
				rr--
			}
			score, _ = ts.search(ply+1, nodeNonPV, rr, -alpha-1, -alpha, expanded+e, 0, !isCutNode, nil)
			score = -score
		}

		if isPV && (moveCount == 1 || (score > alpha && (isRoot || score < beta))) {
			score, _ = ts.search(ply+1, nodePV, depth-1+e, -beta, -alpha, expanded+e, 0, false, childPV)
			score = -score
		}

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
					failHigh = true
					break
				}
			}
		}
	}

	if moveCount == 0 {
		if inCheck {
			best = lossIn(ply)
		} else {
			best = valueDraw
		}
		best = clampScore(best, alpha, beta)
	}

	var bound = boundUpper
	if failHigh {
		bound = boundLower
	} else if isPV && bestMove != nil {
		bound = boundExact
	}
	env.tt.Save(key, depth, bestMove, valueToTT(best, ply), staticEval, bound, isPV)

	if bestMove != nil && best > alphaOrig {
		ts.updateStats(ply, bestMove, depth, failHigh, searched, prevMove, teamChecked)
	}

	return best, bestMove
}

// pickInt is a small ternary helper used by the late-move-pruning
// threshold formula, which alternates two integer constants on a
// boolean condition.
func pickInt(cond bool, ifTrue, ifFalse int) int {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// reduction computes the late-move-reduction amount r.
func (ts *ThreadState) reduction(ply, depth, moveCount int, m board.Move, alpha, eval Score, quiet, ttPV, isCutNode, declining, improving, inCheck, deliversCheck, isRoot, isPV bool) int {
	var r = 1 + maxInt(0, (depth-5)/3) + moveCount/30

	if quiet {
		r += 1 + depth/8
	}

	var ss0 = ts.stack.at(ply)
	if ss0.killers[0] != nil && ss0.killers[0].Equals(m) {
		r--
	}
	if ss0.killers[1] != nil && ss0.killers[1].Equals(m) {
		r--
	}

	r += minInt(2, absInt(eval-alpha)/350)

	if ttPV {
		r--
	}
	if isCutNode {
		r += 2
	}

	r -= boolToInt(declining) - boolToInt(!improving)
	r -= boolToInt(inCheck)
	r -= boolToInt(deliversCheck)
	r -= boolToInt(isPV)

	if m.IsCapture() && m.ApproxSEE(ts.Board, pieceValues) > 0 {
		r--
	}

	var hist int
	if m.IsCapture() {
		hist = ts.heuristics.captureHistoryRead(m)
	} else {
		hist = ts.heuristics.historyRead(m)
	}
	r += clampScore((hist-4000)/10000, -3, 3)

	var lowerBound = -1
	if isRoot || ply < 2 {
		lowerBound = 0
	}
	if r < lowerBound {
		r = lowerBound
	}
	return r
}
