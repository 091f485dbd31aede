package engine

import "github.com/tetrachess/engine/pkg/board"

// rootStats tracks a running average of root scores (weighted toward the
// newest) and the spread of scores around it across the completed depths
// of one thread's iterative deepening, feeding the aspiration window's
// initial half-width. It lives on ThreadState, which MakeMove builds
// fresh for every call, so nothing carries over from one MakeMove call
// to the next. Reset whenever the observed board key differs from the
// last one.
type rootStats struct {
	lastKey int64
	average Score
	seen    bool
	nobs    int
	sumSq   float64
}

func (s *rootStats) reset(key int64) {
	*s = rootStats{lastKey: key}
}

func (s *rootStats) observe(key int64, score Score) {
	if key != s.lastKey {
		s.reset(key)
	}
	if !s.seen {
		s.average = score
		s.seen = true
	} else {
		s.average = (2*score + s.average) / 3
	}
	s.nobs++
	var d = float64(score) - float64(s.average)
	s.sumSq += d * d
}

func (s *rootStats) stdev() float64 {
	if s.nobs < 2 {
		return 0
	}
	return sqrt(s.sumSq / float64(s.nobs-1))
}

// searchResult is what one depth iteration of the driver produces: a
// score, the best move at the root, the PV chain behind it, and the
// depth actually completed.
type searchResult struct {
	score Score
	move  board.Move
	pv    *PVInfo
	depth int
}

// maxAspirationFails is the re-search budget per depth before the driver
// falls back to an infinite window.
const maxAspirationFails = 5

// runIterativeDeepening is the per-thread driver: it grows depth from
// one past the PV's current length (capped at maxDepth) up to maxDepth,
// optionally aspirating the
// window around the running average root score, and returns the
// deepest result completed before cancellation unwinds the stack via
// errSearchTimeout.
func (ts *ThreadState) runIterativeDeepening(maxDepth int) searchResult {
	var best searchResult
	var stats = &ts.rootStats
	var key = ts.Board.HashKey()
	if key != stats.lastKey {
		stats.reset(key)
	}

	var startDepth = ts.PV.Depth() + 1
	if maxDepth > 0 && startDepth > maxDepth {
		startDepth = maxDepth
	}
	if startDepth < 1 {
		startDepth = 1
	}

	for depth := startDepth; maxDepth == 0 || depth <= maxDepth; depth++ {
		if depth > maxPly {
			break
		}

		var pv = &PVInfo{}
		var score, move, timedOut = ts.searchDepth(depth, stats, pv)
		if timedOut {
			break
		}

		best = searchResult{score: score, move: move, pv: pv, depth: depth}
		stats.observe(key, score)
		ts.PV = pv

		if isMateScore(score) {
			break
		}
	}

	return best
}

// searchDepth runs one iterative-deepening depth and recovers
// errSearchTimeout at this boundary: a timeout discards only the
// in-progress depth, leaving every previously completed depth's result
// (held by the caller's `best`) intact.
func (ts *ThreadState) searchDepth(depth int, stats *rootStats, pv *PVInfo) (score Score, move board.Move, timedOut bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errTimeout); ok {
				timedOut = true
				return
			}
			panic(r)
		}
	}()
	score, move = ts.searchRootAspirated(depth, stats, pv)
	return score, move, false
}

// searchRootAspirated runs one depth with an adaptive aspiration window:
// narrow window seeded from the running average and its standard
// deviation, widened geometrically on fail-high/fail-low, and replaced
// with the infinite window after maxAspirationFails attempts.
func (ts *ThreadState) searchRootAspirated(depth int, stats *rootStats, pv *PVInfo) (Score, board.Move) {
	if !ts.env.opts.EnableAspirationWindow || depth < 5 || !stats.seen {
		return ts.search(0, nodeRoot, depth, -valueInfinity, valueInfinity, 0, 0, false, pv)
	}

	var prev = stats.average
	var delta = Score(50 + int(stats.stdev()))
	var alpha = maxInt(-valueInfinity, prev-delta)
	var beta = minInt(valueInfinity, prev+delta)

	for fails := 0; ; fails++ {
		if fails >= maxAspirationFails {
			return ts.search(0, nodeRoot, depth, -valueInfinity, valueInfinity, 0, 0, false, pv)
		}

		var score, move = ts.search(0, nodeRoot, depth, alpha, beta, 0, 0, false, pv)

		if score <= alpha {
			beta = (alpha + beta) / 2
			alpha = maxInt(score-delta, -Mate)
		} else if score >= beta {
			beta = minInt(score+delta, Mate)
		} else {
			return score, move
		}

		delta += delta / 3
	}
}
