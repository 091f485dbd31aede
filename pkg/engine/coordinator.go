package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tetrachess/engine/pkg/board"
)

// MakeMoveResult is what the coordinator hands back: the score from the
// side to move's perspective, the chosen move (nil if the root had none,
// i.e. game over, or if no worker completed depth 1 before cancellation,
// in which case the whole result is zero-valued apart from Telemetry),
// the depth the winning worker reached, and the
// shared telemetry counters accumulated across every worker.
type MakeMoveResult struct {
	Score     Score
	Move      board.Move
	Depth     int
	Telemetry Telemetry
}

// errWorkerDone is returned by a worker's errgroup goroutine func once it
// has published a result, purely to make errgroup cancel the shared
// context for every other worker. g.Wait's return value is discarded,
// so it never surfaces past MakeMove.
type errWorkerDoneType struct{}

func (errWorkerDoneType) Error() string { return "worker done" }

var errWorkerDone = errWorkerDoneType{}

// runSafely recovers the errSearchTimeout panic every worker uses to
// unwind Search/QSearch once cancellation is observed, converting it
// back into a normal return instead of letting it cross the goroutine
// boundary. Any other panic is a genuine invariant violation and is left
// to propagate and crash the process.
func runSafely(f func()) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errTimeout); ok {
				return
			}
			panic(r)
		}
	}()
	f()
}

// MakeMove is the coordinator entry point: it spins up NumThreads
// workers, each cloning the board and running its own iterative-
// deepening driver over the shared transposition table, accepts the
// first worker to finish a non-empty result, and cancels the rest.
//
// cloneBoard must return a fresh independent copy of the position to
// search, one per call, so each worker may MakeMove/UndoMove without
// racing its siblings (each thread owns an independent board copy) and
// without ever touching whatever board object the caller holds onto
// afterward.
func MakeMove(
	cloneBoard func() board.Board,
	publishedPV *PVInfo,
	opts PlayerOptions,
	tt *TranspositionTable,
	eval *Evaluator,
	deadline time.Time,
	maxDepth int,
) MakeMoveResult {
	var numThreads = opts.NumThreads
	if !opts.EnableMultithreading || numThreads < 1 {
		numThreads = 1
	}

	var g, ctx = errgroup.WithContext(context.Background())
	var env = newSearchEnv(tt, &opts, eval, deadline, ctx)

	var mu sync.Mutex
	var result MakeMoveResult
	var haveResult bool

	for i := 0; i < numThreads; i++ {
		// every worker searches its own clone (each thread owns an
		// independent board copy) — a mid-depth timeout unwinds via panic
		// without matching UndoMove calls, which must never touch the
		// caller's own board object.
		var workerBoard = cloneBoard()
		var workerPV = publishedPV.Copy()

		g.Go(func() error {
			var done bool
			runSafely(func() {
				var ts = NewThreadState(workerBoard, workerPV, env)
				var r = ts.runIterativeDeepening(maxDepth)
				if r.depth == 0 {
					// cancelled before completing even depth 1: no result
					// to publish, not even a mate/stalemate score.
					return
				}

				mu.Lock()
				defer mu.Unlock()
				if !haveResult {
					haveResult = true
					done = true
					env.cancel()
					result = MakeMoveResult{
						Score: r.score,
						Move:  r.move,
						Depth: r.depth,
					}
					publishedPV.SetBestMove(r.pv.BestMove())
					publishedPV.SetChild(r.pv.Child().Copy())
				}
			})
			if done {
				// cancels ctx for every other worker; errgroup discards
				// this error once the first goroutine returns one.
				return errWorkerDone
			}
			return nil
		})
	}

	g.Wait()
	env.cancel()
	result.Telemetry = *env.telemetry
	return result
}
