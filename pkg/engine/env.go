package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// Telemetry is the counter block exposed alongside MakeMove's result.
// Every field is updated with atomic ops since every worker thread
// shares one instance for the duration of a MakeMove call.
type Telemetry struct {
	Nodes            int64
	TTHits           int64
	NullTried        int64
	NullPruned       int64
	LMRSearches      int64
	LMRResearches    int64
	LMPCount         int64
	CheckExtensions  int64
	LazyEvalSkips    int64
}

func (t *Telemetry) addNode()           { atomic.AddInt64(&t.Nodes, 1) }
func (t *Telemetry) addTTHit()          { atomic.AddInt64(&t.TTHits, 1) }
func (t *Telemetry) addNullTried()      { atomic.AddInt64(&t.NullTried, 1) }
func (t *Telemetry) addNullPruned()     { atomic.AddInt64(&t.NullPruned, 1) }
func (t *Telemetry) addLMRSearch()      { atomic.AddInt64(&t.LMRSearches, 1) }
func (t *Telemetry) addLMRResearch()    { atomic.AddInt64(&t.LMRResearches, 1) }
func (t *Telemetry) addLMP()            { atomic.AddInt64(&t.LMPCount, 1) }
func (t *Telemetry) addCheckExtension() { atomic.AddInt64(&t.CheckExtensions, 1) }
func (t *Telemetry) addLazyEvalSkip()   { atomic.AddInt64(&t.LazyEvalSkips, 1) }

// searchEnv bundles the state genuinely shared between worker threads:
// the transposition table, the cancellation flag, the deadline,
// telemetry, and the read-only options/evaluator every worker consults.
// Everything else (heuristic tables, stack, PV, move slab) lives on
// ThreadState, one instance per worker.
type searchEnv struct {
	tt        *TranspositionTable
	opts      *PlayerOptions
	eval      *Evaluator
	telemetry *Telemetry

	canceled int32 // atomic bool; set once by the winning worker or an external caller
	deadline time.Time
	ctx      context.Context // errgroup.WithContext's derived context; canceled once the winning worker returns errWorkerDone
}

func newSearchEnv(tt *TranspositionTable, opts *PlayerOptions, eval *Evaluator, deadline time.Time, ctx context.Context) *searchEnv {
	return &searchEnv{
		tt:        tt,
		opts:      opts,
		eval:      eval,
		telemetry: &Telemetry{},
		deadline:  deadline,
		ctx:       ctx,
	}
}

func (e *searchEnv) cancel() {
	atomic.StoreInt32(&e.canceled, 1)
}

// timedOut polls the shared cancellation flag, the errgroup-derived
// context (canceled the instant the winning worker returns errWorkerDone
// from its goroutine func), and the monotonic deadline — the suspension conditions workers
// check. Called at the top of Search and QSearch.
func (e *searchEnv) timedOut() bool {
	if atomic.LoadInt32(&e.canceled) != 0 {
		return true
	}
	if e.ctx != nil && e.ctx.Err() != nil {
		return true
	}
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		return true
	}
	return false
}

// errSearchTimeout is the sentinel a worker panics with to unwind every
// in-flight Search/QSearch frame in one shot once timedOut is observed,
// firing from inside quiescence as well as the main search loop.
var errSearchTimeout = errTimeout{}

type errTimeout struct{}

func (errTimeout) Error() string { return "search timeout" }
