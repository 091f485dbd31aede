package engine

import "github.com/tetrachess/engine/pkg/board"

// Move-buffer slab sizing: each node borrows the next partition of a
// per-thread slab instead of heap-allocating a move list. Overflow is a
// fatal engine bug.
const (
	bufferPartitionSize = 300
	bufferNumPartitions = 200
)

// moveSlab is a stack-discipline allocator: partitions are handed out
// and released in strict LIFO order, one per active node.
type moveSlab struct {
	buf   []board.Move
	top   int // next free partition index, in units of bufferPartitionSize
}

func newMoveSlab() *moveSlab {
	return &moveSlab{
		buf: make([]board.Move, bufferPartitionSize*bufferNumPartitions),
	}
}

// acquire borrows the next partition. Exhausting the slab is an
// invariant violation: the engine aborts rather than silently
// allocating, since that would mask a real bug (unbounded recursion, a
// leaked partition).
func (s *moveSlab) acquire() []board.Move {
	if s.top >= bufferNumPartitions {
		panic("move buffer slab exhausted: too many concurrent partitions")
	}
	var start = s.top * bufferPartitionSize
	s.top++
	return s.buf[start : start+bufferPartitionSize]
}

// release returns the most recently acquired partition. Partitions must
// be released in LIFO order; releasing out of order is also an invariant
// violation.
func (s *moveSlab) release() {
	if s.top <= 0 {
		panic("move buffer slab underflow")
	}
	s.top--
}

// ThreadState is the per-worker mutable state: created per MakeMove
// call, destroyed on return, and never shared with another worker — the
// only cross-thread shared state is the transposition table and the
// cancellation flag.
type ThreadState struct {
	Board board.Board
	PV    *PVInfo
	env   *searchEnv

	heuristics heuristicTables
	slab       *moveSlab

	// Mobility bookkeeping threaded through the evaluator: seeded for all
	// four colors once per root position, then refreshed for the mover
	// only after each legal move in the search loops, rather than
	// recomputed inline by every call to Evaluate.
	nActivated [4]int
	totalMoves [4]int
	nThreats   [4]int

	rootDepth int
	stack     *searchStack
	rootStats rootStats
}

// NewThreadState wraps b (each worker owns an independent board copy)
// with a fresh, zeroed set of heuristic tables, stack, and move slab;
// one instance is built per MakeMove call and discarded on return. The
// mobility/activation counters are seeded once here (ResetMobilityScores)
// rather than recomputed by every call to Evaluate; the search loop
// threads further updates incrementally through MakeMove/UndoMove.
func NewThreadState(b board.Board, pv *PVInfo, env *searchEnv) *ThreadState {
	var ts = &ThreadState{
		Board: b,
		PV:    pv,
		env:   env,
		slab:  newMoveSlab(),
		stack: newSearchStack(),
	}
	ts.heuristics.clear()
	env.eval.resetMobilityScores(ts, env.opts, b)
	return ts
}

// GetNextMoveBufferPartition borrows the next move-buffer partition for a
// node about to generate pseudo-legal moves.
func (ts *ThreadState) GetNextMoveBufferPartition() []board.Move {
	return ts.slab.acquire()
}

// ReleaseMoveBufferPartition returns the most recently acquired partition
// when the owning node exits.
func (ts *ThreadState) ReleaseMoveBufferPartition() {
	ts.slab.release()
}

// ResetHistoryHeuristic clears every heuristic table, used between
// unrelated searches (e.g. a fresh game) rather than between iterative-
// deepening iterations within one MakeMove call.
func (ts *ThreadState) ResetHistoryHeuristic() {
	ts.heuristics.clear()
}
