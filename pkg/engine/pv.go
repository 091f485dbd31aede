package engine

import "github.com/tetrachess/engine/pkg/board"

// PVInfo is the principal-variation chain: a singly linked list of
// (best_move, child) owned exclusively by one worker. Publishing a
// winning PV is an explicit deep Copy rather than any shared/refcounted
// ownership, so a worker can keep mutating its own working chain after
// another worker's result has been published.
type PVInfo struct {
	bestMove board.Move
	child    *PVInfo
}

// BestMove returns the move at this node of the chain, or nil if none has
// been recorded yet.
func (pv *PVInfo) BestMove() board.Move {
	if pv == nil {
		return nil
	}
	return pv.bestMove
}

// Child returns the continuation of the chain beyond this node.
func (pv *PVInfo) Child() *PVInfo {
	if pv == nil {
		return nil
	}
	return pv.child
}

// SetBestMove records this node's move in the chain; the child link is
// left unchanged.
func (pv *PVInfo) SetBestMove(m board.Move) {
	pv.bestMove = m
}

// SetChild replaces the remainder of the chain.
func (pv *PVInfo) SetChild(child *PVInfo) {
	pv.child = child
}

// Depth walks the chain counting recorded moves. The iterative deepener
// uses this to pick its starting depth for the next MakeMove call.
func (pv *PVInfo) Depth() int {
	var n = 0
	for cur := pv; cur != nil && cur.bestMove != nil && cur.bestMove.Present(); cur = cur.child {
		n++
	}
	return n
}

// Copy deep-copies the chain so the engine's published PV is independent
// of the worker's mutable working copy.
func (pv *PVInfo) Copy() *PVInfo {
	if pv == nil {
		return nil
	}
	return &PVInfo{
		bestMove: pv.bestMove,
		child:    pv.child.Copy(),
	}
}

// Moves flattens the chain into a move slice, root first.
func (pv *PVInfo) Moves() []board.Move {
	var result []board.Move
	for cur := pv; cur != nil && cur.bestMove != nil && cur.bestMove.Present(); cur = cur.child {
		result = append(result, cur.bestMove)
	}
	return result
}

// assign records move as this node's best move and adopts child's chain
// as the continuation — the per-node PV update used throughout Search/
// QSearch whenever alpha improves.
func (pv *PVInfo) assign(move board.Move, child *PVInfo) {
	pv.bestMove = move
	pv.child = child
}
