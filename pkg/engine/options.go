package engine

import "github.com/tetrachess/engine/pkg/board"

// PlayerOptions is the engine's configuration surface: a flat struct of
// bools/ints/enum bound by a caller (UCI-like protocol, CLI, test) to
// whatever knobs it wants to expose. The core never loads this from a
// file or parses flags itself — that belongs one layer up, out of scope
// here.
type PlayerOptions struct {
	// search
	Pvs                    bool
	EnableTranspositionTable bool
	EnableCheckExtensions  bool
	EnableQSearch          bool
	EnableAspirationWindow bool
	EnableProbcut          bool

	// move ordering
	EnableMoveOrder            bool
	EnableMoveOrderChecks      bool
	EnableHistoryHeuristic     bool
	EnableKillers              bool
	EnableCounterMoveHeuristic bool

	// evaluation
	EnablePieceActivation   bool
	EnableKingSafety        bool
	EnablePawnShield        bool
	EnableAttackingKingZone bool
	EnableMobilityEval      bool
	EnablePieceImbalance    bool
	EnableLazyEval          bool
	EnablePieceSquareTable  bool
	EnableKnightBonus       bool
	EngineTeam              board.Team

	// pruning / reduction
	EnableFutilityPruning   bool
	EnableLateMoveReduction bool
	EnableLateMovePruning   bool
	EnableNullMovePruning   bool

	// multithreading
	EnableMultithreading bool
	NumThreads           int

	TranspositionTableSize int // number of entries
	MaxSearchDepth         int // 0 means unlimited (bounded by maxPly)
}

const DefaultTranspositionTableSize = 2_000_000

// NewPlayerOptions returns every heuristic enabled and multithreading on.
func NewPlayerOptions() PlayerOptions {
	return PlayerOptions{
		Pvs:                        true,
		EnableTranspositionTable:   true,
		EnableCheckExtensions:      true,
		EnableQSearch:              true,
		EnableAspirationWindow:     true,
		EnableProbcut:              true,
		EnableMoveOrder:            true,
		EnableMoveOrderChecks:      true,
		EnableHistoryHeuristic:     true,
		EnableKillers:              true,
		EnableCounterMoveHeuristic: true,
		EnablePieceActivation:      true,
		EnableKingSafety:           true,
		EnablePawnShield:           true,
		EnableAttackingKingZone:    true,
		EnableMobilityEval:         true,
		EnablePieceImbalance:       true,
		EnableLazyEval:             true,
		EnablePieceSquareTable:     true,
		EnableKnightBonus:          true,
		EngineTeam:                 board.NoTeam,
		EnableFutilityPruning:      true,
		EnableLateMoveReduction:    true,
		EnableLateMovePruning:      true,
		EnableNullMovePruning:      true,
		EnableMultithreading:       true,
		NumThreads:                 8,
		TranspositionTableSize:     DefaultTranspositionTableSize,
	}
}
