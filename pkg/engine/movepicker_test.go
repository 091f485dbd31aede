package engine

import (
	"testing"
	"time"

	"github.com/tetrachess/engine/pkg/board"
)

var zeroTime time.Time

// TestMovePickerYieldsCaptureBeforeQuiet checks the staged order holds
// for the simplest case: with no TT hint, no killers and no counter
// move recorded, a capture must still be yielded ahead of a plain quiet
// move.
func TestMovePickerYieldsCaptureBeforeQuiet(t *testing.T) {
	var kings = [4]board.Location{
		board.Red:    {Row: 5, Col: 5},
		board.Blue:   {Row: 5, Col: 6},
		board.Yellow: {Row: 12, Col: 12},
		board.Green:  {Row: 0, Col: 13},
	}
	var b = newFakeBoard(board.Red, kings, [4]bool{true, true, true, true})
	var ts = NewThreadState(b, &PVInfo{}, newSearchEnv(NewTranspositionTable(1024), &PlayerOptions{}, NewEvaluator(), zeroTime, nil))

	var mp = NewMovePicker(ts, b, 0, nil, true)
	defer mp.Release()

	var first = mp.Next()
	if first == nil || !first.IsCapture() {
		t.Fatalf("expected the capture to be staged first, got %+v", first)
	}
}

// TestMovePickerHonorsTTMove checks the PV/TT hint always comes first,
// even when it isn't a capture.
func TestMovePickerHonorsTTMove(t *testing.T) {
	var kings = [4]board.Location{
		board.Red:    {Row: 5, Col: 5},
		board.Blue:   {Row: 8, Col: 9},
		board.Yellow: {Row: 12, Col: 12},
		board.Green:  {Row: 0, Col: 13},
	}
	var b = newFakeBoard(board.Red, kings, [4]bool{true, true, true, true})
	var ts = NewThreadState(b, &PVInfo{}, newSearchEnv(NewTranspositionTable(1024), &PlayerOptions{}, NewEvaluator(), zeroTime, nil))

	var hint = fakeMove{from: board.Location{Row: 5, Col: 5}, to: board.Location{Row: 6, Col: 6}, mover: board.Red}
	var mp = NewMovePicker(ts, b, 0, hint, true)
	defer mp.Release()

	var first = mp.Next()
	if first == nil || !first.Equals(hint) {
		t.Fatalf("expected the TT move to be staged first, got %+v", first)
	}
}
