package main

import (
	"log"
	"os"
	"runtime"
	"time"

	"github.com/tetrachess/engine/pkg/board"
	"github.com/tetrachess/engine/pkg/engine"
)

// cmd/search is not a UCI/CLI protocol (that, like board representation,
// is out of scope) — it is just enough wiring to build a Player, hand it
// a board, and print what MakeMove returns.
func main() {
	var logger = log.New(os.Stderr, "", log.LstdFlags)

	var opts = engine.NewPlayerOptions()
	opts.NumThreads = runtime.NumCPU()

	var p = engine.NewPlayer(opts)
	var root = newDemoBoard()

	logger.Println("searching", "turn", root.GetTurn(), "threads", opts.NumThreads)

	var result = p.MakeMove(root.clone, 2*time.Second, 0)

	logger.Println("bestMove", formatMove(result.Move),
		"score", result.Score,
		"depth", result.Depth,
		"nodes", result.Telemetry.Nodes,
		"ttHits", result.Telemetry.TTHits,
	)

	logger.Println("pv", formatPV(p.PV()))
}

func formatMove(m board.Move) string {
	if m == nil || !m.Present() {
		return "(none)"
	}
	return formatLocation(m.From()) + "-" + formatLocation(m.To())
}

func formatPV(moves []board.Move) string {
	var s string
	for i, m := range moves {
		if i > 0 {
			s += " "
		}
		s += formatMove(m)
	}
	return s
}

func formatLocation(loc board.Location) string {
	return string(rune('a'+loc.Col)) + string(rune('0'+loc.Row/10)) + string(rune('0'+loc.Row%10))
}
