package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/samegame/sfcsolver/pkg/common"
	"github.com/samegame/sfcsolver/pkg/solver"
)

// Finds the maximum score over every board that can appear in the game.
// Boards are enumerated by generation parameters: the top bit of the rng
// state carries no information, the NMI timing is fixed at its in-game
// value, and illegal boards (regenerated in game) are skipped. After each
// solved board the prune threshold is raised to score-1 so boards tying
// the maximum are still reported.
func main() {
	var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	if err := run(logger); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	var (
		pruneScoreMax = flag.Int("prune", 0,
			"initial prune threshold, raised as solutions are found")
		threads = flag.Int("threads", runtime.NumCPU(), "number of search workers")
		hash    = flag.Int("hash", 1024, "transposition store size in megabytes")
	)
	flag.Parse()

	if *pruneScoreMax < 0 {
		return fmt.Errorf("prune score must not be negative: %v", *pruneScoreMax)
	}

	var s = solver.NewSolver()
	s.Threads = *threads
	s.Hash = *hash

	var prune = *pruneScoreMax
	for rngState := 0; rngState <= 0x7FFF; rngState++ {
		for nmiCounter := 0; nmiCounter <= 0xFF; nmiCounter++ {
			for entropy := 0; entropy <= common.MaxEntropy; entropy++ {
				var param = common.RandomBoardParam{
					RngState:   uint16(rngState),
					NmiCounter: uint8(nmiCounter),
					NmiTiming:  common.NmiTimingDefault,
					Entropy:    entropy,
				}
				var board, legal, rngAfter = param.GenBoard()
				if !legal {
					continue
				}
				logger.Printf("search %v rng_after=0x%04X prune=%v",
					param, rngAfter.State(), prune)
				var res, ok = s.Solve(board, prune)
				if !ok {
					continue
				}
				fmt.Printf("0x%04X\t0x%02X\t%v\t%v\t%v\t%v\n",
					rngState, nmiCounter, param.NmiTiming, entropy,
					res.Score, res.Line())
				if res.Score-1 > prune {
					prune = res.Score - 1
				}
			}
		}
	}
	return nil
}
