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

// defaultBoard is the built-in puzzle instance, used when no board file is
// given on the command line.
const defaultBoard = `1......2
155....2
111.4..2
12144..1
12133.51
12135551
`

func main() {
	var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

	logger.Println("solve",
		"RuntimeVersion", runtime.Version(),
		"NumCPU", runtime.NumCPU(),
	)

	if err := run(logger); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	var (
		pruneScoreMax = flag.Int("prune", 0,
			"prune nodes whose final score cannot exceed this value")
		threads = flag.Int("threads", runtime.NumCPU(), "number of search workers")
		hash    = flag.Int("hash", 1024, "transposition store size in megabytes")
	)
	flag.Parse()

	if *pruneScoreMax < 0 {
		return fmt.Errorf("prune score must not be negative: %v", *pruneScoreMax)
	}
	if *threads < 1 {
		return fmt.Errorf("threads must be positive: %v", *threads)
	}
	if *hash < 1 {
		return fmt.Errorf("hash must be positive: %v", *hash)
	}

	var boardText = defaultBoard
	if flag.NArg() > 0 {
		var data, err = os.ReadFile(flag.Arg(0))
		if err != nil {
			return fmt.Errorf("read board file: %w", err)
		}
		boardText = string(data)
	}
	var board, err = common.NewPositionFromString(boardText)
	if err != nil {
		return fmt.Errorf("parse board: %w", err)
	}

	var s = solver.NewSolver()
	s.Threads = *threads
	s.Hash = *hash
	s.Logger = logger

	var res, ok = s.Solve(board, *pruneScoreMax)
	logger.Println("nodes:", res.Nodes)
	if !ok {
		logger.Println("NO SOLUTION")
		return nil
	}
	fmt.Printf("%v\t%v\n", res.Score, res.Line())
	return nil
}
