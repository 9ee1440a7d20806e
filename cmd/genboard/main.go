package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/samegame/sfcsolver/pkg/common"
	"github.com/samegame/sfcsolver/pkg/solver"
)

func main() {
	var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	if err := run(logger); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	flag.Parse()
	if flag.NArg() != 4 {
		return fmt.Errorf("usage: genboard <rng-state> <nmi-counter> <nmi-timing> <entropy>")
	}

	var param, err = common.ParseRandomBoardParam(
		flag.Arg(0) + "," + flag.Arg(1) + "," + flag.Arg(2) + "," + flag.Arg(3))
	if err != nil {
		return err
	}

	var board, legal, rngAfter = param.GenBoard()
	if !legal {
		logger.Println("board would be regenerated in game")
	}

	logger.Printf("rng after: 0x%04X", rngAfter.State())
	var counts = ""
	for piece := common.PieceMin; piece <= common.PieceMax; piece++ {
		if piece != common.PieceMin {
			counts += ", "
		}
		counts += strconv.Itoa(board.CountByPiece(piece))
	}
	logger.Printf("piece counts: [%v]", counts)
	logger.Println("gain upper bound:", solver.GainUpperBound(solver.SFCRules{}, &board))

	fmt.Print(board.String())
	return nil
}
