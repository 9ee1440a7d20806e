package common

import (
	"fmt"
	"strconv"
	"strings"
)

// The in-game board generator regenerates any board where a single piece
// kind occupies at least half of the cells.
const maxPiecesPerKind = SquareCount / 2

const MaxEntropy = 4

// NmiTimingDefault is how many pieces the game normally generates before
// the NMI counter ticks during board setup.
const NmiTimingDefault = 40

// GameRng reproduces the game's 16-bit shift register generator. The top
// bit of the state is discarded by the update and carries no information.
type GameRng struct {
	state uint16
}

func NewGameRng(state uint16) GameRng {
	return GameRng{state: state}
}

func (r *GameRng) State() uint16 {
	return r.state
}

// Next updates the state and returns a byte. The NMI counter is mixed into
// the feedback, so the stream depends on when the counter ticks.
func (r *GameRng) Next(nmiCounter uint8) uint8 {
	var bit = ((r.state >> 14) ^ r.state) & 1
	r.state = r.state ^ ((r.state << 8) | uint16(nmiCounter))
	r.state = (r.state << 1) | bit
	return uint8(r.state ^ (r.state >> 8))
}

// NextPiece maps a generator byte onto a piece kind. The entropy value
// 0..MaxEntropy comes from the main loop counter and shifts the bucket
// boundaries slightly.
func (r *GameRng) NextPiece(nmiCounter uint8, entropy int) int {
	var v = r.Next(nmiCounter)
	return PieceMin + int((uint32(PieceMax)*uint32(v)+uint32(entropy))>>8)
}

// RandomBoardParam identifies one in-game board: the generator state, the
// NMI counter at generation start, after how many generated pieces the
// counter ticks, and the main loop entropy.
type RandomBoardParam struct {
	RngState   uint16
	NmiCounter uint8
	NmiTiming  int
	Entropy    int
}

// GenBoard generates the board for the parameters. legal reports whether
// the board can actually appear in the game or would be regenerated.
func (param RandomBoardParam) GenBoard() (p Position, legal bool, rngAfter GameRng) {
	var rng = NewGameRng(param.RngState)

	// Pieces are generated row-major, bottom row first.
	var pieces [SquareCount]int
	for i := range pieces {
		var counter = param.NmiCounter
		if i >= param.NmiTiming {
			counter++
		}
		pieces[i] = rng.NextPiece(counter, param.Entropy)
	}

	for row := 0; row < BoardHeight; row++ {
		for col := 0; col < BoardWidth; col++ {
			var sq = MakeSquare(col, row)
			p.Planes[pieces[BoardWidth*row+col]-1] |= 1 << sq
		}
	}
	p.Occupied = BoardMask
	p.Key = p.computeKey()

	legal = true
	for piece := PieceMin; piece <= PieceMax; piece++ {
		if p.CountByPiece(piece) >= maxPiecesPerKind {
			legal = false
		}
	}
	return p, legal, rng
}

func (param RandomBoardParam) String() string {
	return fmt.Sprintf("0x%04X,0x%02X,%v,%v",
		param.RngState, param.NmiCounter, param.NmiTiming, param.Entropy)
}

func ParseRandomBoardParam(s string) (RandomBoardParam, error) {
	var fields = strings.Split(s, ",")
	if len(fields) != 4 {
		return RandomBoardParam{}, fmt.Errorf("board param must have 4 fields: %v", s)
	}
	var rngState, errState = strconv.ParseUint(fields[0], 0, 16)
	var nmiCounter, errCounter = strconv.ParseUint(fields[1], 0, 8)
	var nmiTiming, errTiming = strconv.Atoi(fields[2])
	var entropy, errEntropy = strconv.Atoi(fields[3])
	if errState != nil || errCounter != nil || errTiming != nil || errEntropy != nil {
		return RandomBoardParam{}, fmt.Errorf("parse board param failed %v", s)
	}
	if nmiTiming < 0 || nmiTiming > SquareCount {
		return RandomBoardParam{}, fmt.Errorf("nmi timing out of range: %v", nmiTiming)
	}
	if entropy < 0 || entropy > MaxEntropy {
		return RandomBoardParam{}, fmt.Errorf("entropy out of range: %v", entropy)
	}
	return RandomBoardParam{
		RngState:   uint16(rngState),
		NmiCounter: uint8(nmiCounter),
		NmiTiming:  nmiTiming,
		Entropy:    entropy,
	}, nil
}
