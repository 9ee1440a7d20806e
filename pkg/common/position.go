package common

import (
	"fmt"
	"math/rand"
	"strings"
)

const charBlank = '.'

var pieceSquareKey [PieceMax * SquareCount]uint64

func init() {
	initKeys()
}

func initKeys() {
	var r = rand.New(rand.NewSource(0))
	for i := range pieceSquareKey {
		pieceSquareKey[i] = r.Uint64()
	}
}

func PieceSquareKey(piece, sq int) uint64 {
	return pieceSquareKey[(piece-1)*SquareCount+sq]
}

// NewPositionFromString parses a board: BoardHeight lines of BoardWidth
// characters, top row first, '.' for empty cells and '1'..'5' for pieces.
// Any cell layout is accepted; gravity and compaction are restored by the
// first move, not assumed on input.
func NewPositionFromString(s string) (Position, error) {
	var lines = strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != BoardHeight {
		return Position{}, fmt.Errorf("board must have %v lines, got %v",
			BoardHeight, len(lines))
	}

	var p Position
	for i, line := range lines {
		if len(line) != BoardWidth {
			return Position{}, fmt.Errorf("board line %v must have %v cells: %v",
				i+1, BoardWidth, line)
		}
		var row = BoardHeight - 1 - i
		for col := 0; col < BoardWidth; col++ {
			var ch = line[col]
			if ch == charBlank {
				continue
			}
			if ch < '1' || ch > '0'+PieceMax {
				return Position{}, fmt.Errorf("bad cell %v: %c",
					SquareName(MakeSquare(col, row)), ch)
			}
			var sq = MakeSquare(col, row)
			p.Planes[ch-'1'] |= 1 << sq
			p.Occupied |= 1 << sq
		}
	}
	p.Key = p.computeKey()
	return p, nil
}

func (p *Position) String() string {
	var sb strings.Builder
	for row := BoardHeight - 1; row >= 0; row-- {
		for col := 0; col < BoardWidth; col++ {
			var piece = p.Get(MakeSquare(col, row))
			if piece == Empty {
				sb.WriteByte(charBlank)
			} else {
				sb.WriteByte(byte('0' + piece))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Get returns the piece at sq, or Empty.
func (p *Position) Get(sq int) int {
	if p.Occupied&(1<<sq) == 0 {
		return Empty
	}
	for i := range p.Planes {
		if p.Planes[i]&(1<<sq) != 0 {
			return PieceMin + i
		}
	}
	return Empty
}

func (p *Position) IsEmpty() bool {
	return p.Occupied == 0
}

func (p *Position) CountByPiece(piece int) int {
	return PopCount(p.Planes[piece-1])
}

func (p *Position) CountTotal() int {
	return PopCount(p.Occupied)
}

// HasMoves reports whether any group of size >= 2 remains: some plane
// overlaps a one-cell shift of itself.
func (p *Position) HasMoves() bool {
	for i := range p.Planes {
		var b = p.Planes[i]
		if b&Down(b) != 0 || b&Left(b) != 0 {
			return true
		}
	}
	return false
}

// GenerateMoves fills ml with one move per distinct group of size >= 2.
// Order is deterministic: piece kind ascending, then the lowest cell of
// each remaining component. ml must have capacity MaxMoves.
func (p *Position) GenerateMoves(ml []Move) []Move {
	var count = 0
	for i := range p.Planes {
		var plane = p.Planes[i]
		for rest := plane; rest != 0; {
			var group = FloodFill(plane, rest&-rest)
			rest &^= group
			if MoreThanOne(group) {
				ml[count] = Move{Piece: PieceMin + i, Mask: group}
				count++
			}
		}
	}
	return ml[:count]
}

// MoveFromSquare builds the move erasing the group that contains sq.
func (p *Position) MoveFromSquare(sq int) (Move, error) {
	var piece = p.Get(sq)
	if piece == Empty {
		return Move{}, fmt.Errorf("no piece at %v", SquareName(sq))
	}
	var group = FloodFill(p.Planes[piece-1], 1<<sq)
	if !MoreThanOne(group) {
		return Move{}, fmt.Errorf("no group of size >= 2 at %v", SquareName(sq))
	}
	return Move{Piece: piece, Mask: group}, nil
}

// MakeMove erases the move's group, applies gravity within each column and
// compacts empty columns to the left, writing the result into child.
// The receiver is not modified; child must not alias sibling positions.
// A move whose mask is empty or not part of the matching plane is a bug in
// the caller, not a runtime condition, and panics.
func (p *Position) MakeMove(move Move, child *Position) {
	if move.Mask == 0 || move.Mask&^p.Planes[move.Piece-1] != 0 {
		panic(fmt.Sprintf("illegal move %v on board\n%v", move, p))
	}

	var occupied = p.Occupied &^ move.Mask

	*child = Position{}
	var out = 0
	for col := 0; col < BoardWidth; col++ {
		var shift = uint(col * BoardHeight)
		var colOcc = (occupied >> shift) & columnMask
		if colOcc == 0 {
			continue
		}
		var outShift = uint(out * BoardHeight)
		for i := range child.Planes {
			var field = (p.Planes[i] >> shift) & columnMask
			child.Planes[i] |= CompactColumn(field, colOcc) << outShift
		}
		child.Occupied |= (columnMask >> uint(BoardHeight-PopCount(colOcc))) << outShift
		out++
	}

	child.Key = p.Key
	for i := range child.Planes {
		for diff := p.Planes[i] ^ child.Planes[i]; diff != 0; diff &= diff - 1 {
			child.Key ^= pieceSquareKey[i*SquareCount+FirstOne(diff)]
		}
	}
}

func (p *Position) computeKey() uint64 {
	var key uint64
	for i := range p.Planes {
		for b := p.Planes[i]; b != 0; b &= b - 1 {
			key ^= pieceSquareKey[i*SquareCount+FirstOne(b)]
		}
	}
	return key
}
