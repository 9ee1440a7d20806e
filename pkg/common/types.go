package common

const (
	BoardWidth  = 8
	BoardHeight = 6
	SquareCount = BoardWidth * BoardHeight
)

const (
	Empty    = 0
	PieceMin = 1
	PieceMax = 5
)

// MaxMoves bounds the number of erasable groups on any board. A group
// takes at least two cells, so a full board has at most SquareCount/2.
const MaxMoves = SquareCount / 2

const SquareNone = -1

// Position is an immutable board state. Planes[i] holds the cells
// occupied by piece i+1, Occupied is the union of all planes, and Key
// is the zobrist hash of the cell contents.
type Position struct {
	Planes   [PieceMax]uint64
	Occupied uint64
	Key      uint64
}

// Move erases one connected group of two or more equal pieces.
type Move struct {
	Piece int
	Mask  uint64
}

func (m Move) Size() int {
	return PopCount(m.Mask)
}

// Square returns the representative cell of the group, the one with the
// lowest bit index. Solution lines are written in this notation.
func (m Move) Square() int {
	return FirstOne(m.Mask)
}

func (m Move) String() string {
	return SquareName(m.Square())
}
