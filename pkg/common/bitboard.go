package common

import "math/bits"

const BoardMask uint64 = (1 << SquareCount) - 1

// One bit per column, in the bottom row.
const bottomRowMask uint64 = 0x041041041041

const topRowMask = bottomRowMask << (BoardHeight - 1)

const columnMask uint64 = (1 << BoardHeight) - 1

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

func MoreThanOne(b uint64) bool {
	return b != 0 && ((b-1)&b) != 0
}

func Up(b uint64) uint64 {
	return (b &^ topRowMask) << 1
}

func Down(b uint64) uint64 {
	return (b &^ bottomRowMask) >> 1
}

func Right(b uint64) uint64 {
	return (b << BoardHeight) & BoardMask
}

func Left(b uint64) uint64 {
	return b >> BoardHeight
}

// FloodFill returns the 4-connected component of mask containing seed.
// The frontier only grows and is bounded by mask, so the loop terminates.
func FloodFill(mask, seed uint64) uint64 {
	var group = seed & mask
	for {
		var grown = group |
			((Up(group) | Down(group) | Left(group) | Right(group)) & mask)
		if grown == group {
			return group
		}
		group = grown
	}
}

var pextColumn [1 << BoardHeight][1 << BoardHeight]uint8

func init() {
	for x := 0; x < 1<<BoardHeight; x++ {
		for mask := 0; mask < 1<<BoardHeight; mask++ {
			var res, k = 0, 0
			for i := 0; i < BoardHeight; i++ {
				if mask&(1<<i) != 0 {
					if x&(1<<i) != 0 {
						res |= 1 << k
					}
					k++
				}
			}
			pextColumn[x][mask] = uint8(res)
		}
	}
}

// CompactColumn extracts the bits of x at the positions set in mask and
// packs them toward the bottom, preserving order: gravity for one column.
func CompactColumn(x, mask uint64) uint64 {
	return uint64(pextColumn[x][mask])
}
