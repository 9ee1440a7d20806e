package common

import (
	"fmt"
	"strconv"
	"strings"
)

func MakeSquare(col, row int) int {
	return col*BoardHeight + row
}

func Col(sq int) int {
	return sq / BoardHeight
}

func Row(sq int) int {
	return sq % BoardHeight
}

// SquareName formats a square as "col,row", both 1-based, matching the
// notation of solution lines.
func SquareName(sq int) string {
	return fmt.Sprintf("%v,%v", Col(sq)+1, Row(sq)+1)
}

func ParseSquare(s string) (int, error) {
	var fields = strings.Split(s, ",")
	if len(fields) != 2 {
		return SquareNone, fmt.Errorf("parse square failed %v", s)
	}
	var col, errCol = strconv.Atoi(fields[0])
	var row, errRow = strconv.Atoi(fields[1])
	if errCol != nil || errRow != nil ||
		col < 1 || col > BoardWidth ||
		row < 1 || row > BoardHeight {
		return SquareNone, fmt.Errorf("parse square failed %v", s)
	}
	return MakeSquare(col-1, row-1), nil
}
