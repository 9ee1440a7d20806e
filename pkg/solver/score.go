package solver

import "github.com/samegame/sfcsolver/pkg/common"

// ScoreMax is the theoretical maximum for the default rules: clearing all
// 48 cells in one group plus the perfect bonus.
const ScoreMax = (common.SquareCount-1)*(common.SquareCount-1) + ScorePerfect

const ScorePerfect = 200

// ScoreModel is the scoring rule of the puzzle variant. The search only
// requires EraseGain to be non-decreasing in the group size; the upper
// bound estimate additionally assumes it is superadditive, so erasing a
// kind in one group never scores less than erasing it in parts.
type ScoreModel interface {
	// EraseGain returns the score for erasing a group of n cells, n >= 2.
	EraseGain(n int) int
	// TerminalBonus returns the adjustment applied once at a terminal
	// position. perfect is true when the board was fully cleared.
	TerminalBonus(perfect bool) int
}

// SFCRules is the rule of the original game: a group of n cells scores
// (n-1)^2 and clearing the whole board adds ScorePerfect.
type SFCRules struct{}

func (SFCRules) EraseGain(n int) int {
	return (n - 1) * (n - 1)
}

func (SFCRules) TerminalBonus(perfect bool) int {
	if perfect {
		return ScorePerfect
	}
	return 0
}

// GainUpperBound estimates the score still obtainable from p without any
// search: every piece kind with two or more cells left is assumed to be
// erased in a single group, and the perfect bonus is assumed whenever no
// kind is down to a lone cell. The estimate never undershoots the true
// remaining gain.
func GainUpperBound(rules ScoreModel, p *common.Position) int {
	var res = 0
	var perfect = true
	for piece := common.PieceMin; piece <= common.PieceMax; piece++ {
		var count = p.CountByPiece(piece)
		switch {
		case count == 0:
		case count == 1:
			perfect = false
		default:
			res += rules.EraseGain(count)
		}
	}
	if perfect {
		res += rules.TerminalBonus(true)
	}
	return res
}
