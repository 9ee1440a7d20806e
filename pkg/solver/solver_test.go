package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samegame/sfcsolver/pkg/common"
)

func parsePosition(t *testing.T, s string) common.Position {
	t.Helper()
	var p, err = common.NewPositionFromString(s)
	require.NoError(t, err)
	return p
}

func newTestSolver() *Solver {
	var s = NewSolver()
	s.Hash = 1
	s.Threads = 1
	return s
}

// bruteForceBest fully enumerates the move tree without pruning or
// deduplication. Only usable on small boards.
func bruteForceBest(rules ScoreModel, p *common.Position) int {
	if !p.HasMoves() {
		return rules.TerminalBonus(p.IsEmpty())
	}
	var best = 0
	var buffer [common.MaxMoves]common.Move
	for _, move := range p.GenerateMoves(buffer[:]) {
		var child common.Position
		p.MakeMove(move, &child)
		var total = rules.EraseGain(move.Size()) + bruteForceBest(rules, &child)
		if total > best {
			best = total
		}
	}
	return best
}

// replayScore re-derives the total score of a solution line move by move.
func replayScore(t *testing.T, rules ScoreModel, board common.Position, moves []int) int {
	t.Helper()
	var score = 0
	var p = board
	for _, sq := range moves {
		var move, err = p.MoveFromSquare(sq)
		require.NoError(t, err)
		score += rules.EraseGain(move.Size())
		var child common.Position
		p.MakeMove(move, &child)
		p = child
	}
	require.False(t, p.HasMoves(), "solution line is not terminal")
	return score + rules.TerminalBonus(p.IsEmpty())
}

func TestSFCRules(t *testing.T) {
	var rules SFCRules
	require.Equal(t, 1, rules.EraseGain(2))
	require.Equal(t, 4, rules.EraseGain(3))
	require.Equal(t, 225, rules.EraseGain(16))
	require.Equal(t, 2209, rules.EraseGain(common.SquareCount))
	require.Equal(t, ScorePerfect, rules.TerminalBonus(true))
	require.Zero(t, rules.TerminalBonus(false))
	require.Equal(t, 2409, ScoreMax)
}

func TestSolveTwoPairsAndSingleton(t *testing.T) {
	// two removable pairs and one isolated cell of another kind: the best
	// play erases both pairs, the singleton stays, no perfect bonus
	var board = parsePosition(t, `........
........
........
........
........
11.22..3
`)
	var s = newTestSolver()
	var res, ok = s.Solve(board, 0)
	require.True(t, ok)
	require.Equal(t, 2*SFCRules{}.EraseGain(2), res.Score)
	require.Len(t, res.Moves, 2)
	require.Equal(t, res.Score, replayScore(t, s.Rules, board, res.Moves))
}

func TestSolveMonoColorBlock(t *testing.T) {
	// a 4x4 single-kind block clears in one move of 16 and empties the board
	var board = parsePosition(t, `........
........
1111....
1111....
1111....
1111....
`)
	var s = newTestSolver()
	var res, ok = s.Solve(board, 0)
	require.True(t, ok)
	require.Equal(t, SFCRules{}.EraseGain(16)+ScorePerfect, res.Score)
	require.Len(t, res.Moves, 1)
	require.Equal(t, res.Score, replayScore(t, s.Rules, board, res.Moves))
}

func TestSolveEmptyBoard(t *testing.T) {
	var s = newTestSolver()
	var res, ok = s.Solve(common.Position{}, 0)
	require.True(t, ok)
	require.Equal(t, ScorePerfect, res.Score)
	require.Empty(t, res.Moves)
}

func TestSolveNoMovesAtRoot(t *testing.T) {
	var board = parsePosition(t, `........
........
........
........
........
121212..
`)
	var s = newTestSolver()
	var res, ok = s.Solve(board, 0)
	require.True(t, ok)
	require.Zero(t, res.Score)
	require.Empty(t, res.Moves)
}

var bruteForceBoards = []string{
	`........
........
........
.1......
.1.22...
11322...
`,
	`........
........
........
2.......
1.5..3..
234..33.
`,
	`........
........
.4......
.41.....
121.55..
121.51..
`,
	`........
........
........
11......
2211....
1122....
`,
	`........
........
3.......
33......
312.2...
112.2...
`,
}

func TestSolveMatchesBruteForce(t *testing.T) {
	for i, text := range bruteForceBoards {
		var board = parsePosition(t, text)
		var want = bruteForceBest(SFCRules{}, &board)
		var s = newTestSolver()
		var res, ok = s.Solve(board, 0)
		require.True(t, ok, "board %v", i)
		require.Equal(t, want, res.Score, "board %v", i)
		require.Equal(t, res.Score, replayScore(t, s.Rules, board, res.Moves),
			"board %v: reported score does not replay", i)
	}
}

func TestGainUpperBoundAdmissible(t *testing.T) {
	for i, text := range bruteForceBoards {
		var board = parsePosition(t, text)
		var best = bruteForceBest(SFCRules{}, &board)
		require.GreaterOrEqual(t, GainUpperBound(SFCRules{}, &board), best,
			"board %v: upper bound below the true best", i)
	}
}

func TestSolveDeterministic(t *testing.T) {
	var board = parsePosition(t, `........
........
.4......
.41.....
121.55..
121.51..
`)
	var s = newTestSolver()
	var res1, ok1 = s.Solve(board, 0)
	var res2, ok2 = s.Solve(board, 0)
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, res1.Score, res2.Score)
	require.Equal(t, res1.Moves, res2.Moves)
}

func TestSolveThresholdAboveMax(t *testing.T) {
	var board = parsePosition(t, `........
........
........
.1......
.1.22...
11322...
`)
	var s = newTestSolver()
	var res, ok = s.Solve(board, ScoreMax)
	require.False(t, ok)
	require.Empty(t, res.Moves)
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	var board = parsePosition(t, `........
........
3.......
33..44..
312.24..
112.24..
`)
	var seq = newTestSolver()
	var resSeq, okSeq = seq.Solve(board, 0)
	require.True(t, okSeq)

	var par = newTestSolver()
	par.Threads = 4
	var resPar, okPar = par.Solve(board, 0)
	require.True(t, okPar)
	require.Equal(t, resSeq.Score, resPar.Score)
	require.Equal(t, resPar.Score, replayScore(t, par.Rules, board, resPar.Moves))
}

func TestResultLine(t *testing.T) {
	var res = Result{Moves: []int{common.MakeSquare(0, 0), common.MakeSquare(3, 1)}}
	require.Equal(t, "1,1 4,2", res.Line())
	require.Empty(t, Result{}.Line())
}

func BenchmarkSolve(b *testing.B) {
	var board, err = common.NewPositionFromString(`........
........
.4..3...
.41.3...
121.55..
121.51..
`)
	if err != nil {
		b.Fatal(err)
	}
	var s = NewSolver()
	s.Hash = 16
	s.Threads = 1
	for i := 0; i < b.N; i++ {
		s.Solve(board, 0)
	}
}
