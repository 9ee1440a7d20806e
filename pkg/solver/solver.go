package solver

import (
	"log"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/samegame/sfcsolver/pkg/common"
)

const (
	maxHeight = common.SquareCount / 2
	stackSize = maxHeight + 1
)

// Solver searches the maximum achievable score of a board by exhaustive
// depth-first branch-and-bound over all move sequences. A Solver can solve
// boards back to back; the transposition store is kept and aged between
// runs. Hash and Threads take effect on the next Solve.
type Solver struct {
	Hash    int // transposition store size in megabytes
	Threads int
	Rules   ScoreModel
	Logger  *log.Logger

	transTable *transTable
	threads    []thread

	// max(initial threshold, best score found): branches that cannot beat
	// it are cut. Read as a relaxed snapshot by every worker; a stale value
	// only costs extra work.
	pruneScore int64

	mu        sync.Mutex
	bestScore int
	bestLine  []int
	nodes     int64
}

type thread struct {
	solver  *Solver
	nodes   int64
	history [maxHeight]int
	stack   [stackSize]struct {
		position common.Position
		moveList [common.MaxMoves]common.Move
	}
}

// Result is the outcome of a completed search: the best total score and
// one move sequence achieving it, each move named by a cell of its group.
type Result struct {
	Score int
	Moves []int
	Nodes int64
}

func (r Result) Line() string {
	var sb strings.Builder
	for i, sq := range r.Moves {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(common.SquareName(sq))
	}
	return sb.String()
}

func NewSolver() *Solver {
	return &Solver{
		Hash:    16,
		Threads: runtime.NumCPU(),
		Rules:   SFCRules{},
	}
}

func (s *Solver) Prepare() {
	if s.transTable == nil || s.transTable.Size() != s.Hash {
		if s.transTable != nil {
			s.transTable = nil
			runtime.GC()
		}
		s.transTable = newTransTable(s.Hash)
	}
	if len(s.threads) != s.Threads {
		s.threads = make([]thread, s.Threads)
		for i := range s.threads {
			s.threads[i].solver = s
		}
	}
}

// Solve runs the search to exhaustion and returns the best result found.
// Branches proven unable to exceed pruneScoreMax (or the best score found
// so far, whichever is higher) are cut, so with a threshold above the true
// maximum no terminal is ever reached and ok is false.
func (s *Solver) Solve(board common.Position, pruneScoreMax int) (Result, bool) {
	s.Prepare()
	s.transTable.IncDate()
	s.bestScore = -1
	s.bestLine = nil
	s.nodes = 0
	atomic.StoreInt64(&s.pruneScore, int64(pruneScoreMax))
	for i := range s.threads {
		s.threads[i].nodes = 0
	}

	s.searchRoot(&board)

	for i := range s.threads {
		s.nodes += s.threads[i].nodes
	}
	if s.bestScore < 0 {
		return Result{Nodes: s.nodes}, false
	}
	return Result{
		Score: s.bestScore,
		Moves: append([]int(nil), s.bestLine...),
		Nodes: s.nodes,
	}, true
}

func (s *Solver) bound() int {
	return int(atomic.LoadInt64(&s.pruneScore))
}

// tryUpdateBest records a terminal result. The best score never decreases:
// the shared bound advances by compare-and-swap and the line is replaced
// only under the lock after re-checking the score.
func (s *Solver) tryUpdateBest(score int, line []int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score <= s.bestScore {
		return false
	}
	s.bestScore = score
	s.bestLine = append(s.bestLine[:0], line...)
	for {
		var cur = atomic.LoadInt64(&s.pruneScore)
		if int64(score) <= cur ||
			atomic.CompareAndSwapInt64(&s.pruneScore, cur, int64(score)) {
			break
		}
	}
	if s.Logger != nil {
		s.Logger.Printf("found %v: %v", score, Result{Score: score, Moves: line}.Line())
	}
	return true
}

// dfs explores the subtree below p, whose accumulated score is score, and
// returns an upper bound on the gain still obtainable from p.
func (t *thread) dfs(p *common.Position, score, height int) int {
	t.nodes++
	var s = t.solver

	if !p.HasMoves() {
		var gain = s.Rules.TerminalBonus(p.IsEmpty())
		s.tryUpdateBest(score+gain, t.history[:height])
		return gain
	}

	var gainUB, ok = s.transTable.Read(p.Key)
	if !ok {
		gainUB = GainUpperBound(s.Rules, p)
		s.transTable.Update(p.Key, gainUB, false)
	}
	if score+gainUB <= s.bound() {
		return gainUB
	}

	var ml = p.GenerateMoves(t.stack[height].moveList[:])
	gainUB = 0
	for _, move := range ml {
		var child = &t.stack[height+1].position
		p.MakeMove(move, child)
		var gain = s.Rules.EraseGain(move.Size())
		t.history[height] = move.Square()
		var childUB = t.dfs(child, score+gain, height+1)
		if gain+childUB > gainUB {
			gainUB = gain + childUB
		}
	}
	s.transTable.Update(p.Key, gainUB, true)
	return gainUB
}
