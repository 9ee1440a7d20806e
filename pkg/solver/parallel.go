package solver

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/samegame/sfcsolver/pkg/common"
)

// searchRoot splits the root move list across the worker threads. Each
// worker claims root moves through an atomic counter and explores the
// whole subtree below its claim sequentially, so no two workers ever
// descend into the same node. They interact only through the shared
// pruning bound, the best line and the transposition store.
func (s *Solver) searchRoot(p *common.Position) {
	var buffer [common.MaxMoves]common.Move
	var ml = p.GenerateMoves(buffer[:])
	if len(ml) == 0 {
		s.tryUpdateBest(s.Rules.TerminalBonus(p.IsEmpty()), nil)
		return
	}

	var workers = len(s.threads)
	if workers > len(ml) {
		workers = len(ml)
	}

	var next int32 = -1
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		var t = &s.threads[i]
		t.stack[0].position = *p
		g.Go(func() error {
			var root = &t.stack[0].position
			for {
				var index = int(atomic.AddInt32(&next, 1))
				if index >= len(ml) {
					return nil
				}
				var move = ml[index]
				var child = &t.stack[1].position
				root.MakeMove(move, child)
				t.history[0] = move.Square()
				t.dfs(child, s.Rules.EraseGain(move.Size()), 1)
			}
		})
	}
	g.Wait()
}
