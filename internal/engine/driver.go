package engine

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/caroengine/internal/board"
)

// Driver owns the Lazy SMP worker pool: one master (index 0) plus N-1
// helpers, all racing the same root iterative-deepening loop against a
// shared transposition table.
type Driver struct {
	tt        *TranspositionTable
	cancelled atomic.Bool
	workers   []*Worker
}

// NewDriver allocates numWorkers workers sharing tt, sized for boards of
// the given edge length.
func NewDriver(tt *TranspositionTable, numWorkers, boardSize int) *Driver {
	if numWorkers < 1 {
		numWorkers = 1
	}
	d := &Driver{tt: tt, workers: make([]*Worker, numWorkers)}
	for i := range d.workers {
		d.workers[i] = NewWorker(i, boardSize, tt, &d.cancelled)
	}
	return d
}

// DefaultWorkerCount returns max(5, cores/2 - 1), the Grandmaster/
// Experimental thread count rule; lower difficulties cap this
// explicitly via difficulty.go's ThreadCount.
func DefaultWorkerCount() int {
	n := runtime.GOMAXPROCS(0)/2 - 1
	if n < 5 {
		n = 5
	}
	return n
}

// DriverResult is one worker's contribution at search end.
type DriverResult struct {
	WorkerID      int
	Move          board.Move
	Score         int
	DepthCompleted int
	Nodes         uint64
}

// Run spawns all workers against b and blocks until they return: a worker
// starts no new iteration once the soft bound has passed, and all stop
// mid-iteration when the hard bound or ctx expires. The result selection prefers
// the deepest completed iteration, tie-breaking toward the master, then
// by score.
func (d *Driver) Run(ctx context.Context, b *board.Board, toMove board.Player, maxDepth int, tm *TimeManager) DriverResult {
	d.cancelled.Store(false)
	d.tt.NewSearch()
	for _, w := range d.workers {
		w.Reset()
	}

	results := make([]DriverResult, len(d.workers))
	softCtx, cancelSoft := context.WithCancel(ctx)
	defer cancelSoft()

	go d.watchTime(softCtx, tm)

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range d.workers {
		i, w := i, w
		g.Go(func() error {
			d.runWorker(gctx, w, b, toMove, maxDepth, i, results, tm)
			return nil
		})
	}
	_ = g.Wait()

	return selectBest(results)
}

// watchTime sets the shared cancellation flag once the hard bound fires,
// or immediately if softCtx is cancelled early (deadline from the caller).
func (d *Driver) watchTime(ctx context.Context, tm *TimeManager) {
	ticker := time.NewTicker(2 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.cancelled.Store(true)
			return
		case <-ticker.C:
			if tm.PastHard() {
				d.cancelled.Store(true)
				return
			}
		}
	}
}

// runWorker executes the per-worker iterative-deepening loop, staggering
// helper start depths for search diversity, and records the deepest
// completed iteration's result.
func (d *Driver) runWorker(ctx context.Context, w *Worker, b *board.Board, toMove board.Player, maxDepth, workerIndex int, results []DriverResult, tm *TimeManager) {
	startDepth := 1
	if workerIndex > 0 {
		startDepth = 1 + workerIndex%3
	}

	prevScore := 0
	for depth := startDepth; depth <= maxDepth; depth++ {
		if d.cancelled.Load() || ctx.Err() != nil {
			return
		}
		if depth > startDepth && tm != nil && tm.PastSoft() {
			return
		}

		alpha, beta := -Infinity, Infinity
		if depth >= 5 {
			window := 50
			for _, w2 := range []int{50, 200, Infinity} {
				alpha, beta = prevScore-w2, prevScore+w2
				move, score, completed := w.SearchRoot(b, toMove, depth, alpha, beta)
				if !completed {
					return
				}
				if score > alpha && score < beta {
					results[workerIndex] = DriverResult{WorkerID: workerIndex, Move: move, Score: score, DepthCompleted: depth, Nodes: w.Nodes()}
					prevScore = score
					window = w2
					break
				}
				window = w2
			}
			_ = window
			continue
		}

		move, score, completed := w.SearchRoot(b, toMove, depth, alpha, beta)
		if !completed {
			return
		}
		results[workerIndex] = DriverResult{WorkerID: workerIndex, Move: move, Score: score, DepthCompleted: depth, Nodes: w.Nodes()}
		prevScore = score

		if score > MateScore-MaxPly || score < -MateScore+MaxPly {
			d.cancelled.Store(true)
			return
		}
	}
}

// selectBest applies the tie-break order: deepest completed depth, then
// master (worker 0), then score. results[0] is always the master, so a
// depth tie against it is never displaced; a tie between two helpers
// still falls back to score.
func selectBest(results []DriverResult) DriverResult {
	best := results[0]
	for i := 1; i < len(results); i++ {
		r := results[i]
		if r.Move == board.NoMove {
			continue
		}
		switch {
		case best.Move == board.NoMove:
			best = r
		case r.DepthCompleted > best.DepthCompleted:
			best = r
		case r.DepthCompleted == best.DepthCompleted:
			if best.WorkerID == 0 {
				continue
			}
			if r.WorkerID == 0 || r.Score > best.Score {
				best = r
			}
		}
	}
	return best
}
