package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hailam/caroengine/internal/board"
	"github.com/hailam/caroengine/internal/telemetry"
)

// BookSource is the narrow capability the controller needs from the
// opening book, so the search core never depends on the storage layer
// directly. Implemented by internal/book.Book.
type BookSource interface {
	Lookup(b *board.Board, side board.Player, maxPly, currentPly int) (board.Move, bool)
}

// SearchResult is the public return value of FindBestMove.
type SearchResult struct {
	Move      board.Move
	Score     int
	Depth     int
	Nodes     uint64
	Elapsed   time.Duration
	BookUsed  bool
	VCFUsed   bool
}

// Options holds the controller's recognized configuration knobs.
type Options struct {
	TTSizeMB          int
	Threads           int
	EnableOpeningBook bool
	BookDepthLimit    int
	EnablePondering   bool
	Deterministic     bool
}

// DefaultOptions returns the documented defaults (64MB TT, book enabled).
func DefaultOptions() Options {
	return Options{TTSizeMB: 64, EnableOpeningBook: true, BookDepthLimit: 20}
}

// Controller is the public entry point composing every other component:
// book lookup, VCF proof search, and the Lazy SMP driver.
type Controller struct {
	tt    *TranspositionTable
	book  BookSource
	stats *telemetry.Sink
	opts  Options

	pid uint64 // publisher id for telemetry events
}

// NewController allocates a controller with its own transposition table,
// publishing to the given telemetry sink (nil disables publishing). Pass a
// nil book to disable opening-book lookup
// regardless of opts.EnableOpeningBook.
func NewController(opts Options, book BookSource, stats *telemetry.Sink) *Controller {
	if opts.TTSizeMB <= 0 {
		opts = DefaultOptions()
	}
	return &Controller{
		tt:    NewTranspositionTable(opts.TTSizeMB, 16),
		book:  book,
		stats: stats,
		opts:  opts,
	}
}

// FindBestMove validates the position, tries the opening book, tries
// VCF, then runs the parallel driver.
func (c *Controller) FindBestMove(ctx context.Context, b *board.Board, side board.Player, difficulty Difficulty, limits TimeLimits) (SearchResult, error) {
	start := time.Now()

	if err := validatePosition(b, side); err != nil {
		return SearchResult{}, err
	}

	settings := difficulty.Settings()

	tm := NewTimeManager(DifficultyMultiplier(difficulty))
	tm.Init(limits)

	if c.opts.EnableOpeningBook && c.book != nil {
		maxPly := settings.BookMaxPly
		if c.opts.BookDepthLimit > 0 && c.opts.BookDepthLimit < maxPly {
			maxPly = c.opts.BookDepthLimit
		}
		if m, ok := c.book.Lookup(b, side, maxPly, b.MoveNumber()); ok {
			res := SearchResult{Move: m, BookUsed: true, Elapsed: time.Since(start)}
			c.publish(telemetry.MainSearch, res, 0)
			return res, nil
		}
	}

	if settings.EnableVCF {
		vcfDeadline := start.Add(vcfBudget(tm.SoftBound()))
		vcfCtx, cancel := context.WithDeadline(ctx, vcfDeadline)
		vcfResult := NewVCFSolver().Solve(vcfCtx, b, side, MaxPly, vcfDeadline)
		cancel()
		c.publishVCF(vcfResult)
		if vcfResult.Found {
			res := SearchResult{
				Move:    vcfResult.Move,
				Score:   MateScore - vcfResult.MateInPlies,
				Depth:   vcfResult.MateInPlies,
				VCFUsed: true,
				Elapsed: time.Since(start),
			}
			c.publish(telemetry.MainSearch, res, 0)
			return res, nil
		}
	}

	threads := settings.ResolvedThreadCount()
	if c.opts.Threads > 0 {
		threads = c.opts.Threads
	}
	if c.opts.Deterministic {
		threads = 1
	}
	if !settings.EnableParallel {
		threads = 1
	}

	driver := NewDriver(c.tt, threads, b.Size())
	hardCtx, cancel := context.WithTimeout(ctx, tm.HardBound())
	defer cancel()

	maxDepth := MaxPly
	result := driver.Run(hardCtx, b, side, maxDepth, tm)
	tm.Report(time.Since(start))

	if result.Move == board.NoMove {
		return SearchResult{}, fmt.Errorf("%w: driver produced no move", ErrCancelled)
	}

	if difficulty == Braindead && rand.Float64() < settings.RandomErrorProb {
		if m, ok := braindeadSubstitute(b, side); ok {
			result.Move = m
		}
	}

	res := SearchResult{
		Move:    result.Move,
		Score:   result.Score,
		Depth:   result.DepthCompleted,
		Nodes:   result.Nodes,
		Elapsed: time.Since(start),
	}
	c.publish(telemetry.MainSearch, res, c.tt.HitRate())
	return res, nil
}

func validatePosition(b *board.Board, side board.Player) error {
	if b == nil || b.Size() < board.MinBoardSize {
		return fmt.Errorf("%w: board too small", ErrInvalidPosition)
	}
	if side != board.First && side != board.Second {
		return fmt.Errorf("%w: illegal side to move", ErrInvalidPosition)
	}
	if hasFive(b, board.First) || hasFive(b, board.Second) {
		return fmt.Errorf("%w: position is already won", ErrInvalidPosition)
	}
	if b.Occupied().PopCount() == b.Size()*b.Size() {
		return fmt.Errorf("%w: board is full", ErrNoLegalMove)
	}
	return nil
}

// braindeadSubstitute implements the Braindead difficulty's special
// case: FindBestMove rolls settings.RandomErrorProb before calling this,
// and on a hit this substitutes a uniformly random legal move that does
// not immediately lose to an unavoidable five.
func braindeadSubstitute(b *board.Board, side board.Player) (board.Move, bool) {
	moves := b.Moves()
	var safe []board.Move
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		child, err := b.Place(m)
		if err != nil {
			continue
		}
		if len(board.MustBlockCells(child, side)) == 0 {
			safe = append(safe, m)
		}
	}
	if len(safe) == 0 {
		return board.NoMove, false
	}
	return safe[rand.Intn(len(safe))], true
}

func (c *Controller) publish(kind telemetry.Kind, res SearchResult, hitRate float64) {
	if c.stats == nil {
		return
	}
	c.stats.Publish(telemetry.StatsEvent{
		PublisherID: c.pid,
		Kind:        kind,
		Move:        res.Move,
		Depth:       res.Depth,
		Nodes:       res.Nodes,
		Score:       res.Score,
		TTHitRate:   hitRate,
		ElapsedMs:   res.Elapsed.Milliseconds(),
		BookUsed:    res.BookUsed,
		VCFUsed:     res.VCFUsed,
	})
}

func (c *Controller) publishVCF(r VCFResult) {
	if c.stats == nil {
		return
	}
	c.stats.Publish(telemetry.StatsEvent{
		PublisherID: c.pid,
		Kind:        telemetry.VcfSearch,
		Depth:       r.MaxDepth,
		Nodes:       uint64(r.NodesSearched),
		VCFUsed:     r.Found,
	})
}

// Clear resets the transposition table, used on new-game.
func (c *Controller) Clear() {
	c.tt.Clear()
}
