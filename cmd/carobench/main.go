// Command carobench drives the Caro engine from the terminal: it plays
// one side against itself or against stdin-entered moves, printing the
// board and search telemetry after every move.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/stdr"

	"github.com/hailam/caroengine/internal/book"
	"github.com/hailam/caroengine/internal/board"
	"github.com/hailam/caroengine/internal/engine"
	"github.com/hailam/caroengine/internal/storage"
	"github.com/hailam/caroengine/internal/telemetry"
)

var (
	boardSize    = flag.Int("size", 15, "board edge length")
	difficulty   = flag.String("difficulty", "medium", "braindead|easy|medium|hard|grandmaster|experimental")
	timeRemain   = flag.Duration("time", 10*time.Second, "clock time remaining for the side to move")
	increment    = flag.Duration("inc", 0, "clock increment per move")
	selfPlay     = flag.Bool("selfplay", false, "let the engine play both sides until someone wins")
	noBook       = flag.Bool("no-book", false, "disable the opening book")
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to file")
	verbose      = flag.Bool("v", false, "enable verbose search telemetry logging")
)

func parseDifficulty(s string) (engine.Difficulty, error) {
	switch strings.ToLower(s) {
	case "braindead":
		return engine.Braindead, nil
	case "easy":
		return engine.Easy, nil
	case "medium":
		return engine.Medium, nil
	case "hard":
		return engine.Hard, nil
	case "grandmaster":
		return engine.Grandmaster, nil
	case "experimental":
		return engine.Experimental, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	diff, err := parseDifficulty(*difficulty)
	if err != nil {
		log.Fatal(err)
	}

	b, err := board.New(*boardSize)
	if err != nil {
		log.Fatalf("board.New: %v", err)
	}

	var bookSource engine.BookSource
	if !*noBook {
		dir, err := storage.GetBookDir()
		if err != nil {
			log.Printf("opening book unavailable: %v", err)
		} else if bk, err := book.Open(dir); err != nil {
			log.Printf("opening book unavailable: %v", err)
		} else {
			defer bk.Close()
			bookSource = bk
		}
	}

	logLevel := 0
	if *verbose {
		logLevel = 1
	}
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))
	stdr.SetVerbosity(logLevel)
	sink := telemetry.NewSink(64, logger, nil, nil)

	ctrl := engine.NewController(engine.DefaultOptions(), bookSource, sink)

	if *selfPlay {
		runSelfPlay(ctrl, b, diff)
		return
	}
	runInteractive(ctrl, b, diff)
}

func runSelfPlay(ctrl *engine.Controller, b *board.Board, diff engine.Difficulty) {
	side := board.First
	for {
		fmt.Print(b.String())
		limits := engine.TimeLimits{TimeRemaining: *timeRemain, Increment: *increment, MoveNumber: b.MoveNumber()}
		res, err := ctrl.FindBestMove(context.Background(), b, side, diff, limits)
		if err != nil {
			log.Fatalf("FindBestMove: %v", err)
		}
		fmt.Printf("%s plays %s (score=%d depth=%d nodes=%d elapsed=%s book=%v vcf=%v)\n",
			side, res.Move, res.Score, res.Depth, res.Nodes, res.Elapsed, res.BookUsed, res.VCFUsed)

		next, err := b.Place(res.Move)
		if err != nil {
			log.Fatalf("illegal move returned by engine: %v", err)
		}
		b = next
		if next.IsWin(res.Move) {
			fmt.Print(b.String())
			fmt.Printf("%s wins\n", side)
			return
		}
		side = side.Opponent()
	}
}

func runInteractive(ctrl *engine.Controller, b *board.Board, diff engine.Difficulty) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("enter moves as 'x y' (0-indexed); the engine replies as second player")
	side := board.First
	for {
		fmt.Print(b.String())
		if side == board.First {
			fmt.Print("> ")
			if !scanner.Scan() {
				return
			}
			fields := strings.Fields(scanner.Text())
			if len(fields) != 2 {
				fmt.Println("expected two integers")
				continue
			}
			x, err1 := strconv.Atoi(fields[0])
			y, err2 := strconv.Atoi(fields[1])
			if err1 != nil || err2 != nil {
				fmt.Println("could not parse coordinates")
				continue
			}
			m := board.Move{X: x, Y: y}
			next, err := b.Place(m)
			if err != nil {
				fmt.Printf("illegal move: %v\n", err)
				continue
			}
			b = next
			if next.IsWin(m) {
				fmt.Print(b.String())
				fmt.Println("you win")
				return
			}
		} else {
			limits := engine.TimeLimits{TimeRemaining: *timeRemain, Increment: *increment, MoveNumber: b.MoveNumber()}
			res, err := ctrl.FindBestMove(context.Background(), b, side, diff, limits)
			if err != nil {
				log.Fatalf("FindBestMove: %v", err)
			}
			fmt.Printf("engine plays %s (score=%d depth=%d nodes=%d)\n", res.Move, res.Score, res.Depth, res.Nodes)
			next, err := b.Place(res.Move)
			if err != nil {
				log.Fatalf("illegal move returned by engine: %v", err)
			}
			b = next
			if next.IsWin(res.Move) {
				fmt.Print(b.String())
				fmt.Println("engine wins")
				return
			}
		}
		side = side.Opponent()
	}
}
