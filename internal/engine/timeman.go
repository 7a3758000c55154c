package engine

import "time"

// TimeLimits mirrors the caller-supplied clock state: no protocol-
// specific fields, just what a generic game clock needs.
type TimeLimits struct {
	TimeRemaining time.Duration
	Increment     time.Duration
	MoveNumber    int
}

// TimeManager converts (time remaining, increment, move number,
// difficulty) into a soft/hard bound pair and adapts future allocations
// via PID feedback on actual spend.
type TimeManager struct {
	difficultyMultiplier float64

	softBound time.Duration
	hardBound time.Duration
	startTime time.Time

	// PID state, persisted across moves within a game.
	integral     time.Duration
	lastError    time.Duration
	kp, ki, kd   float64
}

// NewTimeManager returns a manager for the given difficulty multiplier
// (Braindead 0.05 ... Grandmaster 1.00).
func NewTimeManager(difficultyMultiplier float64) *TimeManager {
	return &TimeManager{
		difficultyMultiplier: difficultyMultiplier,
		kp:                   1.0,
		ki:                   0.1,
		kd:                   0.5,
	}
}

// expectedMovesRemaining estimates how many more moves this game will
// need, decreasing with move number: many moves expected early, few late.
func expectedMovesRemaining(moveNumber int) int {
	est := 60 - moveNumber/2
	if est < 10 {
		est = 10
	}
	if est > 60 {
		est = 60
	}
	return est
}

// Init computes the soft/hard bound for the upcoming move.
func (tm *TimeManager) Init(limits TimeLimits) {
	tm.startTime = time.Now()

	if limits.TimeRemaining < 3*limits.Increment {
		// Time-scramble mode: never risk flagging.
		tm.hardBound = time.Duration(0.4 * float64(limits.Increment))
		tm.softBound = tm.hardBound
		return
	}

	mtg := expectedMovesRemaining(limits.MoveNumber)
	base := limits.TimeRemaining/time.Duration(mtg) + time.Duration(0.8*float64(limits.Increment))
	base = time.Duration(float64(base) * tm.difficultyMultiplier)

	// PID adjustment from prior move's over/under-spend.
	adjustment := time.Duration(tm.kp*float64(tm.lastError) + tm.ki*float64(tm.integral) + tm.kd*float64(tm.lastError-tm.integral))
	base -= adjustment
	if base < time.Millisecond {
		base = time.Millisecond
	}

	tm.softBound = base
	tm.hardBound = 3 * base

	maxHard := time.Duration(0.95 * float64(limits.TimeRemaining))
	if tm.hardBound > maxHard {
		tm.hardBound = maxHard
	}
	if tm.softBound > tm.hardBound {
		tm.softBound = tm.hardBound
	}
}

// Report feeds the actual elapsed time for the move just completed back
// into the PID controller, clamping the integral term against windup.
func (tm *TimeManager) Report(elapsed time.Duration) {
	target := tm.softBound
	err := elapsed - target
	tm.integral += err
	const windupClamp = 5 * time.Second
	if tm.integral > windupClamp {
		tm.integral = windupClamp
	}
	if tm.integral < -windupClamp {
		tm.integral = -windupClamp
	}
	tm.lastError = err
}

// Elapsed returns the time spent since Init.
func (tm *TimeManager) Elapsed() time.Duration { return time.Since(tm.startTime) }

// SoftBound returns the point at which the root loop stops starting new
// iterations.
func (tm *TimeManager) SoftBound() time.Duration { return tm.softBound }

// HardBound returns the point by which all workers must have returned.
func (tm *TimeManager) HardBound() time.Duration { return tm.hardBound }

// PastSoft reports whether the soft bound has elapsed.
func (tm *TimeManager) PastSoft() bool { return tm.Elapsed() >= tm.softBound }

// PastHard reports whether the hard bound has elapsed.
func (tm *TimeManager) PastHard() bool { return tm.Elapsed() >= tm.hardBound }

// AdjustForStability shrinks the soft bound when the best move has been
// stable across several consecutive depths, letting the search stop early
// with confidence.
func (tm *TimeManager) AdjustForStability(stability int) {
	switch {
	case stability >= 6:
		tm.softBound = tm.softBound * 40 / 100
	case stability >= 4:
		tm.softBound = tm.softBound * 60 / 100
	case stability >= 2:
		tm.softBound = tm.softBound * 80 / 100
	}
}

// AdjustForInstability grows the soft bound (up to the hard bound) when
// the best move keeps changing between depths.
func (tm *TimeManager) AdjustForInstability(changes int) {
	switch {
	case changes >= 4:
		tm.softBound = tm.softBound * 200 / 100
	case changes >= 2:
		tm.softBound = tm.softBound * 150 / 100
	}
	if tm.softBound > tm.hardBound {
		tm.softBound = tm.hardBound
	}
}
