package engine

import "time"

// Difficulty is the ordered set of play strengths the engine can target.
type Difficulty int

const (
	Braindead Difficulty = iota
	Easy
	Medium
	Hard
	Grandmaster
	Experimental
)

func (d Difficulty) String() string {
	switch d {
	case Braindead:
		return "braindead"
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Grandmaster:
		return "grandmaster"
	case Experimental:
		return "experimental"
	default:
		return "unknown"
	}
}

// DifficultySettings is the configuration record attached to each
// difficulty level.
type DifficultySettings struct {
	ThreadCount        int
	TimeBudgetFraction float64
	RandomErrorProb    float64
	BookMaxPly         int
	EnablePondering    bool
	EnableVCF          bool
	EnableParallel     bool
}

// difficultyTable maps each Difficulty to its settings.
var difficultyTable = map[Difficulty]DifficultySettings{
	Braindead:    {ThreadCount: 1, TimeBudgetFraction: 0.05, RandomErrorProb: 0.10, BookMaxPly: 0, EnablePondering: false, EnableVCF: false, EnableParallel: false},
	Easy:         {ThreadCount: 2, TimeBudgetFraction: 0.20, BookMaxPly: 4, EnableVCF: false, EnableParallel: true},
	Medium:       {ThreadCount: 3, TimeBudgetFraction: 0.50, BookMaxPly: 8, EnableVCF: true, EnableParallel: true},
	Hard:         {ThreadCount: 4, TimeBudgetFraction: 0.75, BookMaxPly: 12, EnableVCF: true, EnableParallel: true},
	Grandmaster:  {ThreadCount: 0, TimeBudgetFraction: 1.00, BookMaxPly: 20, EnablePondering: true, EnableVCF: true, EnableParallel: true},
	Experimental: {ThreadCount: 0, TimeBudgetFraction: 1.00, BookMaxPly: 20, EnablePondering: true, EnableVCF: true, EnableParallel: true},
}

// Settings returns d's configuration record. ThreadCount == 0 means
// "use DefaultWorkerCount()" (Grandmaster/Experimental's cores/2-1 rule).
func (d Difficulty) Settings() DifficultySettings {
	return difficultyTable[d]
}

// ResolvedThreadCount returns the settings' thread count, substituting
// DefaultWorkerCount() for the Grandmaster/Experimental "0 means default"
// sentinel.
func (s DifficultySettings) ResolvedThreadCount() int {
	if s.ThreadCount > 0 {
		return s.ThreadCount
	}
	return DefaultWorkerCount()
}

// DifficultyMultiplier maps d to the time-allocation multiplier consumed
// by TimeManager.
func DifficultyMultiplier(d Difficulty) float64 {
	switch d {
	case Braindead:
		return 0.05
	case Easy:
		return 0.20
	case Medium:
		return 0.50
	case Hard:
		return 0.75
	default:
		return 1.00
	}
}

// vcfTimeSlice is the fraction of the move's time budget spent on VCF
// before falling back to the main search.
const vcfTimeSlice = 0.05

// vcfBudget returns the absolute duration available to the VCF solver.
func vcfBudget(soft time.Duration) time.Duration {
	return time.Duration(float64(soft) * vcfTimeSlice)
}
