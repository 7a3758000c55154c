package engine

import (
	"testing"
	"time"
)

func TestDifficultySettingsTable(t *testing.T) {
	s := Hard.Settings()
	if s.ThreadCount != 4 || !s.EnableVCF || !s.EnableParallel {
		t.Errorf("unexpected Hard settings: %+v", s)
	}
	if Braindead.Settings().EnableVCF {
		t.Error("Braindead must not run VCF")
	}
}

func TestResolvedThreadCountFallsBackToDefault(t *testing.T) {
	s := Grandmaster.Settings()
	if s.ThreadCount != 0 {
		t.Fatalf("expected Grandmaster's sentinel ThreadCount 0, got %d", s.ThreadCount)
	}
	if got := s.ResolvedThreadCount(); got != DefaultWorkerCount() {
		t.Errorf("expected fallback to DefaultWorkerCount(), got %d", got)
	}

	explicit := Hard.Settings()
	if got := explicit.ResolvedThreadCount(); got != 4 {
		t.Errorf("expected explicit thread count 4, got %d", got)
	}
}

func TestDifficultyMultiplierOrdering(t *testing.T) {
	if DifficultyMultiplier(Braindead) >= DifficultyMultiplier(Easy) {
		t.Error("Braindead should have a smaller time multiplier than Easy")
	}
	if DifficultyMultiplier(Hard) >= DifficultyMultiplier(Grandmaster) {
		t.Error("Hard should have a smaller time multiplier than Grandmaster")
	}
}

func TestVcfBudgetIsFractionOfSoftBound(t *testing.T) {
	soft := 2 * time.Second
	budget := vcfBudget(soft)
	if budget != 100*time.Millisecond {
		t.Errorf("expected 100ms (5%% of 2s), got %v", budget)
	}
}

func TestDifficultyString(t *testing.T) {
	cases := map[Difficulty]string{
		Braindead:    "braindead",
		Grandmaster:  "grandmaster",
		Experimental: "experimental",
	}
	for d, want := range cases {
		if got := d.String(); got != want {
			t.Errorf("Difficulty(%d).String() = %q, want %q", d, got, want)
		}
	}
}
