package multigrid

import (
	"math"
	"testing"
)

// rendered models the fraction of pixels refined at a threshold: everything
// at zero, falling off as the threshold grows.
func rendered(threshold float64) float64 {
	return math.Exp(-3 * threshold)
}

func TestSeekerConverges(t *testing.T) {
	targets := []float64{0.1, 0.3, 0.5, 0.8}

	for _, target := range targets {
		s := NewSeeker(target, 2)
		done := false
		for !done {
			done = s.Step(rendered(s.Threshold()))
		}

		if s.Steps() > s.Leash {
			t.Errorf("target %v: leash ran out, threshold %v gives %v",
				target, s.Threshold(), rendered(s.Threshold()))
			continue
		}
		if got := rendered(s.Threshold()); math.Abs(got-target) >= s.Tolerance {
			t.Errorf("target %v: converged to %v at threshold %v", target, got, s.Threshold())
		}
	}
}

func TestSeekerFirstStepIsBlindJump(t *testing.T) {
	s := NewSeeker(0.5, 1)
	if s.Step(0.7) {
		t.Fatal("Step reported done")
	}
	if got := s.Threshold(); math.Abs(got-1.1) > 1e-12 {
		t.Errorf("Threshold() = %v, want 1.1", got)
	}
}

func TestSeekerClampsNegativeThreshold(t *testing.T) {
	s := NewSeeker(0.9, 0.01)
	s.Step(0.1)
	if got := s.Threshold(); got != 0.001 {
		t.Errorf("Threshold() = %v, want 0.001", got)
	}
}

func TestSeekerDoneWithinTolerance(t *testing.T) {
	s := NewSeeker(0.5, 0.3)
	if !s.Step(0.5004) {
		t.Error("Step within tolerance should report done")
	}
	if s.Threshold() != 0.3 {
		t.Errorf("Threshold() = %v, want unchanged 0.3", s.Threshold())
	}
}

func TestSeekerLeash(t *testing.T) {
	s := NewSeeker(0.5, 1)
	s.Leash = 3
	steps := 0
	for !s.Step(0.9) {
		steps++
		if steps > 10 {
			t.Fatal("leash did not stop the search")
		}
	}
	if s.Steps() != 4 {
		t.Errorf("Steps() = %d, want 4", s.Steps())
	}
}
