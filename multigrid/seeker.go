package multigrid

import "math"

// Seeker searches for the threshold at which a frame measures a target
// value, typically the fraction of pixels the evaluator computed fresh.
// It takes one secant step per measured frame.
type Seeker struct {
	Target    float64
	Tolerance float64 // converged when |measured-Target| is below this
	Leash     int     // maximum steps before giving up

	threshold  float64
	prevErr    float64
	prevThresh float64
	stepped    bool
	slopeLimit float64
	steps      int
}

// NewSeeker returns a Seeker starting from threshold.
func NewSeeker(target, threshold float64) *Seeker {
	return &Seeker{
		Target:     target,
		Tolerance:  0.001,
		Leash:      50,
		threshold:  threshold,
		slopeLimit: 0.5,
	}
}

// Threshold returns the threshold the next frame should be rendered with.
func (s *Seeker) Threshold() float64 {
	return s.threshold
}

// Steps returns how many measurements have been taken.
func (s *Seeker) Steps() int {
	return s.steps
}

// Step records the value measured with the current threshold. It reports
// true once the measurement is within Tolerance of Target or the leash has
// run out, in which case Threshold is left unchanged.
func (s *Seeker) Step(measured float64) (done bool) {
	err := measured - s.Target
	s.steps++
	if math.Abs(err) < s.Tolerance || s.steps > s.Leash {
		return true
	}

	var next float64
	if !s.stepped {
		next = s.threshold + 0.5*err
		if next < 0 {
			next = 0.001
		}
	} else {
		if err*s.prevErr > 0 {
			// still on the same side, speed up
			s.slopeLimit *= 1.1
		} else {
			s.slopeLimit = min(s.slopeLimit, 0.5)
			s.slopeLimit *= 0.7
		}

		slope := s.slopeLimit
		if err != s.prevErr {
			slope = (s.threshold - s.prevThresh) / (err - s.prevErr)
		}
		slope = max(-s.slopeLimit, min(s.slopeLimit, slope))
		next = s.threshold - err*slope
	}

	s.prevErr = err
	s.prevThresh = s.threshold
	s.threshold = next
	s.stepped = true
	return false
}
