package solver

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// Distribution names the probability family a biased policy samples from.
type Distribution string

const (
	DistGeometric  Distribution = "geometric"
	DistTriangular Distribution = "triangular"
)

// CandidateStream yields savings candidates one at a time for a single
// trial. Once drawn, a candidate is never offered again within the trial.
type CandidateStream interface {
	Next() (Saving, bool)
}

// SelectionPolicy decides the order in which the merge engine sees savings
// candidates. Stream is called once per trial with the immutable savings
// list and that trial's private RNG; the returned stream owns its remaining-
// candidate state for the duration of the trial.
type SelectionPolicy interface {
	Stream(savings []Saving, rng *rand.Rand) CandidateStream
}

// NewPolicy builds a policy from its wire-level configuration. The
// deterministic policy ignores distribution and bias.
func NewPolicy(name string, dist Distribution, bias float64) (SelectionPolicy, error) {
	switch name {
	case "deterministic":
		return DeterministicPolicy{}, nil
	case "biased":
		return NewBiasedPolicy(dist, bias)
	default:
		return nil, fmt.Errorf("new policy: unknown policy %q: %w", name, ErrConfiguration)
	}
}

// DeterministicPolicy yields the savings list in its stored descending
// order. One trial with it reproduces the classical Clarke-Wright solution.
type DeterministicPolicy struct{}

func (DeterministicPolicy) Stream(savings []Saving, _ *rand.Rand) CandidateStream {
	return &orderedStream{savings: savings}
}

type orderedStream struct {
	savings []Saving
	next    int
}

func (s *orderedStream) Next() (Saving, bool) {
	if s.next >= len(s.savings) {
		return Saving{}, false
	}
	c := s.savings[s.next]
	s.next++
	return c, true
}

// BiasedPolicy replaces strict greedy order with a skewed-probability draw
// over the still-available candidates, re-normalized after every draw so
// the surviving front-runners keep their edge.
//
// Probability mass, for n remaining candidates ranked k = 0..n-1:
//
//   - geometric, bias q in [0,1): P(k) proportional to q^k, sampled as
//     floor(ln U / ln q) mod n. q = 0 always picks rank 0.
//   - triangular, bias b in [0,1]: a decreasing triangle over the window
//     w = max(1, ceil(b*n)), sampled as floor(w*(1-sqrt(U))). b = 0
//     always picks rank 0; b = 1 spans the whole remaining list.
//
// In both families a bias of zero degenerates to the deterministic policy.
type BiasedPolicy struct {
	dist Distribution
	bias float64
}

func NewBiasedPolicy(dist Distribution, bias float64) (*BiasedPolicy, error) {
	switch dist {
	case DistGeometric:
		if bias < 0 || bias >= 1 {
			return nil, fmt.Errorf("new biased policy: geometric bias %g outside [0,1): %w", bias, ErrConfiguration)
		}
	case DistTriangular:
		if bias < 0 || bias > 1 {
			return nil, fmt.Errorf("new biased policy: triangular bias %g outside [0,1]: %w", bias, ErrConfiguration)
		}
	default:
		return nil, fmt.Errorf("new biased policy: unknown distribution %q: %w", dist, ErrConfiguration)
	}
	return &BiasedPolicy{dist: dist, bias: bias}, nil
}

func (p *BiasedPolicy) Stream(savings []Saving, rng *rand.Rand) CandidateStream {
	return &biasedStream{
		remaining: slices.Clone(savings),
		dist:      p.dist,
		bias:      p.bias,
		rng:       rng,
	}
}

// biasedStream owns the shrinking remaining-candidate list for one trial.
type biasedStream struct {
	remaining []Saving
	dist      Distribution
	bias      float64
	rng       *rand.Rand
}

func (s *biasedStream) Next() (Saving, bool) {
	n := len(s.remaining)
	if n == 0 {
		return Saving{}, false
	}
	k := s.draw(n)
	c := s.remaining[k]
	s.remaining = slices.Delete(s.remaining, k, k+1)
	return c, true
}

func (s *biasedStream) draw(n int) int {
	if s.bias == 0 {
		return 0
	}
	// 1-Float64() keeps U in (0,1], so the logarithm stays finite.
	u := 1 - s.rng.Float64()
	switch s.dist {
	case DistGeometric:
		return int(math.Log(u)/math.Log(s.bias)) % n
	default: // DistTriangular
		w := int(math.Ceil(s.bias * float64(n)))
		if w < 1 {
			w = 1
		}
		k := int(float64(w) * (1 - math.Sqrt(u)))
		if k >= w {
			k = w - 1
		}
		return k
	}
}
