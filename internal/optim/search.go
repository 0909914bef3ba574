package optim

import (
	"context"
	"errors"
	"math"
	"math/rand"
)

// ErrNoCandidates is returned when every sampled candidate failed to
// evaluate.
var ErrNoCandidates = errors.New("optim: no candidate could be evaluated")

// SearchResult holds the winner and the full evaluation trail.
type SearchResult struct {
	Best       Evaluation
	History    []Evaluation
	Iterations int
}

// RandomSearch samples configurations uniformly within bounds and keeps
// the best score. Each search owns its RNG, so a fixed seed reproduces
// the exact candidate sequence.
type RandomSearch struct {
	bounds  Bounds
	samples int
	rng     *rand.Rand
}

// NewRandomSearch builds a sampler for the given bounds and budget.
func NewRandomSearch(bounds Bounds, samples int, seed int64) *RandomSearch {
	return &RandomSearch{
		bounds:  bounds,
		samples: samples,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Search evaluates candidates until the sample budget or ctx runs out.
func (s *RandomSearch) Search(ctx context.Context, objective Objective) (*SearchResult, error) {
	result := &SearchResult{Best: Evaluation{Score: math.Inf(-1)}}

	for i := 0; i < s.samples; i++ {
		select {
		case <-ctx.Done():
			if result.Iterations == 0 {
				return nil, ctx.Err()
			}
			return result, ctx.Err()
		default:
		}

		cfg := s.bounds.Random(s.rng)
		ev, err := objective(ctx, cfg)
		if err != nil {
			// Candidates that cannot even be constructed score nothing.
			continue
		}
		result.Iterations++
		result.History = append(result.History, ev)
		if ev.Score > result.Best.Score {
			result.Best = ev
		}
	}

	if result.Iterations == 0 {
		return nil, ErrNoCandidates
	}
	return result, nil
}
