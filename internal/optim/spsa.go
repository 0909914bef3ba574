package optim

import (
	"context"
	"math"
	"math/rand"

	"github.com/san-kum/tokasim/internal/reactor"
)

// SPSA implements simultaneous perturbation stochastic approximation:
// each iteration perturbs all tunable fields at once with a random
// +/- pattern, estimates the gradient from the two scores and steps
// against it. Cheap in evaluations compared to finite differences.
type SPSA struct {
	bounds     Bounds
	iterations int
	rng        *rand.Rand

	// Gain sequences a_k = a/(k+1)^alpha, c_k = c/(k+1)^gamma.
	a, c, alpha, gamma float64
}

// NewSPSA builds an optimizer with the standard gain schedule.
func NewSPSA(bounds Bounds, iterations int, seed int64) *SPSA {
	return &SPSA{
		bounds:     bounds,
		iterations: iterations,
		rng:        rand.New(rand.NewSource(seed)),
		a:          1.0,
		c:          0.1,
		alpha:      0.602,
		gamma:      0.101,
	}
}

// perturbationScales are the per-field magnitudes of one SPSA
// perturbation, matched to the natural scale of each parameter.
var perturbationScales = map[string]float64{
	FieldMajorRadius:        0.5,
	FieldMinorRadius:        0.2,
	FieldElongation:         0.1,
	FieldToroidalField:      1.0,
	FieldPlasmaCurrent:      1e6,
	FieldInitialTemperature: 10e6,
	FieldInitialDensity:     0.1e20,
}

// perturbationFields fixes the iteration order so a seeded run is
// reproducible (map iteration order is not).
var perturbationFields = []string{
	FieldMajorRadius,
	FieldMinorRadius,
	FieldElongation,
	FieldToroidalField,
	FieldPlasmaCurrent,
	FieldInitialTemperature,
	FieldInitialDensity,
}

// Search descends from initial for the configured iteration budget.
func (s *SPSA) Search(ctx context.Context, initial reactor.Config, objective Objective) (*SearchResult, error) {
	current := initial
	result := &SearchResult{Best: Evaluation{Score: math.Inf(-1)}}

	for k := 0; k < s.iterations; k++ {
		select {
		case <-ctx.Done():
			if result.Iterations == 0 {
				return nil, ctx.Err()
			}
			return result, ctx.Err()
		default:
		}

		ak := s.a / math.Pow(float64(k+1), s.alpha)
		ck := s.c / math.Pow(float64(k+1), s.gamma)

		perturbation := s.perturbation(ck)
		negative := make(map[string]float64, len(perturbation))
		for field, delta := range perturbation {
			negative[field] = -delta
		}

		plus, err := WithChanges(current, s.bounds, perturbation)
		if err != nil {
			return nil, err
		}
		minus, err := WithChanges(current, s.bounds, negative)
		if err != nil {
			return nil, err
		}

		evPlus, errPlus := objective(ctx, plus)
		evMinus, errMinus := objective(ctx, minus)
		if errPlus != nil && errMinus != nil {
			return nil, errPlus
		}
		if errPlus != nil {
			evPlus = Evaluation{Config: plus, Score: math.Inf(-1)}
		}
		if errMinus != nil {
			evMinus = Evaluation{Config: minus, Score: math.Inf(-1)}
		}

		// g_k[f] = (score+ - score-) / (2 c_k delta[f]); step is -a_k g_k.
		update := make(map[string]float64, len(perturbation))
		for field, delta := range perturbation {
			if math.Abs(delta) < 1e-10 {
				continue
			}
			gradient := (evPlus.Score - evMinus.Score) / (2.0 * ck * delta)
			update[field] = -ak * gradient
		}
		current, err = WithChanges(current, s.bounds, update)
		if err != nil {
			return nil, err
		}

		better := evPlus
		if evMinus.Score > evPlus.Score {
			better = evMinus
		}
		result.Iterations++
		result.History = append(result.History, better)
		if better.Score > result.Best.Score {
			result.Best = better
		}
	}

	if result.Iterations == 0 {
		return nil, ErrNoCandidates
	}
	return result, nil
}

func (s *SPSA) perturbation(ck float64) map[string]float64 {
	deltas := make(map[string]float64, len(perturbationFields))
	for _, field := range perturbationFields {
		sign := 1.0
		if s.rng.Intn(2) == 0 {
			sign = -1.0
		}
		deltas[field] = sign * ck * perturbationScales[field]
	}
	return deltas
}
