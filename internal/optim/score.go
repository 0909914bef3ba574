package optim

import (
	"context"
	"math"

	"github.com/san-kum/tokasim/internal/reactor"
)

// targetOperationTime is the operation-time milestone that earns the
// big score bonus (21 minutes).
const targetOperationTime = 1260.0 // s

// Evaluation is one scored candidate.
type Evaluation struct {
	Config reactor.Config
	Score  float64
	Stats  reactor.Stats
	Final  reactor.Snapshot
}

// Objective runs a candidate configuration and scores it.
type Objective func(ctx context.Context, cfg reactor.Config) (Evaluation, error)

// Score weighs a finished run: operation time dominates, with bonuses
// for gain, stability, ignition criteria and net electricity, and
// penalties for failing or dying young. Floored at -200.
func Score(stats reactor.Stats, final reactor.Snapshot) float64 {
	score := stats.MaxOperationTime / 60.0

	if stats.MaxOperationTime >= targetOperationTime {
		score += 100.0
	}

	q := final.Power.QFactor
	if !math.IsInf(q, 0) && q > 0 {
		score += math.Min(q*10.0, 50.0)
		if q > 10.0 {
			score += 50.0
		}
	}

	switch {
	case final.Magnetic.SafetyFactor >= 2.0:
		score += 20.0
	case final.Magnetic.SafetyFactor >= 1.5:
		score += 10.0
	}

	if final.Plasma.MeetsLawson {
		score += 30.0
	}
	if final.Power.ElectricalPower > 0 {
		score += 40.0
	}

	if stats.Failed {
		score -= 50.0
	}
	if stats.MaxOperationTime < 60.0 {
		score -= 100.0
	}

	return math.Max(score, -200.0)
}

// DefaultObjective builds a simulator for the candidate, runs it with
// opts and scores the result.
func DefaultObjective(opts reactor.RunOptions) Objective {
	return func(ctx context.Context, cfg reactor.Config) (Evaluation, error) {
		sim, err := reactor.New(cfg)
		if err != nil {
			return Evaluation{}, err
		}
		result, err := sim.Run(ctx, opts)
		if err != nil {
			return Evaluation{}, err
		}
		return Evaluation{
			Config: cfg,
			Score:  Score(result.Stats, result.Final),
			Stats:  result.Stats,
			Final:  result.Final,
		}, nil
	}
}
