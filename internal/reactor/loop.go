package reactor

import (
	"context"

	"github.com/san-kum/tokasim/internal/materials"
)

// Simulator drives the compute/evolve cycle for one configuration.
type Simulator struct {
	cfg      Config
	computer *StateComputer
	evolver  Evolver
	state    MutableState
}

// New validates the configuration and builds a Simulator.
func New(cfg Config) (*Simulator, error) {
	if cfg.MajorRadius <= 0 || cfg.MinorRadius <= 0 || cfg.Elongation <= 0 {
		return nil, ErrInvalidGeometry
	}
	if cfg.InitialDensity <= 0 {
		return nil, ErrInvalidDensity
	}
	computer, err := NewStateComputer(cfg)
	if err != nil {
		return nil, err
	}
	sim := &Simulator{cfg: cfg, computer: computer}
	sim.state.Reset(cfg)
	return sim, nil
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config { return s.cfg }

// FirstWall returns the resolved first wall material.
func (s *Simulator) FirstWall() materials.Material { return s.computer.FirstWall() }

// Reset restores initial conditions and returns the t=0 snapshot.
func (s *Simulator) Reset() Snapshot {
	s.state.Reset(s.cfg)
	return s.computer.Compute(&s.state)
}

// Step advances the simulation one tick from prev and returns the new
// snapshot. Used by interactive drivers; Run wraps it with sampling and
// termination handling.
func (s *Simulator) Step(dt float64, prev Snapshot) Snapshot {
	s.evolver.Step(&s.state, dt, prev)
	return s.computer.Compute(&s.state)
}

// Run executes the simulation until MaxTime, failure, or ctx
// cancellation, whichever comes first.
//
// Run resets the simulator, so each call is an independent function of
// the configuration and options.
func (s *Simulator) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Dt <= 0 {
		return nil, ErrInvalidTimestep
	}
	if opts.MaxTime <= 0 {
		return nil, ErrInvalidMaxTime
	}
	if opts.SaveInterval < 0 {
		return nil, ErrInvalidSaveInterval
	}

	snap := s.Reset()
	history := []Snapshot{snap}
	lastSave := 0.0

	for snap.Time < opts.MaxTime && !snap.Failed {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		snap = s.Step(opts.Dt, snap)

		if snap.Time-lastSave >= opts.SaveInterval {
			history = append(history, snap)
			lastSave = snap.Time
		}
	}

	// The final snapshot is always retained even if it fell between
	// sample points.
	if history[len(history)-1].Time != snap.Time {
		history = append(history, snap)
	}

	return &Result{
		Final:   snap,
		History: history,
		Stats:   computeStats(snap, history, s.computer.FirstWall()),
	}, nil
}
