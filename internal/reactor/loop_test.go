package reactor

import (
	"context"
	"errors"
	"testing"
)

// healthyConfig is a machine that stays stable and ignited: a strong
// field keeps q high and a dense plasma meets Lawson from the start.
func healthyConfig() Config {
	cfg := DefaultConfig()
	cfg.ToroidalField = 12.0
	cfg.PlasmaCurrent = 5e6
	cfg.InitialDensity = 3e20
	return cfg
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero major radius", func(c *Config) { c.MajorRadius = 0 }, ErrInvalidGeometry},
		{"negative minor radius", func(c *Config) { c.MinorRadius = -1 }, ErrInvalidGeometry},
		{"zero elongation", func(c *Config) { c.Elongation = 0 }, ErrInvalidGeometry},
		{"zero density", func(c *Config) { c.InitialDensity = 0 }, ErrInvalidDensity},
		{"unknown wall", func(c *Config) { c.FirstWallMaterial = "mystery" }, ErrUnknownMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRunOptionValidation(t *testing.T) {
	sim, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts RunOptions
		want error
	}{
		{"zero dt", RunOptions{MaxTime: 10, Dt: 0}, ErrInvalidTimestep},
		{"negative dt", RunOptions{MaxTime: 10, Dt: -1}, ErrInvalidTimestep},
		{"zero max time", RunOptions{MaxTime: 0, Dt: 1}, ErrInvalidMaxTime},
		{"negative save interval", RunOptions{MaxTime: 10, Dt: 1, SaveInterval: -1}, ErrInvalidSaveInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sim.Run(context.Background(), tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRunDefaultConfigFailsImmediately(t *testing.T) {
	sim, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	result, err := sim.Run(context.Background(), RunOptions{MaxTime: 7200, Dt: 1.0, SaveInterval: 10.0})
	if err != nil {
		t.Fatal(err)
	}

	if !result.Final.Failed {
		t.Fatal("expected the default machine to disrupt")
	}
	if result.Final.FailureCause != "Safety factor too low (plasma instability)" {
		t.Errorf("unexpected cause: %s", result.Final.FailureCause)
	}
	if result.Stats.MaxOperationTime != 0 {
		t.Errorf("q is already critical at t=0, got operation time %g", result.Stats.MaxOperationTime)
	}
}

func TestRunHealthyConfigCompletes(t *testing.T) {
	sim, err := New(healthyConfig())
	if err != nil {
		t.Fatal(err)
	}

	result, err := sim.Run(context.Background(), RunOptions{MaxTime: 7200, Dt: 1.0, SaveInterval: 10.0})
	if err != nil {
		t.Fatal(err)
	}

	if result.Final.Failed {
		t.Fatalf("expected a full run, failed at t=%g: %s", result.Final.Time, result.Final.FailureCause)
	}
	if result.Final.Time < 7200 {
		t.Errorf("expected to reach max time, stopped at %g", result.Final.Time)
	}
	if !result.Final.Plasma.MeetsLawson {
		t.Error("expected an ignited plasma at the end of the run")
	}
	if result.Stats.MaxQ < 10 {
		t.Errorf("expected a strongly burning plasma, max Q = %g", result.Stats.MaxQ)
	}

	// History is monotone and respects the sample interval.
	for i := 1; i < len(result.History); i++ {
		if result.History[i].Time <= result.History[i-1].Time {
			t.Fatalf("history times not increasing at %d", i)
		}
	}
	if last := result.History[len(result.History)-1]; last.Time != result.Final.Time {
		t.Error("final snapshot missing from history")
	}
}

func TestRunStopsOnFailure(t *testing.T) {
	// Stable for 30 s, then the safety factor deadline hits.
	cfg := DefaultConfig()
	cfg.ToroidalField = 7.5

	sim, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	result, err := sim.Run(context.Background(), RunOptions{MaxTime: 7200, Dt: 1.0, SaveInterval: 10.0})
	if err != nil {
		t.Fatal(err)
	}

	if !result.Final.Failed {
		t.Fatal("expected failure")
	}
	if result.Final.Time <= 30 || result.Final.Time > 60 {
		t.Errorf("expected failure just after the grace period, got t=%g", result.Final.Time)
	}
	for _, snap := range result.History[:len(result.History)-1] {
		if snap.Failed {
			t.Fatal("history contains snapshots past the failure point")
		}
	}
}

func TestRunHonorsContext(t *testing.T) {
	sim, err := New(healthyConfig())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := sim.Run(ctx, RunOptions{MaxTime: 7200, Dt: 1.0, SaveInterval: 10.0})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result != nil {
		t.Error("expected no result after cancellation")
	}
}

func TestResetRestoresInitialConditions(t *testing.T) {
	sim, err := New(healthyConfig())
	if err != nil {
		t.Fatal(err)
	}

	snap := sim.Reset()
	for i := 0; i < 10; i++ {
		snap = sim.Step(1.0, snap)
	}
	if snap.Time != 10.0 {
		t.Fatalf("expected t=10, got %g", snap.Time)
	}

	snap = sim.Reset()
	if snap.Time != 0 {
		t.Errorf("reset did not rewind time: %g", snap.Time)
	}
	if snap.Plasma.Temperature != healthyConfig().InitialTemperature {
		t.Errorf("reset did not restore temperature: %g", snap.Plasma.Temperature)
	}
}
