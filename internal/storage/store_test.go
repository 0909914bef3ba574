package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/tokasim/internal/reactor"
)

func sampleResult() *reactor.Result {
	history := make([]reactor.Snapshot, 0, 3)
	for i, q := range []float64{2.0, 5.0, math.Inf(1)} {
		var snap reactor.Snapshot
		snap.Time = float64(i) * 10.0
		snap.Plasma.Temperature = 150e6
		snap.Plasma.Density = 1e20
		snap.Power.QFactor = q
		snap.Power.FusionPower = 500e6
		snap.Operational = true
		history = append(history, snap)
	}
	final := history[len(history)-1]
	return &reactor.Result{
		Final:   final,
		History: history,
		Stats: reactor.Stats{
			MaxOperationTime:  20.0,
			AverageQ:          3.5,
			MaxQ:              5.0,
			TotalEnergy:       1e10,
			RuntimeProjection: 1e5,
			LimitingFactor:    "Tritium inventory depletion",
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := reactor.DefaultConfig()
	opts := reactor.DefaultRunOptions()
	runID, err := store.Save(cfg, opts, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(runID, "run_") {
		t.Errorf("unexpected run ID format: %s", runID)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.ID != runID {
		t.Errorf("expected ID %s, got %s", runID, meta.ID)
	}
	if meta.Config != cfg {
		t.Error("config did not round-trip")
	}
	if meta.Dt != opts.Dt || meta.MaxTime != opts.MaxTime {
		t.Error("run options did not round-trip")
	}
	if got := meta.Stats.Stats(); got.AverageQ != 3.5 || got.RuntimeProjection != 1e5 {
		t.Errorf("stats did not round-trip: %+v", got)
	}
}

func TestHistoryRoundTripsInfinity(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save(reactor.DefaultConfig(), reactor.DefaultRunOptions(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	header, rows, err := store.LoadHistory(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	q, ok := Column(header, rows, "q_factor")
	if !ok {
		t.Fatal("q_factor column missing")
	}
	if q[0] != 2.0 || q[1] != 5.0 {
		t.Errorf("finite values did not round-trip: %v", q)
	}
	if !math.IsInf(q[2], 1) {
		t.Errorf("infinite Q did not round-trip, got %g", q[2])
	}

	if _, ok := Column(header, rows, "flux_capacitor"); ok {
		t.Error("expected unknown column to miss")
	}
}

func TestIndefiniteProjectionOmittedFromJSON(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	result := sampleResult()
	result.Stats.RuntimeProjection = math.Inf(1)
	result.Stats.CanRunIndefinitely = true
	result.Stats.LimitingFactor = "None (can run indefinitely)"

	runID, err := store.Save(reactor.DefaultConfig(), reactor.DefaultRunOptions(), result)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Stats.RuntimeProjection != nil {
		t.Error("indefinite projection should be omitted")
	}
	stats := meta.Stats.Stats()
	if !math.IsInf(stats.RuntimeProjection, 1) {
		t.Errorf("expected +Inf back, got %g", stats.RuntimeProjection)
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected an empty store, got %d runs", len(runs))
	}

	for i := 0; i < 3; i++ {
		if _, err := store.Save(reactor.DefaultConfig(), reactor.DefaultRunOptions(), sampleResult()); err != nil {
			t.Fatal(err)
		}
	}

	runs, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

func TestExportJSONNullsInfinities(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save(reactor.DefaultConfig(), reactor.DefaultRunOptions(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.ExportJSON(&buf, runID); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(data.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(data.Rows))
	}

	qIdx := -1
	for i, col := range data.Columns {
		if col == "q_factor" {
			qIdx = i
		}
	}
	if qIdx < 0 {
		t.Fatal("q_factor column missing from export")
	}
	if data.Rows[2][qIdx] != nil {
		t.Errorf("infinite Q should export as null, got %v", data.Rows[2][qIdx])
	}
	if data.Rows[0][qIdx] != 2.0 {
		t.Errorf("expected 2.0, got %v", data.Rows[0][qIdx])
	}
}

func TestExportCSVMatchesStoredFile(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save(reactor.DefaultConfig(), reactor.DefaultRunOptions(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.ExportCSV(&buf, runID); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 { // header + 3 rows
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != strings.Join(HistoryColumns, ",") {
		t.Errorf("unexpected header: %s", lines[0])
	}
}
