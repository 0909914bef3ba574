// Package storage persists simulation runs: one directory per run with
// metadata.json (configuration, options, statistics) and history.csv
// (the sampled snapshot series), plus JSON export for other tools.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/tokasim/internal/reactor"
)

// HistoryColumns is the schema of history.csv, in order.
var HistoryColumns = []string{
	"time",
	"temperature",
	"density",
	"confinement_time",
	"q_factor",
	"fusion_power",
	"net_power",
	"safety_factor",
	"beta",
	"tbr",
	"wall_loading",
	"first_wall_temp",
	"material_damage",
	"tritium_inventory",
	"deuterium_inventory",
	"operational",
	"failed",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// StatsRecord mirrors reactor.Stats with a JSON-safe runtime projection
// (encoding/json cannot represent +Inf, so an indefinite projection is
// stored as a missing value).
type StatsRecord struct {
	MaxOperationTime   float64  `json:"max_operation_time"`
	Failed             bool     `json:"failed"`
	FailureCause       string   `json:"failure_cause,omitempty"`
	AverageQ           float64  `json:"average_q_factor"`
	MaxQ               float64  `json:"max_q_factor"`
	TotalEnergy        float64  `json:"total_energy_produced"`
	RuntimeProjection  *float64 `json:"runtime_projection,omitempty"`
	LimitingFactor     string   `json:"limiting_factor"`
	CanRunIndefinitely bool     `json:"can_run_indefinitely"`
}

func toStatsRecord(stats reactor.Stats) StatsRecord {
	rec := StatsRecord{
		MaxOperationTime:   stats.MaxOperationTime,
		Failed:             stats.Failed,
		FailureCause:       stats.FailureCause,
		AverageQ:           stats.AverageQ,
		MaxQ:               stats.MaxQ,
		TotalEnergy:        stats.TotalEnergy,
		LimitingFactor:     stats.LimitingFactor,
		CanRunIndefinitely: stats.CanRunIndefinitely,
	}
	if !stats.CanRunIndefinitely {
		projection := stats.RuntimeProjection
		rec.RuntimeProjection = &projection
	}
	return rec
}

// Stats converts the record back to engine statistics.
func (r StatsRecord) Stats() reactor.Stats {
	stats := reactor.Stats{
		MaxOperationTime:   r.MaxOperationTime,
		Failed:             r.Failed,
		FailureCause:       r.FailureCause,
		AverageQ:           r.AverageQ,
		MaxQ:               r.MaxQ,
		TotalEnergy:        r.TotalEnergy,
		LimitingFactor:     r.LimitingFactor,
		CanRunIndefinitely: r.CanRunIndefinitely,
		RuntimeProjection:  math.Inf(1),
	}
	if r.RuntimeProjection != nil {
		stats.RuntimeProjection = *r.RuntimeProjection
	}
	return stats
}

type RunMetadata struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	Dt           float64        `json:"dt"`
	MaxTime      float64        `json:"max_time"`
	SaveInterval float64        `json:"save_interval"`
	Config       reactor.Config `json:"config"`
	Stats        StatsRecord    `json:"stats"`
}

// Save writes the run to a fresh directory and returns its ID.
func (s *Store) Save(cfg reactor.Config, opts reactor.RunOptions, result *reactor.Result) (string, error) {
	runID := fmt.Sprintf("run_%s", uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Timestamp:    time.Now(),
		Dt:           opts.Dt,
		MaxTime:      opts.MaxTime,
		SaveInterval: opts.SaveInterval,
		Config:       cfg,
		Stats:        toStatsRecord(result.Stats),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(HistoryColumns); err != nil {
		return "", err
	}
	for _, snap := range result.History {
		if err := w.Write(historyRow(snap)); err != nil {
			return "", err
		}
	}

	return runID, w.Error()
}

func historyRow(snap reactor.Snapshot) []string {
	values := []float64{
		snap.Time,
		snap.Plasma.Temperature,
		snap.Plasma.Density,
		snap.Plasma.ConfinementTime,
		snap.Power.QFactor,
		snap.Power.FusionPower,
		snap.Power.NetPower,
		snap.Magnetic.SafetyFactor,
		snap.Magnetic.Beta,
		snap.Neutronics.BreedingRatio,
		snap.Neutronics.WallLoading,
		snap.FirstWallTemp,
		snap.MaterialDamage,
		snap.TritiumInventory,
		snap.DeuteriumInventory,
		boolToFloat(snap.Operational),
		boolToFloat(snap.Failed),
	}
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return row
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// List returns the metadata of every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) historyPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "history.csv")
}

// LoadHistory reads one run's sampled series, returning the column
// header and the numeric rows.
func (s *Store) LoadHistory(runID string) ([]string, [][]float64, error) {
	file, err := os.Open(s.historyPath(runID))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("storage: run %s has an empty history", runID)
	}

	header := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: run %s: bad value %q: %w", runID, field, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// Column returns the named series from loaded history rows.
func Column(header []string, rows [][]float64, name string) ([]float64, bool) {
	idx := -1
	for i, col := range header {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	series := make([]float64, len(rows))
	for i, row := range rows {
		if idx >= len(row) {
			return nil, false
		}
		series[i] = row[idx]
	}
	return series, true
}
