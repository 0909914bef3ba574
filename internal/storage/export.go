package storage

import (
	"encoding/json"
	"io"
	"math"
	"os"
)

// ExportData is the JSON export schema: run metadata plus the sampled
// series as column-ordered rows. Non-finite values (infinite Q factors
// and breeding ratios) become null, since JSON has no Inf.
type ExportData struct {
	Metadata RunMetadata `json:"metadata"`
	Columns  []string    `json:"columns"`
	Rows     [][]any     `json:"rows"`
}

// Export gathers a stored run into its export form.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	header, rows, err := s.LoadHistory(runID)
	if err != nil {
		return nil, err
	}

	out := &ExportData{Metadata: *meta, Columns: header}
	out.Rows = make([][]any, len(rows))
	for i, row := range rows {
		jsonRow := make([]any, len(row))
		for j, v := range row {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				jsonRow[j] = nil
			} else {
				jsonRow[j] = v
			}
		}
		out.Rows[i] = jsonRow
	}
	return out, nil
}

// ExportJSON writes a stored run as indented JSON to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	data, err := s.Export(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies a stored run's history.csv to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	file, err := os.Open(s.historyPath(runID))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(w, file)
	return err
}
