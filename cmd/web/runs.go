package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

// AnalysisRun is one user-triggered analysis: the parameters used and
// the per-record results. Runs are kept so the UI can re-render tables,
// plots and CSV downloads without re-uploading the input.
type AnalysisRun struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	WindowSize int            `json:"window_size"`
	StepSize   int            `json:"step_size"`
	CreatedAt  time.Time      `json:"created_at"`
	Results    []RecordResult `json:"results"`
}

// run store configuration; set from flags in main. "json" keeps a
// single file, "sqlite" keeps a table with the results as a JSON blob.
var (
	runsStore = "json"
	runsPath  = "runs.json"
	runsDB    *sql.DB
)

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        source TEXT,
        window_size INTEGER,
        step_size INTEGER,
        created_at TEXT,
        results TEXT
    )`); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func saveRuns(path string, runs []AnalysisRun) error {
	if runsStore == "sqlite" {
		if runsDB == nil {
			return fmt.Errorf("sqlite runs store not initialized")
		}
		for _, r := range runs {
			blob, err := json.Marshal(r.Results)
			if err != nil {
				return fmt.Errorf("marshal results for run %s: %w", r.ID, err)
			}
			if _, err := runsDB.Exec(
				`INSERT OR REPLACE INTO runs (id, source, window_size, step_size, created_at, results) VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, r.Source, r.WindowSize, r.StepSize, r.CreatedAt.UTC().Format(time.RFC3339), string(blob),
			); err != nil {
				return fmt.Errorf("insert run %s: %w", r.ID, err)
			}
		}
		return nil
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func loadRuns(path string) ([]AnalysisRun, error) {
	if runsStore == "sqlite" {
		if runsDB == nil {
			return nil, fmt.Errorf("sqlite runs store not initialized")
		}
		rows, err := runsDB.Query(`SELECT id, source, window_size, step_size, created_at, results FROM runs`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		var runs []AnalysisRun
		for rows.Next() {
			var r AnalysisRun
			var created, blob string
			if err := rows.Scan(&r.ID, &r.Source, &r.WindowSize, &r.StepSize, &created, &blob); err != nil {
				return nil, err
			}
			if t, err := time.Parse(time.RFC3339, created); err == nil {
				r.CreatedAt = t
			}
			if err := json.Unmarshal([]byte(blob), &r.Results); err != nil {
				return nil, fmt.Errorf("unmarshal results for run %s: %w", r.ID, err)
			}
			runs = append(runs, r)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		sortRuns(runs)
		return runs, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []AnalysisRun
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, err
	}
	sortRuns(runs)
	return runs, nil
}

// sortRuns orders newest first for display.
func sortRuns(runs []AnalysisRun) {
	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt.After(runs[j].CreatedAt) })
}

// appendRun persists a new run on top of the existing history.
func appendRun(path string, run AnalysisRun) error {
	if runsStore == "sqlite" {
		return saveRuns(path, []AnalysisRun{run})
	}
	runs, err := loadRuns(path)
	if err != nil {
		return err
	}
	runs = append(runs, run)
	return saveRuns(path, runs)
}

// findRun returns the stored run with the given id.
func findRun(path, id string) (*AnalysisRun, error) {
	runs, err := loadRuns(path)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		if runs[i].ID == id {
			return &runs[i], nil
		}
	}
	return nil, nil
}

func newRunID(t time.Time) string {
	return fmt.Sprintf("run-%d", t.UnixNano())
}
