package config

import (
	"encoding/json"
	"os"
)

// Defaults for the sliding-window controls. They match the analyzer's
// interactive defaults; the UIs clamp user input to >= 1 before the
// engine sees it.
const (
	DefaultWindowSize = 100
	DefaultStepSize   = 10
)

type Config struct {
	InputFasta string `json:"input_fasta"`
	OutputJSON string `json:"output_json"`
	OutputCSV  string `json:"output_csv"`
	WindowSize int    `json:"window_size"`
	StepSize   int    `json:"step_size"`
	Parser     string `json:"parser"` // auto | biogo | builtin
	LogFile    string `json:"log_file"`
	LogLevel   string `json:"log_level"`
	RunsStore  string `json:"runs_store"` // json | sqlite
	RunsPath   string `json:"runs_path"`
}

// LoadConfig loads a JSON config from the given path. If path is empty,
// looks for ./config.json. A missing file is not fatal: defaults are
// returned so the flags alone can drive a run.
func LoadConfig(path string) (*Config, error) {
	c := &Config{WindowSize: DefaultWindowSize, StepSize: DefaultStepSize}
	if path == "" {
		path = "config.json"
	}
	f, err := os.Open(path)
	if err != nil {
		return c, nil
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(c); err != nil {
		return nil, err
	}
	if c.WindowSize <= 0 {
		c.WindowSize = DefaultWindowSize
	}
	if c.StepSize <= 0 {
		c.StepSize = DefaultStepSize
	}
	return c, nil
}
