// Package config persists user preferences between runs.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"fileren/internal/renamelog"
	"fileren/internal/scan"
	"fileren/internal/template"
)

// Settings holds every option a frontend can override per run.
type Settings struct {
	Pattern           string `json:"pattern"`
	Template          string `json:"template"`
	IncludeSubfolders bool   `json:"include_subfolders"`
	DestFolder        string `json:"dest_folder"`
	LogFile           string `json:"log_file"`
	DryRun            bool   `json:"dry_run"`
	UndoCSV           string `json:"undo_csv"` // path; "" disables the undo CSV
	StopOnError       bool   `json:"stop_on_error"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Pattern:  scan.DefaultPattern,
		Template: template.Default,
		LogFile:  renamelog.DefaultPath,
	}
}

// DefaultPath is where settings live when no explicit path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fileren.json"
	}
	return filepath.Join(dir, "fileren", "settings.json")
}

// Load reads settings from a JSON file. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
