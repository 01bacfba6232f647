// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"plot-digitizer/internal/app"
)

const prefsFile = "preferences.json"

// Prefs stores application preferences.
type Prefs struct {
	LastDirectory string  `json:"last_directory,omitempty"`
	PickRadius    float64 `json:"pick_radius,omitempty"`
	Zoom          float64 `json:"zoom,omitempty"`

	path string
}

// Load reads preferences from ~/.config/plot-digitizer/preferences.json.
// Returns defaults if the file doesn't exist or fails to parse.
func Load() *Prefs {
	p := &Prefs{
		PickRadius: app.DefaultPickRadius,
		Zoom:       1.0,
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	dir := filepath.Join(configDir, "plot-digitizer")
	p.path = filepath.Join(dir, prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, p)
	if p.PickRadius <= 0 {
		p.PickRadius = app.DefaultPickRadius
	}
	if p.Zoom <= 0 {
		p.Zoom = 1.0
	}
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}
