package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ElectricFeet/gutenberg/internal/state"
)

const prefsFile = "preferences.json"

func prefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "gutenberg")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, prefsFile), nil
}

// Save persists editor preferences. The write goes through a temp file and
// rename so a crash never leaves a truncated prefs file.
func Save(p *state.Preferences) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads persisted preferences. A missing file yields the defaults, not
// an error.
func Load() (*state.Preferences, error) {
	path, err := prefsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return state.NewPreferences(), nil
		}
		return nil, err
	}
	p := state.NewPreferences()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}
