package store

import (
	"encoding/json"
	"os"

	"pareidolia/internal/services"
)

// Settings is the persisted per-model training configuration.
type Settings struct {
	Datasets []string `json:"datasets"`
	Labels   []string `json:"labels"`
	Epochs   int      `json:"epochs"`
}

// DefaultSettings returns the settings record written for new models.
func DefaultSettings(epochs int) Settings {
	if epochs <= 0 {
		epochs = 10
	}
	return Settings{
		Datasets: []string{},
		Labels:   []string{},
		Epochs:   epochs,
	}
}

// ReadSettings loads the settings record for a model. An absent record is
// "uninitialized", reported via ok=false with no error; a present but
// malformed record is an error.
func (s *Store) ReadSettings(name string) (Settings, bool, error) {
	raw, err := os.ReadFile(s.SettingsPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, false, nil
		}
		return Settings{}, false, services.Wrap(services.ErrFilesystem, "store", "read settings", name, err)
	}

	var settings Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return Settings{}, false, services.Wrap(services.ErrFilesystem, "store", "read settings",
			"settings record is not valid JSON", err)
	}
	return settings, true, nil
}

// WriteSettings persists the settings record for a model.
func (s *Store) WriteSettings(name string, settings Settings) error {
	raw, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "store", "write settings", name, err)
	}
	if err := os.WriteFile(s.SettingsPath(name), raw, 0o644); err != nil {
		return services.Wrap(services.ErrFilesystem, "store", "write settings", name, err)
	}
	return nil
}
