package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"pareidolia/internal/config"
	"pareidolia/internal/logging"
	"pareidolia/internal/services"
	"pareidolia/internal/textutil"
)

// ArtifactFileName is the trained model artifact the mobile app downloads.
const ArtifactFileName = "model.tflite"

const settingsFileName = "settings.json"

// Project identifies a dataset or model by name and on-disk location.
type Project struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Image references a single image file beneath a project directory.
type Image struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Store maps logical dataset/model names onto the configured data root.
type Store struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs a store over the configured data root.
func New(cfg *config.Config, logger *slog.Logger) *Store {
	return &Store{cfg: cfg, logger: logging.WithComponent(logger, "store")}
}

// EnsureRoot creates the data root with its datasets/ and models/ category
// directories and returns the root path. Existing directories are left
// untouched.
func (s *Store) EnsureRoot() (string, error) {
	for _, dir := range []string{s.cfg.Paths.DataRoot, s.cfg.DatasetsDir(), s.cfg.ModelsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", services.Wrap(services.ErrFilesystem, "store", "ensure root", dir, err)
		}
	}
	return s.cfg.Paths.DataRoot, nil
}

// CreateDataset ensures the root exists and creates the dataset directory with
// its positives/ and negatives/ subdirectories. Any subset already present is
// left untouched. Returns the dataset root path.
func (s *Store) CreateDataset(name string) (string, error) {
	if err := s.checkName(name); err != nil {
		return "", err
	}
	if _, err := s.EnsureRoot(); err != nil {
		return "", err
	}

	root := s.DatasetPath(name)
	for _, dir := range []string{root, s.PositivesDir(name), s.NegativesDir(name)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", services.Wrap(services.ErrFilesystem, "store", "create dataset", name, err)
		}
	}
	return root, nil
}

// CreateModel ensures the root exists and creates the model directory with its
// nested models/ output directory. A default settings record is written only
// when none exists yet. Returns the model root path.
func (s *Store) CreateModel(name string) (string, error) {
	if err := s.checkName(name); err != nil {
		return "", err
	}
	if _, err := s.EnsureRoot(); err != nil {
		return "", err
	}

	root := s.ModelPath(name)
	for _, dir := range []string{root, s.ModelOutputDir(name)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", services.Wrap(services.ErrFilesystem, "store", "create model", name, err)
		}
	}

	settingsPath := s.SettingsPath(name)
	if _, err := os.Stat(settingsPath); err == nil {
		return root, nil
	} else if !os.IsNotExist(err) {
		return "", services.Wrap(services.ErrFilesystem, "store", "create model", name, err)
	}

	defaults := DefaultSettings(s.cfg.Training.DefaultEpochs)
	if err := s.WriteSettings(name, defaults); err != nil {
		return "", err
	}
	return root, nil
}

// DatasetPath returns the dataset root directory for name.
func (s *Store) DatasetPath(name string) string {
	return filepath.Join(s.cfg.DatasetsDir(), name)
}

// PositivesDir returns the positive-example directory for a dataset.
func (s *Store) PositivesDir(name string) string {
	return filepath.Join(s.DatasetPath(name), "positives")
}

// NegativesDir returns the negative-example directory for a dataset.
func (s *Store) NegativesDir(name string) string {
	return filepath.Join(s.DatasetPath(name), "negatives")
}

// ModelPath returns the model root directory for name.
func (s *Store) ModelPath(name string) string {
	return filepath.Join(s.cfg.ModelsDir(), name)
}

// ModelOutputDir returns the directory trained artifacts are written into.
func (s *Store) ModelOutputDir(name string) string {
	return filepath.Join(s.ModelPath(name), "models")
}

// ArtifactPath returns the expected trained artifact location for a model.
func (s *Store) ArtifactPath(name string) string {
	return filepath.Join(s.ModelOutputDir(name), ArtifactFileName)
}

// SettingsPath returns the model settings record location.
func (s *Store) SettingsPath(name string) string {
	return filepath.Join(s.ModelPath(name), settingsFileName)
}

// DatasetExists reports whether the named dataset directory is present.
func (s *Store) DatasetExists(name string) bool {
	info, err := os.Stat(s.DatasetPath(name))
	return err == nil && info.IsDir()
}

func (s *Store) checkName(name string) error {
	if !textutil.ValidProjectName(name) {
		return services.Wrap(services.ErrValidation, "store", "name",
			fmt.Sprintf("%q is not a valid project name", name), nil)
	}
	return nil
}
