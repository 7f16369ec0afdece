package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataRoot string `toml:"data_root"`
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
}

// Python contains interpreter and managed-environment configuration.
type Python struct {
	Interpreter string   `toml:"interpreter"`
	EnvDir      string   `toml:"env_dir"`
	Packages    []string `toml:"packages"`
}

// Training contains defaults applied to new model settings records.
type Training struct {
	DefaultEpochs int `toml:"default_epochs"`
}

// Ingest contains configuration for the mobile ingestion HTTP endpoint.
type Ingest struct {
	MaxBodyMB int `toml:"max_body_mb"`
}

// Workflow contains daemon timing configuration.
type Workflow struct {
	// JobTimeout bounds a single external job in seconds. Zero disables the
	// bound; training runs are unbounded by default.
	JobTimeout int `toml:"job_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Pareidolia.
//
// Configuration sections by subsystem:
//   - Paths: data root, log directory, and ingestion bind address
//   - Python: interpreter name, environment directory, managed packages
//   - Training: defaults for model settings records
//   - Ingest: upload endpoint limits
//   - Workflow: external job timing
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Python   Python   `toml:"python"`
	Training Training `toml:"training"`
	Ingest   Ingest   `toml:"ingest"`
	Workflow Workflow `toml:"workflow"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/pareidolia/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pareidolia.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// DatasetsDir returns the directory holding dataset project folders.
func (c *Config) DatasetsDir() string {
	return filepath.Join(c.Paths.DataRoot, "datasets")
}

// ModelsDir returns the directory holding model project folders.
func (c *Config) ModelsDir() string {
	return filepath.Join(c.Paths.DataRoot, "models")
}

// ScriptsDir returns the directory the embedded Python scripts are
// materialized into.
func (c *Config) ScriptsDir() string {
	return filepath.Join(c.Paths.DataRoot, "scripts")
}

// EnvDir returns the managed Python environment directory.
func (c *Config) EnvDir() string {
	if strings.TrimSpace(c.Python.EnvDir) != "" {
		return c.Python.EnvDir
	}
	return filepath.Join(c.Paths.DataRoot, "env")
}

// EnvInterpreter returns the interpreter path inside the managed environment.
func (c *Config) EnvInterpreter() string {
	return EnvInterpreter(c.EnvDir())
}

// EnvInterpreter returns the interpreter path for an arbitrary environment
// directory, honouring the platform layout.
func EnvInterpreter(envDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(envDir, "Scripts", "python.exe")
	}
	return filepath.Join(envDir, "bin", "python")
}

// SocketPath returns the IPC socket location.
func (c *Config) SocketPath() string {
	return filepath.Join(c.Paths.LogDir, "pareidolia.sock")
}

// HistoryDBPath returns the job history database location.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.LogDir, "history.db")
}

// LockPath returns the daemon lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "pareidoliad.lock")
}

// LogPath returns the daemon log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "pareidolia.log")
}

// MaxBodyBytes returns the ingestion endpoint request body limit in bytes.
func (c *Config) MaxBodyBytes() int64 {
	return int64(c.Ingest.MaxBodyMB) << 20
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.DataRoot,
		c.DatasetsDir(),
		c.ModelsDir(),
		c.ScriptsDir(),
		c.Paths.LogDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
