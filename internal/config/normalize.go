package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizePython(); err != nil {
		return err
	}
	c.normalizeTraining()
	c.normalizeIngest()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataRoot) == "" {
		c.Paths.DataRoot = defaultDataRoot
	}
	if c.Paths.DataRoot, err = expandPath(c.Paths.DataRoot); err != nil {
		return fmt.Errorf("paths.data_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizePython() error {
	c.Python.Interpreter = strings.TrimSpace(c.Python.Interpreter)
	if c.Python.Interpreter == "" {
		c.Python.Interpreter = defaultInterpreter
	}
	if strings.TrimSpace(c.Python.EnvDir) != "" {
		expanded, err := expandPath(c.Python.EnvDir)
		if err != nil {
			return fmt.Errorf("python.env_dir: %w", err)
		}
		c.Python.EnvDir = expanded
	}
	packages := make([]string, 0, len(c.Python.Packages))
	for _, pkg := range c.Python.Packages {
		if trimmed := strings.TrimSpace(pkg); trimmed != "" {
			packages = append(packages, trimmed)
		}
	}
	if len(packages) == 0 {
		packages = defaultPackages()
	}
	c.Python.Packages = packages
	return nil
}

func (c *Config) normalizeTraining() {
	if c.Training.DefaultEpochs <= 0 {
		c.Training.DefaultEpochs = defaultEpochs
	}
}

func (c *Config) normalizeIngest() {
	if c.Ingest.MaxBodyMB <= 0 {
		c.Ingest.MaxBodyMB = defaultMaxBodyMB
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
