package config

const (
	defaultDataRoot    = "~/.local/share/pareidolia"
	defaultLogDir      = "~/.local/share/pareidolia/logs"
	defaultAPIBind     = "0.0.0.0:3001"
	defaultInterpreter = "python3"
	defaultEpochs      = 10
	defaultMaxBodyMB   = 500
	defaultJobTimeout  = 0
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

func defaultPackages() []string {
	return []string{"numpy", "opencv-python", "tensorflow"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataRoot: defaultDataRoot,
			LogDir:   defaultLogDir,
			APIBind:  defaultAPIBind,
		},
		Python: Python{
			Interpreter: defaultInterpreter,
			Packages:    defaultPackages(),
		},
		Training: Training{
			DefaultEpochs: defaultEpochs,
		},
		Ingest: Ingest{
			MaxBodyMB: defaultMaxBodyMB,
		},
		Workflow: Workflow{
			JobTimeout: defaultJobTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
