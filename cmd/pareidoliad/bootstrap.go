package main

import (
	"log/slog"

	"pareidolia/internal/config"
	"pareidolia/internal/deps"
	"pareidolia/internal/logging"
)

// logStartupDiagnostics reports external dependency availability at boot so
// missing tools show up in the log before the first job fails.
func logStartupDiagnostics(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}

	for _, status := range deps.CheckBinaries(deps.Default(cfg)) {
		if status.Available {
			logger.Debug("dependency available",
				logging.String("name", status.Name),
				logging.String("detail", status.Detail))
			continue
		}
		if status.Optional {
			logger.Info("optional dependency missing",
				logging.String("name", status.Name),
				logging.String("detail", status.Detail))
			continue
		}
		logger.Warn("dependency missing",
			logging.String("name", status.Name),
			logging.String("detail", status.Detail))
	}

	logger.Info("paths resolved",
		logging.String("data_root", cfg.Paths.DataRoot),
		logging.String("socket", cfg.SocketPath()),
		logging.String("ingest_bind", cfg.Paths.APIBind))
}
