// Package logging assembles structured slog loggers used across Pareidolia
// services.
//
// It owns the console/JSON handler selection, centralizes level and output
// plumbing, and standardizes attribute keys so daemon components tag log lines
// with the same component, dataset, and job fields. The package also provides
// a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
