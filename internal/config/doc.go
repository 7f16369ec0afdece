// Package config loads, normalizes, and validates Pareidolia configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// daemon and CLI need: the application data root, the ingestion bind address,
// Python interpreter settings, and logging options. Derived locations
// (datasets/, models/, the managed environment, socket and lock files) are
// exposed as accessor methods so the layout is decided in exactly one place.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
