// Package services defines the shared error taxonomy for Pareidolia
// components.
//
// Sentinel errors tag failures by kind (validation, not-found, filesystem,
// external tool) so the ingestion endpoint and IPC bridge can translate them
// into transport-level statuses without string matching. Job execution
// failures are deliberately absent from the taxonomy: the executor resolves
// every process outcome into a structured result instead of an error.
package services
