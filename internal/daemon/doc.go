// Package daemon hosts the long-running Pareidolia process. It enforces
// single-instance execution, owns the project store, the managed Python
// environment, the job executor, the job history ledger, and the mobile
// ingestion HTTP server, and exposes the high-level operations the IPC
// bridge forwards to clients.
package daemon
