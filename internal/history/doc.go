// Package history persists a ledger of external job invocations in SQLite.
//
// Each executor run (frame extraction, training, environment bootstrap) is
// recorded with its structured result so operators can inspect past jobs via
// the CLI. The executor's own result stays a transient value object; history
// is an additive daemon-level record and never feeds back into execution.
package history
