// Package executor runs external scripts and resolves every outcome into a
// structured result.
//
// The executor is domain-agnostic: video frame extraction, model training, and
// environment bootstrap are all one call with a script path and positional
// arguments. Standard output and error are accumulated incrementally while the
// process runs, and an optional progress callback observes stdout lines as
// they arrive.
//
// Execute never returns a Go error. Spawn failures, non-zero exits, and
// context cancellation all resolve into Result with Success=false, so callers
// always have a displayable outcome to relay. This is the one deliberate
// exception to the repository's errors-propagate policy.
package executor
