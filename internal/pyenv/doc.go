// Package pyenv provisions the managed Python environment external jobs run
// in.
//
// The environment is a process-wide singleton directory under the data root
// holding an interpreter and the fixed package set the extraction and
// training scripts import. It is created once on first demand (venv bootstrap
// followed by a pip install) and reused indefinitely afterwards; a mutex
// serializes concurrent first-time creation, so one bootstrap sequence runs
// no matter how many callers race. Creation is not retried: a failed
// bootstrap removes the partial directory and reports the failure to the
// caller.
package pyenv
