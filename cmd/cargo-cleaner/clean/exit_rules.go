package clean

import (
	"fmt"

	"github.com/malteki/cargo-cleaner/internal/stage"
)

const (
	exitCodeSuccess  = 0
	exitCodeFailures = 1
)

type runExitError struct {
	code int
	msg  string
}

func (e runExitError) Error() string { return e.msg }
func (e runExitError) ExitCode() int { return e.code }

// exitError turns failed manifests into a non-zero exit in strict mode.
// Without --strict a run always succeeds once it has started.
func exitError(env stage.Envelope) error {
	if !env.Settings.Strict {
		return nil
	}
	n := env.FailureCount()
	if n == 0 {
		return nil
	}
	return runExitError{
		code: exitCodeFailures,
		msg:  fmt.Sprintf("strict: %d of %d manifests failed", n, len(env.Results)),
	}
}
