package commands

import (
	"errors"
	"fmt"
	"os"
)

// ErrDiagnostics reports that a command already printed the problems it
// found. Callers should exit with a failure status without printing again.
var ErrDiagnostics = errors.New("diagnostics reported")

// ErrUsage reports that usage was already printed for a bad invocation.
var ErrUsage = errors.New("invalid usage")

// IsReported reports whether err means output was already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrDiagnostics) || errors.Is(err, ErrUsage)
}

// OpenError reports a source file that could not be read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("Nao foi possivel abrir: %s", e.Path)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// readSource reads a whole source file.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return "", &OpenError{Path: path, Err: err}
	}
	return string(data), nil
}
