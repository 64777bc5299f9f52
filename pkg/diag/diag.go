// Package diag holds the non-fatal diagnostics produced while checking a
// program.
package diag

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplang/pkg/token"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError marks a problem that prevents execution.
	SeverityError Severity = iota
	// SeverityWarning marks an advisory finding, such as the parser's
	// early use-before-declare check.
	SeverityWarning
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText lets severities appear by name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", text)
	}
	*s = sev
	return nil
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityError and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	default:
		return SeverityError, false
	}
}

// =============================================================================
// Diagnostic
// =============================================================================

// Diagnostic is a located, non-fatal finding.
type Diagnostic struct {
	Message  string         `json:"message" yaml:"message"`
	Pos      token.Position `json:"pos" yaml:"pos"`
	Severity Severity       `json:"severity" yaml:"severity"`
}

// String renders the diagnostic as `[Erro semantico] message (line,column)`.
func (d Diagnostic) String() string {
	label := "Erro semantico"
	if d.Severity == SeverityWarning {
		label = "Aviso"
	}
	return fmt.Sprintf("[%s] %s (%d,%d)", label, d.Message, d.Pos.Line, d.Pos.Column)
}

// Errorf builds an error-severity diagnostic.
func Errorf(pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...), Pos: pos, Severity: SeverityError}
}

// Warningf builds a warning-severity diagnostic.
func Warningf(pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...), Pos: pos, Severity: SeverityWarning}
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics.
func (l List) Errors() List {
	var out List
	for _, d := range l {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// String renders one diagnostic per line.
func (l List) String() string {
	var b strings.Builder
	for _, d := range l {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}
