package expout

import (
	"fmt"
	"strings"
)

// ConfigError is returned when mutually exclusive options are requested
// together or an expectation cannot be evaluated at all. It is reported
// before any line is compared.
type ConfigError struct {
	Reason string
	err    error
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	if e.err == nil {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config: %s: %s", e.Reason, e.err)
}

func (e *ConfigError) Unwrap() error { return e.err }

// Failure records an actual output that does not satisfy its expectation.
// It has everything needed to report the mismatch but does not report
// itself.
type Failure struct {
	Message  string
	Label    string
	Expected *Expected
	Actual   []string
	// Diff is the unified line diff, only for Literal expectations.
	Diff []string
}

func (f *Failure) Error() string {
	var sb strings.Builder
	if f.Message != "" {
		sb.WriteString(f.Message)
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "%s does not match expected %s", f.Label, expectedKind(f.Expected))
	if f.Expected.IsUnordered() {
		sb.WriteString(" unordered")
	}
	sb.WriteString(" output")
	return sb.String()
}
