package expout

import (
	"errors"
	"os"
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultNoisePrefix marks diagnostic lines of a command that are not
	// part of its output.
	DefaultNoisePrefix = "DBG:"
	// DefaultLabel names the checked output when no label is given.
	DefaultLabel = "Exit Code"

	// LabelStdout is the default label of the standard output check.
	LabelStdout = "STDOUT"
	// LabelStderr is the default label of the standard error check.
	LabelStderr = "STDERR"
	// LabelExitCode is the default label of the exit code check.
	LabelExitCode = "Exit Code"
)

// Verifier checks actual command output against expectations and reports
// mismatches. The zero value is ready to use: it drops lines starting with
// DefaultNoisePrefix and writes reports to os.Stdout. A Verifier is not
// modified by its methods, so it can be shared if its Reporter can.
type Verifier struct {
	// NoisePrefix overrides DefaultNoisePrefix.
	NoisePrefix string
	// KeepNoise disables dropping noise lines.
	KeepNoise bool
	Reporter  Reporter
}

// Option adjusts a single verification.
type Option func(*check)

type check struct {
	message string
	label   string
	except  string
}

// WithMessage sets a message that is printed first in the report.
func WithMessage(msg string) Option {
	return func(c *check) { c.message = msg }
}

// WithLabel names the checked output, e.g. STDOUT.
func WithLabel(label string) Option {
	return func(c *check) { c.label = label }
}

// WithExcept ignores lines matching the regexp except, see MatchExcept.
func WithExcept(except string) Option {
	return func(c *check) { c.except = except }
}

// Verify is Verifier.Verify with a zero Verifier.
func Verify(exp *Expected, actual []string, opts ...Option) error {
	var v Verifier
	return v.Verify(exp, actual, opts...)
}

// Verify checks actual against exp. Noise lines are dropped from actual
// before matching. If actual does not match, the *Failure is reported and
// returned. Invalid requests return a *ConfigError without report.
func (v *Verifier) Verify(exp *Expected, actual []string, opts ...Option) error {
	c := check{label: DefaultLabel}
	for _, o := range opts {
		o(&c)
	}
	e := exp.norm()
	actual = v.dropNoise(actual)
	ok, err := e.Matches(actual, c.except)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	e.Content = slices.Clone(e.Content)
	f := &Failure{
		Message:  c.message,
		Label:    c.label,
		Expected: &e,
		Actual:   slices.Clone(actual),
	}
	if e.Kind == Literal {
		f.Diff = Diff(f.Label, e.Content, f.Actual)
	}
	if err = v.reporter().Report(f); err != nil {
		return errors.Join(f, err)
	}
	return f
}

// Outputs checks stdout and stderr of a command. A nil expectation skips
// the check of the respective stream. Stdout is checked first and a
// failure there stops the check.
func (v *Verifier) Outputs(stdout, stderr []string, expStdout, expStderr *Expected, opts ...Option) error {
	if expStdout != nil {
		if err := v.Verify(expStdout, stdout, withDefaultLabel(LabelStdout, opts)...); err != nil {
			return err
		}
	}
	if expStderr != nil {
		if err := v.Verify(expStderr, stderr, withDefaultLabel(LabelStderr, opts)...); err != nil {
			return err
		}
	}
	return nil
}

// ExitCode checks the exit code of a command.
func (v *Verifier) ExitCode(actual, expected int, opts ...Option) error {
	if actual == expected {
		return nil
	}
	return v.Verify(
		Text(strconv.Itoa(expected)),
		[]string{strconv.Itoa(actual)},
		withDefaultLabel(LabelExitCode, opts)...,
	)
}

// Outcome is what a process runner captured from a single command run.
type Outcome struct {
	ExitCode int
	Stdout   []string
	Stderr   []string
}

// Expect is the expectation for an Outcome.
type Expect struct {
	ExitCode int
	Stdout   *Expected
	Stderr   *Expected
}

// Outcome checks the outputs of o before its exit code.
func (v *Verifier) Outcome(o Outcome, exp Expect, opts ...Option) error {
	if err := v.Outputs(o.Stdout, o.Stderr, exp.Stdout, exp.Stderr, opts...); err != nil {
		return err
	}
	return v.ExitCode(o.ExitCode, exp.ExitCode, opts...)
}

func (v *Verifier) dropNoise(lines []string) []string {
	if v.KeepNoise {
		return lines
	}
	prefix := v.NoisePrefix
	if prefix == "" {
		prefix = DefaultNoisePrefix
	}
	res := make([]string, 0, len(lines))
	for _, l := range lines {
		if !strings.HasPrefix(l, prefix) {
			res = append(res, l)
		}
	}
	return res
}

func (v *Verifier) reporter() Reporter {
	if v.Reporter == nil {
		return TextReporter{W: os.Stdout}
	}
	return v.Reporter
}

// withDefaultLabel puts the label before opts so that callers can still
// override it.
func withDefaultLabel(label string, opts []Option) []Option {
	res := make([]Option, 0, len(opts)+1)
	res = append(res, WithLabel(label))
	return append(res, opts...)
}
