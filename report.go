package expout

import (
	"io"
	"strings"

	"go.uber.org/zap"
)

// A Reporter publishes a verification failure, e.g. to a console, a log or
// a test.
type Reporter interface {
	Report(f *Failure) error
}

// TextReporter writes the text from ReportText to W.
type TextReporter struct {
	W io.Writer
}

func (r TextReporter) Report(f *Failure) error {
	_, err := io.WriteString(r.W, ReportText(f))
	return err
}

// ZapReporter logs failures as a structured warning. Without Log failures
// are discarded.
type ZapReporter struct {
	Log *zap.Logger
}

func (r ZapReporter) Report(f *Failure) error {
	fields := []zap.Field{
		zap.String("label", f.Label),
		zap.Stringer("kind", expectedKind(f.Expected)),
		zap.Bool("unordered", f.Expected.IsUnordered()),
		zap.Strings("expected", expectedBody(f.Expected)),
		zap.Strings("actual", f.Actual),
	}
	if len(f.Diff) > 0 {
		fields = append(fields, zap.Strings("diff", f.Diff))
	}
	msg := f.Message
	if msg == "" {
		msg = "output mismatch"
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	log.Warn(msg, fields...)
	return nil
}

// ReportText renders the full diagnostic of f. It always contains the
// complete expected and actual content and, for Literal expectations, the
// line diff:
//
//	<message>
//	EXPECTED <label> (regexp) (unordered):
//	…
//	ACTUAL <label>:
//	…
//	DIFF <label> (unordered):
//	…
func ReportText(f *Failure) string {
	var sb strings.Builder
	if f.Message != "" {
		sb.WriteString(f.Message)
		sb.WriteByte('\n')
	}
	var annot string
	if f.Expected.IsRegexp() {
		annot += " (regexp)"
	}
	if f.Expected.IsUnordered() {
		annot += " (unordered)"
	}
	sb.WriteString("EXPECTED " + f.Label + annot + ":\n")
	writeLines(&sb, expectedBody(f.Expected))
	sb.WriteString("ACTUAL " + f.Label + ":\n")
	writeLines(&sb, f.Actual)
	if !f.Expected.IsRegexp() {
		sb.WriteString("DIFF " + f.Label + annot + ":\n")
		writeLines(&sb, f.Diff)
	}
	return sb.String()
}

// expectedBody is what is shown as expected content. An ordered regexp
// only uses its first pattern.
func expectedBody(e *Expected) []string {
	exp := e.norm()
	if exp.Kind == Pattern && exp.Order == Ordered && len(exp.Content) > 1 {
		return exp.Content[:1]
	}
	return exp.Content
}

func expectedKind(e *Expected) Kind {
	if e.IsRegexp() {
		return Pattern
	}
	return Literal
}

func writeLines(sb *strings.Builder, lines []string) {
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}
