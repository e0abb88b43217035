// Package expouting supports the use of expout in your Go tests.
//
// Example checks the output of a command against the expectation file
// testdata/TestStatus.expout.yaml:
//
//	func TestStatus(t *testing.T) {
//		out, _ := exec.Command("svn", "status").Output()
//		expouting.Error(t, "", expout.SplitLines(string(out)))
//	}
//
// Expectation file:
//
//	label: STDOUT
//	unordered: true
//	lines:
//	  - "A       foo"
//	  - "M       bar"
package expouting

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fractalqb/expout"
)

// When this environment variable is set to a regexp and the name of the
// current test matches, calls to Error or Fatal record the actual output as
// new expectation file instead of comparing it. E.g.
//
//	EXPOUTING_RECORD=TestStatus go test .
const RecordEnv = "EXPOUTING_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see go
// help test).
const GoTestdataDir = "testdata"

func Error(t testing.TB, hint string, actual []string) error {
	t.Helper()
	return defaultConfig.Error(t, hint, actual)
}

func Fatal(t testing.TB, hint string, actual []string) {
	t.Helper()
	defaultConfig.Fatal(t, hint, actual)
}

func Record(t testing.TB, hint string, actual []string) {
	t.Helper()
	defaultConfig.Record(t, hint, actual)
}

// RefRepo locates expectation files by test name.
type RefRepo struct {
	Dir    string
	Suffix string
}

const StdSuffix = ".expout.yaml"

// Filename is Dir/<test>.expout.yaml or, with a hint,
// Dir/<test>/<hint>.expout.yaml.
func (rr RefRepo) Filename(t testing.TB, hint string) string {
	suffix := rr.Suffix
	if suffix == "" {
		suffix = StdSuffix
	}
	if hint == "" {
		return filepath.Join(rr.Dir, t.Name()+suffix)
	}
	if strings.HasSuffix(hint, suffix) {
		return filepath.Join(rr.Dir, t.Name(), hint)
	}
	return filepath.Join(rr.Dir, t.Name(), hint+suffix)
}

type Config struct {
	FileName        func(t testing.TB, hint string) string
	RecordOverwrite bool
	// Verifier is used for the comparison. Its Reporter is replaced with
	// one that reports to the test.
	Verifier expout.Verifier
}

var defaultConfig = Config{
	FileName:        RefRepo{Dir: GoTestdataDir}.Filename,
	RecordOverwrite: false,
}

func (cfg Config) Error(t testing.TB, hint string, actual []string) error {
	t.Helper()
	if recordTest(t) {
		cfg.Record(t, hint, actual)
		return nil
	}
	return cfg.compare(t, hint, actual, t.Error)
}

func (cfg Config) Fatal(t testing.TB, hint string, actual []string) {
	t.Helper()
	if recordTest(t) {
		cfg.Record(t, hint, actual)
		return
	}
	cfg.compare(t, hint, actual, t.Fatal)
}

func recordTest(t testing.TB) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("expouting: invalid regexp '%s' in %s, not recording: %s", rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func (cfg Config) fileName(t testing.TB, hint string) string {
	if cfg.FileName == nil {
		return RefRepo{Dir: GoTestdataDir}.Filename(t, hint)
	}
	return cfg.FileName(t, hint)
}

func (cfg Config) compare(t testing.TB, hint string, actual []string, fail func(...any)) error {
	t.Helper()
	reffile := cfg.fileName(t, hint)
	if _, err := os.Stat(reffile); os.IsNotExist(err) {
		t.Logf("to record an expectation file run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv,
			t.Name(),
		)
		err = fmt.Errorf("expectation file %s does not exist", reffile)
		fail(err)
		return err
	}
	ef, err := expout.LoadFile(reffile)
	if err != nil {
		fail(err)
		return err
	}
	vrf := cfg.Verifier
	var rep testReporter
	vrf.Reporter = &rep
	err = ef.Verify(&vrf, actual)
	switch {
	case err == nil:
		return nil
	case rep.text != "":
		fail(fmt.Sprintf("%s: %s\n%s", reffile, err, rep.text))
	default:
		fail(fmt.Errorf("%s: %w", reffile, err))
	}
	return err
}

// testReporter keeps the report so that it becomes part of the test
// failure message.
type testReporter struct{ text string }

func (r *testReporter) Report(f *expout.Failure) error {
	r.text = expout.ReportText(f)
	return nil
}

func (cfg Config) Record(t testing.TB, hint string, actual []string) {
	t.Helper()
	reffile := cfg.fileName(t, hint)
	if _, err := os.Stat(reffile); !os.IsNotExist(err) && !cfg.RecordOverwrite {
		t.Fatalf("expouting: expectation file '%s' already exists", reffile)
		return
	}
	if err := os.MkdirAll(filepath.Dir(reffile), 0777); err != nil {
		t.Fatal(err)
		return
	}
	if actual == nil {
		actual = []string{}
	}
	var buf bytes.Buffer
	if err := (&expout.File{Lines: actual}).Write(&buf); err != nil {
		t.Fatal(err)
		return
	}
	if err := os.WriteFile(reffile, buf.Bytes(), 0666); err != nil {
		t.Fatal(err)
		return
	}
	t.Errorf("expouting recorder wrote: %s", reffile)
}
