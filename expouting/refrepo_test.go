package expouting

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractalqb/expout"
)

// fakeT records failures instead of failing the surrounding test.
type fakeT struct {
	testing.TB
	name  string
	fails []string
	fatal bool
}

func (f *fakeT) Name() string { return f.name }
func (f *fakeT) Helper()      {}

func (f *fakeT) Logf(string, ...any) {}

func (f *fakeT) Error(args ...any) { f.fails = append(f.fails, fmt.Sprint(args...)) }

func (f *fakeT) Errorf(format string, args ...any) {
	f.fails = append(f.fails, fmt.Sprintf(format, args...))
}

func (f *fakeT) Fatal(args ...any) {
	f.fatal = true
	f.Error(args...)
}

func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatal = true
	f.Errorf(format, args...)
}

func writeExpectation(t *testing.T, name string, ef *expout.File) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0777))
	w, err := os.Create(name)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, ef.Write(w))
}

func TestRefRepo_Filename(t *testing.T) {
	rr := RefRepo{Dir: "testdata"}
	assert.Equal(t, filepath.Join("testdata", t.Name()+StdSuffix), rr.Filename(t, ""))
	assert.Equal(t,
		filepath.Join("testdata", t.Name(), "stdout"+StdSuffix),
		rr.Filename(t, "stdout"),
	)
	assert.Equal(t,
		filepath.Join("testdata", t.Name(), "stdout"+StdSuffix),
		rr.Filename(t, "stdout"+StdSuffix),
	)
	rr.Suffix = ".yml"
	assert.Equal(t, filepath.Join("testdata", t.Name()+".yml"), rr.Filename(t, ""))
}

func TestConfig_Error(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{FileName: RefRepo{Dir: dir}.Filename}
	writeExpectation(t, filepath.Join(dir, "TestStatus"+StdSuffix), &expout.File{
		Label:     "STDOUT",
		Unordered: true,
		Lines:     []string{"A    foo", "M    bar"},
	})

	t.Run("match", func(t *testing.T) {
		ft := &fakeT{TB: t, name: "TestStatus"}
		err := cfg.Error(ft, "", []string{"M    bar", "DBG: noise", "A    foo"})
		assert.NoError(t, err)
		assert.Empty(t, ft.fails)
	})
	t.Run("mismatch", func(t *testing.T) {
		ft := &fakeT{TB: t, name: "TestStatus"}
		err := cfg.Error(ft, "", []string{"M    bar"})
		var fail *expout.Failure
		require.ErrorAs(t, err, &fail)
		require.Len(t, ft.fails, 1)
		assert.Contains(t, ft.fails[0], "EXPECTED STDOUT (unordered):")
		assert.Contains(t, ft.fails[0], "DIFF STDOUT (unordered):")
		assert.False(t, ft.fatal)
	})
	t.Run("fatal", func(t *testing.T) {
		ft := &fakeT{TB: t, name: "TestStatus"}
		cfg.Fatal(ft, "", nil)
		assert.True(t, ft.fatal)
	})
	t.Run("missing file", func(t *testing.T) {
		ft := &fakeT{TB: t, name: "TestMissing"}
		err := cfg.Error(ft, "", nil)
		assert.Error(t, err)
		require.Len(t, ft.fails, 1)
		assert.Contains(t, ft.fails[0], "does not exist")
	})
}

func TestConfig_Record(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{FileName: RefRepo{Dir: dir}.Filename}
	t.Setenv(RecordEnv, "^TestRecorded$")

	ft := &fakeT{TB: t, name: "TestRecorded"}
	require.NoError(t, cfg.Error(ft, "stdout", []string{"line 1", "line 2"}))
	require.Len(t, ft.fails, 1)
	assert.Contains(t, ft.fails[0], "recorder wrote")

	ef, err := expout.LoadFile(filepath.Join(dir, "TestRecorded", "stdout"+StdSuffix))
	require.NoError(t, err)
	assert.Equal(t, []string{"line 1", "line 2"}, ef.Lines)

	ft = &fakeT{TB: t, name: "TestRecorded"}
	cfg.Record(ft, "stdout", nil)
	assert.True(t, ft.fatal, "must not overwrite")

	t.Setenv(RecordEnv, "")
	ft = &fakeT{TB: t, name: "TestRecorded"}
	assert.NoError(t, cfg.Error(ft, "stdout", []string{"line 1", "line 2"}))
	assert.Empty(t, ft.fails)
}
