package expout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchCase struct {
	name   string
	exp    *Expected
	actual []string
	want   bool
}

func runMatchCases(t *testing.T, cases []matchCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, err := c.exp.Matches(c.actual, "")
			require.NoError(t, err)
			assert.Equal(t, c.want, ok, "expected %s, actual %q", c.exp, c.actual)
		})
	}
}

func TestExpected_literalOrdered(t *testing.T) {
	runMatchCases(t, []matchCase{
		{"same", Lines("a", "b"), []string{"a", "b"}, true},
		{"swapped", Lines("a", "b"), []string{"b", "a"}, false},
		{"longer", Lines("a", "b"), []string{"a", "b", "c"}, false},
		{"shorter", Lines("a", "b"), []string{"a"}, false},
		{"empty both", Lines(), nil, true},
		{"empty expected", Lines(), []string{"a"}, false},
		{"nil expected", nil, nil, true},
		{"nil expected with output", nil, []string{""}, false},
		{"text", Text("foo bar"), []string{"foo bar"}, true},
		{"subset middle", Lines("b").Subset(), []string{"a", "b", "c"}, true},
		{"subset interleaved", Lines("a", "c").Subset(), []string{"a", "b", "c", "d"}, true},
		{"subset order violated", Lines("b", "a").Subset(), []string{"a", "b"}, false},
		{"subset missing", Lines("a", "x").Subset(), []string{"a", "b"}, false},
		{"subset repeated", Lines("a", "a").Subset(), []string{"a", "b", "a"}, true},
		{"subset repeated once", Lines("a", "a").Subset(), []string{"a", "b"}, false},
		{"subset empty", Lines().Subset(), []string{"a"}, true},
		{"subset empty actual", Lines("a").Subset(), nil, false},
	})
}

func TestExpected_literalUnordered(t *testing.T) {
	runMatchCases(t, []matchCase{
		{"swapped", UnorderedLines("a", "b"), []string{"b", "a"}, true},
		{"duplicates collapse", UnorderedLines("a", "a"), []string{"a"}, true},
		{"actual duplicates collapse", UnorderedLines("a"), []string{"a", "a"}, true},
		{"missing", UnorderedLines("a", "b"), []string{"a"}, false},
		{"extra", UnorderedLines("a"), []string{"a", "b"}, false},
		{"empty both", UnorderedLines(), nil, true},
		{"subset one common", UnorderedLines("x", "b").Subset(), []string{"a", "b"}, true},
		{"subset none common", UnorderedLines("x", "y").Subset(), []string{"a", "b"}, false},
		{"subset empty", UnorderedLines().Subset(), []string{"a"}, true},
	})
}

func TestExpected_patternOrdered(t *testing.T) {
	runMatchCases(t, []matchCase{
		{"all match", Regexp(`^rev \d+$`), []string{"rev 1", "rev 2"}, true},
		{"one bad", Regexp(`^rev \d+$`), []string{"rev 1", "bad"}, false},
		{"empty actual", Regexp(`^rev \d+$`), nil, false},
		{"prefix anchored", Regexp(`rev`), []string{"rev 1", "rev"}, true},
		{"not searched", Regexp(`rev`), []string{"a rev"}, false},
		{"only first pattern", &Expected{
			Content:  []string{`rev`, `never`},
			Kind:     Pattern,
			MatchAll: true,
		}, []string{"rev 1"}, true},
		{"subset one", Regexp(`^rev \d+$`).Subset(), []string{"bad", "rev 2"}, true},
		{"subset none", Regexp(`^rev \d+$`).Subset(), []string{"bad", "worse"}, false},
		{"subset empty actual", Regexp(`.*`).Subset(), nil, false},
	})
}

func TestExpected_patternUnordered(t *testing.T) {
	runMatchCases(t, []matchCase{
		{"each consumes", UnorderedRegexp(`b`, `a`), []string{"a1", "b1"}, true},
		{"missing line", UnorderedRegexp(`a`, `b`), []string{"a1"}, false},
		{"extra line", UnorderedRegexp(`a`), []string{"a1", "a2"}, false},
		{"no match", UnorderedRegexp(`a`, `b`), []string{"a1", "c1"}, false},
		{"distinct lines", UnorderedRegexp(`a`, `a`), []string{"a1", "a2"}, false},
		{"duplicate lines collapse", UnorderedRegexp(`a`), []string{"a1", "a1"}, true},
		{"greedy", UnorderedRegexp(`a`, `a1`), []string{"a1", "a2"}, false},
		{"greedy other order", UnorderedRegexp(`a1`, `a`), []string{"a1", "a2"}, true},
		{"empty both", UnorderedRegexp(), nil, true},
		{"subset any", UnorderedRegexp(`x`, `b`).Subset(), []string{"a", "b"}, true},
		{"subset none", UnorderedRegexp(`x`, `y`).Subset(), []string{"a", "b"}, false},
		{"subset empty", UnorderedRegexp().Subset(), []string{"a"}, true},
	})
}

func TestExpected_except(t *testing.T) {
	exp := Lines("A", "B")
	actual := []string{"A", "DEBUG_NOISE", "B"}
	ok, err := exp.Matches(actual, `^DEBUG`)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = exp.Matches(actual, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpected_exceptUnordered(t *testing.T) {
	const except = `^Last Changed Date`
	for _, c := range []struct {
		name   string
		exp    *Expected
		actual []string
		want   bool
	}{
		{"noise between",
			UnorderedLines("A    foo", "M    bar"),
			[]string{"M    bar", "Last Changed Date: x", "A    foo"}, true},
		{"noise trailing",
			UnorderedLines("A    foo"),
			[]string{"A    foo", "Last Changed Date: x"}, true},
		{"noise in expected",
			UnorderedLines("Last Changed Date: y", "A    foo"),
			[]string{"A    foo"}, true},
		{"missing line",
			UnorderedLines("A    foo", "M    bar"),
			[]string{"Last Changed Date: x", "A    foo"}, false},
		{"subset",
			UnorderedLines("M    bar", "D    baz").Subset(),
			[]string{"Last Changed Date: x", "M    bar"}, true},
		{"subset only noise common",
			UnorderedLines("Last Changed Date: x").Subset(),
			[]string{"Last Changed Date: x", "M    bar"}, true},
		{"subset none",
			UnorderedLines("D    baz").Subset(),
			[]string{"Last Changed Date: x", "M    bar"}, false},
	} {
		t.Run(c.name, func(t *testing.T) {
			ok, err := c.exp.Matches(c.actual, except)
			require.NoError(t, err)
			assert.Equal(t, c.want, ok)
		})
	}
}

func TestExpected_configErrors(t *testing.T) {
	check := func(t *testing.T, exp *Expected, actual []string, except string) {
		t.Helper()
		ok, err := exp.Matches(actual, except)
		assert.False(t, ok)
		var cerr *ConfigError
		require.True(t, errors.As(err, &cerr), "error: %v", err)
	}
	t.Run("regexp with except", func(t *testing.T) {
		check(t, Regexp(`.*`), []string{"a"}, `^x`)
		check(t, UnorderedRegexp(`a`).Subset(), []string{"a"}, `^x`)
	})
	t.Run("invalid pattern", func(t *testing.T) {
		check(t, Regexp(`(`), []string{"a"}, "")
		check(t, UnorderedRegexp(`a`, `[`), []string{"a", "b"}, "")
	})
	t.Run("invalid except", func(t *testing.T) {
		check(t, Lines("a"), []string{"a"}, `(`)
	})
	t.Run("ordered subset with except", func(t *testing.T) {
		check(t, Lines("b").Subset(), []string{"a", "b"}, `^x`)
	})
	t.Run("invalid except unordered", func(t *testing.T) {
		check(t, UnorderedLines("a"), []string{"a"}, `(`)
	})
	t.Run("no pattern", func(t *testing.T) {
		check(t, &Expected{Kind: Pattern, MatchAll: true}, []string{"a"}, "")
	})
	t.Run("unknown kind", func(t *testing.T) {
		check(t, &Expected{Kind: Kind(7), MatchAll: true}, nil, "")
	})
}

func TestExpected_idempotent(t *testing.T) {
	exps := []*Expected{
		Lines("a", "b"),
		UnorderedLines("b").Subset(),
		Regexp(`^rev`),
		UnorderedRegexp(`a`, `b`),
	}
	actual := []string{"a", "b", "rev 1"}
	for _, exp := range exps {
		first, err := exp.Matches(actual, "")
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := exp.Matches(actual, "")
			require.NoError(t, err)
			assert.Equal(t, first, again, "%s", exp)
		}
	}
	assert.Equal(t, []string{"a", "b", "rev 1"}, actual)
}

func TestExpected_Subset(t *testing.T) {
	exp := Lines("a")
	sub := exp.Subset()
	assert.True(t, exp.MatchAll)
	assert.False(t, sub.MatchAll)
	assert.Equal(t, exp.Content, sub.Content)
	var nilExp *Expected
	assert.Equal(t, []string{}, nilExp.Subset().Content)
	assert.Equal(t, []string{}, nilExp.norm().Content)
}
