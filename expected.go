package expout

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tells how the content of an [Expected] is interpreted.
type Kind uint8

const (
	// Literal content is compared verbatim to the actual lines.
	Literal Kind = iota
	// Pattern content holds regular expressions matched against the start
	// of actual lines.
	Pattern
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Pattern:
		return "regexp"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Order tells whether the position of actual lines is relevant.
type Order uint8

const (
	// Ordered content must appear in the actual output in the same order.
	Ordered Order = iota
	// Unordered content may appear in the actual output in any order.
	Unordered
)

func (o Order) String() string {
	switch o {
	case Ordered:
		return "ordered"
	case Unordered:
		return "unordered"
	}
	return fmt.Sprintf("Order(%d)", o)
}

// Expected describes what the output of a command must look like. An
// Expected is built for a single check and is not changed by matching.
//
// A nil *Expected is the same as Lines() i.e. it only matches empty output.
type Expected struct {
	Content []string
	Kind    Kind
	Order   Order
	// MatchAll requires every expected entry to be satisfied. With
	// MatchAll == false a subset relation is enough, see the policy of the
	// respective Kind and Order.
	MatchAll bool
}

// Lines expects exactly the given lines in the given order.
func Lines(lines ...string) *Expected {
	return &Expected{Content: lines, MatchAll: true}
}

// Text expects the single line s.
func Text(s string) *Expected { return Lines(s) }

// Regexp expects every actual line to match pattern.
func Regexp(pattern string) *Expected {
	return &Expected{Content: []string{pattern}, Kind: Pattern, MatchAll: true}
}

// UnorderedLines expects the given lines in any order. Duplicate lines
// are indistinguishable, on both sides.
func UnorderedLines(lines ...string) *Expected {
	return &Expected{Content: lines, Order: Unordered, MatchAll: true}
}

// UnorderedRegexp expects each pattern to match its own actual line.
func UnorderedRegexp(patterns ...string) *Expected {
	return &Expected{
		Content:  patterns,
		Kind:     Pattern,
		Order:    Unordered,
		MatchAll: true,
	}
}

// Subset returns a copy of e with MatchAll set to false.
func (e *Expected) Subset() *Expected {
	res := e.norm()
	res.MatchAll = false
	return &res
}

func (e *Expected) IsRegexp() bool { return e != nil && e.Kind == Pattern }

func (e *Expected) IsUnordered() bool { return e != nil && e.Order == Unordered }

// Matches reports whether actual satisfies e. If except is not empty, lines
// on either side that match the except regexp are disregarded. For Ordered
// content this is MatchExcept. Unordered content drops the except lines
// from both sides and then compares the remaining lines as usual, in
// complete or subset mode.
//
// Requesting except together with Pattern content is a *ConfigError, as is
// except with an Ordered subset expectation and any invalid regular
// expression.
func (e *Expected) Matches(actual []string, except string) (bool, error) {
	exp := e.norm()
	if except != "" {
		switch {
		case exp.Kind == Pattern:
			return false, configErrorf("regexp content and except pattern are mutually exclusive")
		case exp.Order == Unordered:
			return matchUnorderedExcept(exp.Content, actual, except, exp.MatchAll)
		case !exp.MatchAll:
			return false, configErrorf("ordered subset match and except pattern are mutually exclusive")
		}
		return MatchExcept(exp.Content, actual, except)
	}
	pol, err := exp.policy()
	if err != nil {
		return false, err
	}
	return pol(exp.Content, actual, exp.MatchAll)
}

func (e *Expected) String() string {
	exp := e.norm()
	var sb strings.Builder
	sb.WriteString(exp.Kind.String())
	sb.WriteByte(' ')
	sb.WriteString(exp.Order.String())
	if !exp.MatchAll {
		sb.WriteString(" subset")
	}
	fmt.Fprintf(&sb, " %q", exp.Content)
	return sb.String()
}

func (e *Expected) norm() Expected {
	if e == nil {
		return Expected{Content: []string{}, MatchAll: true}
	}
	res := *e
	if res.Content == nil {
		res.Content = []string{}
	}
	return res
}

// compileAnchored compiles pattern to only match at the start of a line.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	rgx, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("pattern %q", pattern), err: err}
	}
	return rgx, nil
}
