package expout

import (
	"regexp"

	"git.fractalqb.de/fractalqb/icontainer/islist"
)

// policyFunc decides whether actual satisfies expected under one
// combination of Kind and Order.
type policyFunc func(expected, actual []string, all bool) (bool, error)

func (e *Expected) policy() (policyFunc, error) {
	switch {
	case e.Kind == Literal && e.Order == Ordered:
		return literalOrdered, nil
	case e.Kind == Literal && e.Order == Unordered:
		return literalUnordered, nil
	case e.Kind == Pattern && e.Order == Ordered:
		return patternOrdered, nil
	case e.Kind == Pattern && e.Order == Unordered:
		return patternUnordered, nil
	}
	return nil, configErrorf("unsupported expectation %s/%s", e.Kind, e.Order)
}

func literalOrdered(expected, actual []string, all bool) (bool, error) {
	if all {
		if len(expected) != len(actual) {
			return false, nil
		}
		for i, l := range expected {
			if actual[i] != l {
				return false, nil
			}
		}
		return true, nil
	}
	if len(expected) == 0 {
		return true, nil
	}
	next := 0
	for _, l := range actual {
		if l == expected[next] {
			if next++; next == len(expected) {
				return true, nil
			}
		}
	}
	return false, nil
}

// literalUnordered collapses both sides into sets. Repeated lines cannot
// be told apart, e.g. "a","a" matches a single "a".
func literalUnordered(expected, actual []string, all bool) (bool, error) {
	eset := lineSet(expected)
	aset := lineSet(actual)
	if all {
		if len(eset) != len(aset) {
			return false, nil
		}
		for l := range eset {
			if _, ok := aset[l]; !ok {
				return false, nil
			}
		}
		return true, nil
	}
	if len(eset) == 0 {
		return true, nil
	}
	for l := range eset {
		if _, ok := aset[l]; ok {
			return true, nil
		}
	}
	return false, nil
}

// patternOrdered only uses the first pattern.
func patternOrdered(expected, actual []string, all bool) (bool, error) {
	if len(expected) == 0 {
		if !all {
			return true, nil
		}
		return false, configErrorf("no regexp to match")
	}
	rgx, err := compileAnchored(expected[0])
	if err != nil {
		return false, err
	}
	if len(actual) == 0 {
		return false, nil
	}
	for _, l := range actual {
		m := rgx.MatchString(l)
		switch {
		case all && !m:
			return false, nil
		case !all && m:
			return true, nil
		}
	}
	return all, nil
}

// patternUnordered deduplicates patterns and actual lines like
// literalUnordered does. With all, each pattern consumes the first
// pending line it matches. There is no backtracking: a pattern that
// consumed a line another pattern needed makes the match fail.
func patternUnordered(expected, actual []string, all bool) (bool, error) {
	pats := uniqLines(expected)
	rgxs := make([]*regexp.Regexp, len(pats))
	for i, p := range pats {
		rgx, err := compileAnchored(p)
		if err != nil {
			return false, err
		}
		rgxs[i] = rgx
	}
	lines := uniqLines(actual)
	if !all {
		if len(rgxs) == 0 {
			return true, nil
		}
		for _, rgx := range rgxs {
			for _, l := range lines {
				if rgx.MatchString(l) {
					return true, nil
				}
			}
		}
		return false, nil
	}
	if len(rgxs) != len(lines) {
		return false, nil
	}
	if len(lines) == 0 {
		return true, nil
	}
	pending := islist.New(&pendingLine{text: lines[0]})
	for _, l := range lines[1:] {
		pending.PushBack(&pendingLine{text: l})
	}
	for _, rgx := range rgxs {
		if !consumeFirst(pending, rgx) {
			return false, nil
		}
	}
	return true, nil
}

// consumeFirst removes the first line from pending that matches rgx. The
// order of the remaining lines is kept.
func consumeFirst(pending *islist.List, rgx *regexp.Regexp) (found bool) {
	for n := pending.Len(); n > 0; n-- {
		pl := pending.Front().(*pendingLine)
		pending.Drop(1)
		if !found && rgx.MatchString(pl.text) {
			found = true
			continue
		}
		pl.SetListNext(nil)
		pending.PushBack(pl)
	}
	return found
}

type pendingLine struct {
	text string
	next *pendingLine
}

func (pl *pendingLine) ListNext() islist.Node {
	if pl.next == nil {
		return nil
	}
	return pl.next
}

func (pl *pendingLine) SetListNext(n islist.Node) {
	if n == nil {
		pl.next = nil
	} else {
		pl.next = n.(*pendingLine)
	}
}

func lineSet(lines []string) map[string]struct{} {
	res := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		res[l] = struct{}{}
	}
	return res
}

// uniqLines drops repeated lines, keeping the first occurrence.
func uniqLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	res := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		res = append(res, l)
	}
	return res
}
