package expout

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffContext is the number of unchanged lines shown around each change.
const DiffContext = 3

// Diff renders a unified diff from expected to actual. The sides are named
// "EXPECTED <label>" and "ACTUAL <label>". Equal inputs give an empty
// diff.
func Diff(label string, expected, actual []string) []string {
	ud := difflib.UnifiedDiff{
		A:        eolLines(expected),
		B:        eolLines(actual),
		FromFile: "EXPECTED " + label,
		ToFile:   "ACTUAL " + label,
		Context:  DiffContext,
	}
	txt, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		// only write errors are possible and difflib writes to memory
		panic(err)
	}
	if txt == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(txt, "\n"), "\n")
}

func eolLines(lines []string) []string {
	res := make([]string, len(lines))
	for i, l := range lines {
		res[i] = l + "\n"
	}
	return res
}
