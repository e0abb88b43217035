package expout

import "regexp"

// MatchExcept compares expected and actual line by line but disregards
// lines on either side that match the regexp except at their start. Lines
// of actual are checked first, i.e. a noise line in actual never consumes
// an expected line. The walk ends as soon as one side is used up and the
// match only succeeds if the other side is used up too, i.e. noise after
// the last line of the shorter side makes the match fail.
func MatchExcept(expected, actual []string, except string) (bool, error) {
	rgx, err := compileAnchored(except)
	if err != nil {
		return false, err
	}
	ie, ia := 0, 0
	for ie < len(expected) && ia < len(actual) {
		switch {
		case rgx.MatchString(actual[ia]):
			ia++
		case rgx.MatchString(expected[ie]):
			ie++
		case expected[ie] == actual[ia]:
			ie++
			ia++
		default:
			return false, nil
		}
	}
	return ie == len(expected) && ia == len(actual), nil
}

// matchUnorderedExcept drops the lines matching except from both sides and
// compares the rest with the literal unordered policy.
func matchUnorderedExcept(expected, actual []string, except string, all bool) (bool, error) {
	rgx, err := compileAnchored(except)
	if err != nil {
		return false, err
	}
	return literalUnordered(dropMatching(expected, rgx), dropMatching(actual, rgx), all)
}

func dropMatching(lines []string, rgx *regexp.Regexp) []string {
	res := make([]string, 0, len(lines))
	for _, l := range lines {
		if !rgx.MatchString(l) {
			res = append(res, l)
		}
	}
	return res
}
