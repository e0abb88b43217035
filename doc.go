/*
Package expout verifies the captured output of a command against an
expectation. An expectation consists of the expected content, i.e. lines
of literal text or regular expressions, combined with options how the
content is matched. On mismatch a report is produced that shows the
complete expected and actual output together with a line diff.

The simplest expectation is the verbatim output:

	err := expout.Verify(expout.Lines("A    foo", "M    bar"), actual,
		expout.WithLabel(expout.LabelStdout))

This only matches exactly the two given lines in the given order.

# Matching Policies

The content of an Expected is either Literal or Pattern and it is either
Ordered or Unordered. Each of the four combinations has its own policy.
MatchAll selects between the complete and the subset variant of a
policy:

	Literal Ordered      all: same lines, same order, same count
	                     subset: expected lines appear in actual in the
	                     same order, other lines may be interspersed
	Literal Unordered    all: same set of lines
	                     subset: at least one expected line in actual
	Pattern Ordered      all: every actual line matches the first pattern
	                     subset: at least one actual line matches
	Pattern Unordered    all: each pattern consumes its own actual line
	                     subset: any pattern matches any actual line

Patterns match at the start of a line, they need not match the whole
line. Use '$' to anchor the end. Pattern expectations never match an
empty output.

Unordered policies treat both sides as sets: repeated lines cannot be
told apart. E.g. UnorderedLines("a", "a") is satisfied by the single line
"a". With Pattern Unordered each pattern takes the first not yet consumed
line it matches. There is no backtracking, so a pattern that takes the
line another pattern needed makes the match fail.

An empty subset expectation is always satisfied.

# Ignoring Lines

There are two independent ways to ignore lines of the actual output.
First, the Verifier drops lines starting with a noise prefix, by default
"DBG:", before any matching. Second, an except regexp (see WithExcept)
disregards matching lines on both sides of a Literal comparison. This is
useful for lines with timestamps or revision numbers:

	expout.Verify(expout.Lines(expected...), actual,
		expout.WithExcept(`Last Changed Date: `))

With Ordered content the comparison passes only if both sides end
together, an except line after the last line of the shorter side fails.
Unordered content drops the except lines from both sides and compares the
rest as usual, also as subset.

An except regexp cannot be combined with Pattern content or an Ordered
subset. Requesting this is a *ConfigError, as is an invalid regexp. Configuration errors are
returned before anything is compared and are never reported as mismatch.

# Reports

A mismatch is returned as *Failure and handed to the Verifier's Reporter.
ReportText renders it like this:

	<message>
	EXPECTED STDOUT (unordered):
	…
	ACTUAL STDOUT:
	…
	DIFF STDOUT (unordered):
	--- EXPECTED STDOUT
	+++ ACTUAL STDOUT
	…

Pattern expectations have no diff section.

# Expectation Files

Expectations can be kept as YAML files, see File. The sub package
expouting uses them in Go tests and the expout command verifies output
files against them.
*/
package expout
